package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// DefaultMaxWidth is the width images are scaled down to when no width is given.
const DefaultMaxWidth = 1000

// SaveImage decodes an image from r, scales it down to maxWidth keeping the
// aspect ratio and writes it to savePath. The output format follows the
// file extension; JPEG output uses quality 85. Narrower images are kept at
// their size.
func SaveImage(r io.Reader, savePath string, maxWidth int) error {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}

	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	if err := os.MkdirAll(filepath.Dir(savePath), 0o755); err != nil {
		return err
	}
	if err := imaging.Save(img, savePath, imaging.JPEGQuality(85)); err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	return nil
}
