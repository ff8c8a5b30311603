package cmd

import (
	"bytes"
	"fmt"
	"path"

	"github.com/lepinkainen/tmdbkit/internal/fileutil"
)

// ImageCmd represents the image command
type ImageCmd struct {
	Path      string `arg:"" help:"Image path as returned by the API, e.g. /pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg"`
	Size      string `short:"s" help:"Image size, e.g. w500 or original" default:"original"`
	Out       string `short:"O" help:"Output file (defaults to the image name)"`
	MaxWidth  int    `name:"max-width" help:"Scale the image down to this width"`
	Overwrite bool   `help:"Overwrite an existing file"`
}

func (i *ImageCmd) Run(a *app) error {
	out := i.Out
	if out == "" {
		out = fileutil.SanitizeFilename(path.Base(i.Path))
	}
	if fileutil.FileExists(out) && !i.Overwrite {
		a.logger.Info("Image already exists, skipping", "path", out)
		return nil
	}

	var buf bytes.Buffer
	n, err := a.client.Storage.Download(a.ctx, i.Path, i.Size, &buf)
	if err != nil {
		return err
	}

	if i.MaxWidth > 0 {
		if err := fileutil.SaveImage(&buf, out, i.MaxWidth); err != nil {
			return err
		}
	} else if _, err := fileutil.WriteFileWithOverwrite(out, buf.Bytes(), 0o644, true); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	a.logger.Info("Downloaded image", "url", a.client.Storage.ImageURL(i.Path, i.Size), "path", out, "bytes", n)
	_, err = fmt.Fprintln(a.out.w, out)
	return err
}
