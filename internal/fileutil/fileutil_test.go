package fileutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "normal text", input: "Normal Text", expected: "Normal Text"},
		{name: "colon", input: "Title: Subtitle", expected: "Title - Subtitle"},
		{name: "slash", input: "Title/Subtitle", expected: "Title-Subtitle"},
		{name: "backslash", input: "Title\\Subtitle", expected: "Title-Subtitle"},
		{name: "question mark", input: "What If?", expected: "What If"},
		{name: "quotes", input: `The "Best" Movie`, expected: "The 'Best' Movie"},
		{name: "colon and slash", input: "Title: Subtitle/Part", expected: "Title - Subtitle-Part"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SanitizeFilename(tc.input))
		})
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "poster.jpg")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "missing.jpg")))
}

func TestWriteFileWithOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.json")

	written, err := WriteFileWithOverwrite(path, []byte("first"), 0o644, false)
	require.NoError(t, err)
	assert.True(t, written)

	written, err = WriteFileWithOverwrite(path, []byte("second"), 0o644, false)
	require.NoError(t, err)
	assert.False(t, written)
	data, _ := os.ReadFile(path)
	assert.Equal(t, "first", string(data))

	written, err = WriteFileWithOverwrite(path, []byte("third"), 0o644, true)
	require.NoError(t, err)
	assert.True(t, written)
	data, _ = os.ReadFile(path)
	assert.Equal(t, "third", string(data))
}

func encodePNG(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestSaveImageScalesDown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "covers", "poster.jpg")

	require.NoError(t, SaveImage(encodePNG(t, 200, 100), path, 50))

	img, err := imaging.Open(path)
	require.NoError(t, err)
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 25, img.Bounds().Dy())
}

func TestSaveImageKeepsSmallImages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poster.png")

	require.NoError(t, SaveImage(encodePNG(t, 40, 60), path, 0))

	img, err := imaging.Open(path)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 60, img.Bounds().Dy())
}

func TestSaveImageRejectsGarbage(t *testing.T) {
	err := SaveImage(bytes.NewBufferString("not an image"), filepath.Join(t.TempDir(), "x.jpg"), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode image")
}
