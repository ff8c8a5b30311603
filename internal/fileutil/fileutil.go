// Package fileutil holds the file helpers of the CLI.
package fileutil

import (
	"os"
	"path/filepath"
	"strings"
)

var filenameReplacer = strings.NewReplacer(
	":", " -",
	"/", "-",
	"\\", "-",
	"?", "",
	"*", "",
	"\"", "'",
	"<", "",
	">", "",
	"|", "-",
)

// SanitizeFilename cleans a title for use as a file name.
func SanitizeFilename(name string) string {
	return strings.TrimSpace(filenameReplacer.Replace(name))
}

// FileExists checks if a regular file exists at the given path
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// WriteFileWithOverwrite writes data to a file, respecting the overwrite flag.
// Returns true if the file was written, false if it was skipped.
func WriteFileWithOverwrite(filePath string, data []byte, perm os.FileMode, overwrite bool) (bool, error) {
	if FileExists(filePath) && !overwrite {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return false, err
	}
	if err := os.WriteFile(filePath, data, perm); err != nil {
		return false, err
	}
	return true, nil
}
