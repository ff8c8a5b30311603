// Package testutil provides common test utilities for the tmdbkit project:
// a sandboxed working directory, a fake TMDB API and config helpers.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestEnv is a sandboxed directory for CLI tests. Paths handed out by it
// never escape the sandbox, and it is removed when the test completes.
type TestEnv struct {
	t       *testing.T
	rootDir string
}

// NewTestEnv creates a new sandboxed test environment.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	return &TestEnv{
		t:       t,
		rootDir: t.TempDir(),
	}
}

// RootDir returns the root directory of the test environment.
func (e *TestEnv) RootDir() string {
	return e.rootDir
}

// Path returns an absolute path within the test environment. It fails the
// test if the path would escape the sandbox.
func (e *TestEnv) Path(elem ...string) string {
	e.t.Helper()

	p := filepath.Clean(filepath.Join(e.rootDir, filepath.Join(elem...)))
	root := filepath.Clean(e.rootDir)
	if p != root && !strings.HasPrefix(p, root+string(filepath.Separator)) {
		e.t.Fatalf("path %q escapes test sandbox %q", p, e.rootDir)
	}
	return p
}

// WriteFile writes content to a file within the test environment,
// creating parent directories as needed.
func (e *TestEnv) WriteFile(path string, content []byte) string {
	e.t.Helper()

	abs := e.Path(path)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		e.t.Fatalf("failed to create directory for %q: %v", abs, err)
	}
	if err := os.WriteFile(abs, content, 0o644); err != nil {
		e.t.Fatalf("failed to write file %q: %v", abs, err)
	}
	return abs
}

// WriteConfig writes a config.yaml into the sandbox and returns its path,
// ready to pass to --config.
func (e *TestEnv) WriteConfig(yaml string) string {
	e.t.Helper()
	return e.WriteFile("config.yaml", []byte(yaml))
}

// ReadFile reads a file from within the test environment.
func (e *TestEnv) ReadFile(path string) []byte {
	e.t.Helper()

	content, err := os.ReadFile(e.Path(path))
	if err != nil {
		e.t.Fatalf("failed to read file %q: %v", path, err)
	}
	return content
}

// FileExists reports whether a file exists within the test environment.
func (e *TestEnv) FileExists(path string) bool {
	e.t.Helper()
	_, err := os.Stat(e.Path(path))
	return err == nil
}

// Chdir makes the sandbox the working directory, so lookups of .env and
// ./config.yaml cannot pick up files from the source tree. The original
// directory is restored when the test completes.
func (e *TestEnv) Chdir() {
	e.t.Helper()

	orig, err := os.Getwd()
	if err != nil {
		e.t.Fatalf("failed to get current directory: %v", err)
	}
	if err := os.Chdir(e.rootDir); err != nil {
		e.t.Fatalf("failed to change directory to %q: %v", e.rootDir, err)
	}
	e.t.Cleanup(func() {
		if err := os.Chdir(orig); err != nil {
			e.t.Errorf("failed to restore directory to %q: %v", orig, err)
		}
	})
}

func (e *TestEnv) String() string {
	return fmt.Sprintf("TestEnv{rootDir: %q}", e.rootDir)
}
