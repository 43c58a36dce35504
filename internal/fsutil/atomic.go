// Package fsutil holds small filesystem helpers shared by the media and clip packages.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// PendingFile reserves a hidden temp path next to a target so an external
// tool can write to it. Commit renames it onto the target; the target is
// never left partially written.
type PendingFile struct {
	path    string
	tmpPath string
}

// NewPendingFile creates the directory of path and an empty temp file beside
// it. The temp name keeps path's extension so tools that pick a container
// from the file name still work.
func NewPendingFile(path string) (*PendingFile, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".clipcut-*"+filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpFile.Name())
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	return &PendingFile{path: path, tmpPath: tmpFile.Name()}, nil
}

// TempPath is where the content should be written.
func (f *PendingFile) TempPath() string {
	return f.tmpPath
}

// Path is the final target.
func (f *PendingFile) Path() string {
	return f.path
}

// Commit atomically replaces the target with the temp file.
func (f *PendingFile) Commit() error {
	if err := os.Rename(f.tmpPath, f.path); err != nil {
		os.Remove(f.tmpPath) // Best effort cleanup
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// Abort discards the temp file. A missing temp file is not an error.
func (f *PendingFile) Abort() error {
	if err := os.Remove(f.tmpPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
