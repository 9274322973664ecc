package codegen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes content to path unless the file already holds exactly
// that content. It returns whether the file was written.
//
// Content goes to a temporary file in the destination directory first and is
// renamed into place, so path either keeps its old content or gets the new
// content in full. Missing parent directories are created.
func WriteFile(path string, content []byte) (bool, error) {
	existing, err := os.ReadFile(path) //nolint:gosec // path is built from validated segments
	if err == nil && bytes.Equal(existing, content) {
		return false, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return false, fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		cleanup()
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return false, fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return false, fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return true, nil
}
