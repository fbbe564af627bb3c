package cache

import (
	"fmt"
	"io"
	"os"
)

// StoreCover writes r to the cover path via a temp file, checks that the
// bytes are an image, then renames into place. Returns the final file path.
func (m *Manager) StoreCover(coverID, size string, r io.Reader) (string, error) {
	if err := m.EnsureDir(); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}

	destPath := m.CoverPath(coverID, size)
	tmpPath := destPath + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("writing to cache: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", err)
	}

	if err := VerifyImage(tmpPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", err
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", err
	}
	return destPath, nil
}
