package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Manager handles the local cover cache.
type Manager struct {
	baseDir string
}

// New creates a cache Manager rooted at baseDir.
func New(baseDir string) *Manager {
	return &Manager{baseDir: baseDir}
}

// Dir returns the cache root.
func (m *Manager) Dir() string { return m.baseDir }

// CoverPath returns where the image for a cover id is stored.
// Layout: <baseDir>/covers/<coverID>-<size>.jpg
func (m *Manager) CoverPath(coverID, size string) string {
	return filepath.Join(m.baseDir, "covers", fmt.Sprintf("%s-%s.jpg", coverID, normalizeSize(size)))
}

// HasCover reports whether the image is cached.
func (m *Manager) HasCover(coverID, size string) bool {
	_, err := os.Stat(m.CoverPath(coverID, size))
	return err == nil
}

// RemoveCover deletes the cached image if it exists.
func (m *Manager) RemoveCover(coverID, size string) error {
	err := os.Remove(m.CoverPath(coverID, size))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// EnsureDir creates the covers directory.
func (m *Manager) EnsureDir() error {
	return os.MkdirAll(filepath.Join(m.baseDir, "covers"), 0750)
}

// Clear removes the whole cache directory.
func (m *Manager) Clear() error {
	return os.RemoveAll(m.baseDir)
}

// Usage returns the number of cached covers and their total size in bytes.
func (m *Manager) Usage() (files int, bytes int64, err error) {
	entries, err := os.ReadDir(filepath.Join(m.baseDir, "covers"))
	if os.IsNotExist(err) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".jpg") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files++
		bytes += info.Size()
	}
	return files, bytes, nil
}

func normalizeSize(size string) string {
	switch s := strings.ToUpper(size); s {
	case "S", "L":
		return s
	default:
		return "M"
	}
}
