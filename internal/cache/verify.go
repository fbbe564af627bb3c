package cache

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// NotImageError is returned when a downloaded cover is not an image, such as
// an HTML error page served with a 200.
type NotImageError struct {
	Path     string
	Detected string
}

func (e *NotImageError) Error() string {
	return fmt.Sprintf("%s is not an image (detected %s)", filepath.Base(e.Path), e.Detected)
}

// VerifyImage sniffs the file at path and rejects anything that is not an
// image/* type.
func VerifyImage(path string) error {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", path, err)
	}
	for t := mt; t != nil; t = t.Parent() {
		if strings.HasPrefix(t.String(), "image/") {
			return nil
		}
	}
	return &NotImageError{Path: path, Detected: mt.String()}
}
