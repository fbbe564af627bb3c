package goodreads

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blackwell-systems/booklog/internal/library"
	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
)

// ValidationError rejects a file before parsing because it is not CSV.
type ValidationError struct {
	Path     string
	Detected string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is not a CSV file (detected %s)", filepath.Base(e.Path), e.Detected)
}

// ValidateFile accepts files with a .csv extension or whose content sniffs
// as text/csv.
func ValidateFile(path string) error {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return nil
	}
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", path, err)
	}
	if mt.Is("text/csv") {
		return nil
	}
	return &ValidationError{Path: path, Detected: mt.String()}
}

// Inserter is the part of the library store an import needs.
type Inserter interface {
	Insert(ctx context.Context, entries ...library.Entry) (int, error)
}

// ImportResult summarizes an import.
type ImportResult struct {
	Rows    int
	Added   int
	Skipped int // duplicates of entries already in the library or earlier in the file

	// PersistErr is set when the entries were added in memory but the
	// snapshot could not be saved.
	PersistErr error
}

// Import validates, parses and converts the export at path and inserts the
// entries as one batch. Validation and parse errors abort before anything is
// inserted.
func Import(ctx context.Context, path string, store Inserter) (ImportResult, error) {
	if err := ValidateFile(path); err != nil {
		return ImportResult{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return ImportResult{}, err
	}
	defer f.Close()

	rows, err := ReadRows(f)
	if err != nil {
		return ImportResult{}, err
	}

	entries := ConvertAll(rows)
	added, perr := store.Insert(ctx, entries...)

	res := ImportResult{
		Rows:       len(rows),
		Added:      added,
		Skipped:    len(rows) - added,
		PersistErr: perr,
	}
	log.Info().
		Str("file", filepath.Base(path)).
		Int("rows", res.Rows).
		Int("added", res.Added).
		Int("skipped", res.Skipped).
		Msg("goodreads import")
	return res, nil
}
