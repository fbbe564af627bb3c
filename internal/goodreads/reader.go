package goodreads

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParseError aborts an import: the file could not be read as CSV.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("failed to parse CSV at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("failed to parse CSV: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ReadRows reads an export: the first record is the header, each following
// record is one book. Columns are matched by name, so order does not matter
// and unknown columns are ignored. Any malformed record aborts the read.
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := readHeader(cr)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Err: errors.New("empty file: missing header row")}
		}
		return nil, toParseError(err)
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, toParseError(err)
		}
		if blank(record) {
			continue
		}

		var row Row
		for col, dst := range row.fields() {
			*dst = valueAt(header, record, col)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	record, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(record))
	for idx, name := range record {
		if idx == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		header[strings.TrimSpace(name)] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, record []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func toParseError(err error) error {
	var cerr *csv.ParseError
	if errors.As(err, &cerr) {
		return &ParseError{Line: cerr.Line, Err: cerr.Err}
	}
	return &ParseError{Err: err}
}
