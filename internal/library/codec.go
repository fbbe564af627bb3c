package library

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseError reports a snapshot that could not be decoded.
type ParseError struct {
	Key string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing library snapshot %q: %v", e.Key, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse decodes a JSON snapshot into an entry list.
func Parse(data []byte) ([]Entry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []Entry{}, nil
	}
	var books []Entry
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, err
	}
	if books == nil {
		return []Entry{}, nil
	}
	return books, nil
}

// Marshal encodes an entry list as a JSON snapshot.
func Marshal(books []Entry) ([]byte, error) {
	if books == nil {
		books = []Entry{}
	}
	data, err := json.Marshal(books)
	if err != nil {
		return nil, fmt.Errorf("encoding library: %w", err)
	}
	return data, nil
}

// MarshalYAML encodes an entry list as YAML for export.
func MarshalYAML(books []Entry) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(books); err != nil {
		return nil, fmt.Errorf("encoding library: %w", err)
	}
	return buf.Bytes(), nil
}
