package library

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Recognized reading statuses. Other values are kept verbatim.
const (
	StatusUnread  = "unread"
	StatusReading = "reading"
	StatusRead    = "read"
)

// Entry is one book in the personal library.
type Entry struct {
	ISBN      string  `json:"isbn" yaml:"isbn"`
	Title     string  `json:"title,omitempty" yaml:"title,omitempty"`
	Author    string  `json:"author,omitempty" yaml:"author,omitempty"`
	Cover     CoverID `json:"cover_i,omitempty" yaml:"cover_i,omitempty"`
	Published string  `json:"published,omitempty" yaml:"published,omitempty"`
	Status    string  `json:"status,omitempty" yaml:"status,omitempty"`
	Rating    string  `json:"rating,omitempty" yaml:"rating,omitempty"`
	DateRead  string  `json:"dateRead,omitempty" yaml:"date_read,omitempty"`
	DateAdded string  `json:"dateAdded,omitempty" yaml:"date_added,omitempty"`
	Review    string  `json:"review,omitempty" yaml:"review,omitempty"`
}

// IdentityKey is the dedup key: the ISBN when set, otherwise "title-author".
func (e Entry) IdentityKey() string {
	if e.ISBN != "" {
		return e.ISBN
	}
	return e.Title + "-" + e.Author
}

// HasCover reports whether a cover reference is set.
func (e Entry) HasCover() bool {
	return e.Cover != ""
}

// NormalizedStatus returns the status lower-cased and trimmed.
func (e Entry) NormalizedStatus() string {
	return strings.ToLower(strings.TrimSpace(e.Status))
}

// CoverID is an Open Library cover identifier. Snapshots written by older
// clients store it as a JSON number, so both forms are accepted.
type CoverID string

// UnmarshalJSON accepts a string, a number, or null.
func (c *CoverID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = CoverID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = CoverID(n.String())
	return nil
}

func (c CoverID) String() string { return string(c) }
