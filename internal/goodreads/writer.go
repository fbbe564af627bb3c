package goodreads

import (
	"encoding/csv"
	"io"

	"github.com/blackwell-systems/booklog/internal/library"
)

// Goodreads exclusive shelf names.
const (
	shelfRead    = "read"
	shelfReading = "currently-reading"
	shelfToRead  = "to-read"
)

// FromEntry maps a library entry back onto an export row.
func FromEntry(e library.Entry) Row {
	r := Row{
		Title:         e.Title,
		Author:        e.Author,
		MyRating:      e.Rating,
		YearPublished: e.Published,
		DateRead:      e.DateRead,
		DateAdded:     e.DateAdded,
		MyReview:      e.Review,
		ReadCount:     "0",
	}
	if isISBN13(e.ISBN) {
		r.ISBN13 = e.ISBN
	} else {
		r.ISBN = e.ISBN
	}

	switch e.NormalizedStatus() {
	case library.StatusRead:
		r.ExclusiveShelf = shelfRead
		r.ReadCount = "1"
	case library.StatusReading:
		r.ExclusiveShelf = shelfReading
	default:
		r.ExclusiveShelf = shelfToRead
	}
	return r
}

// Write exports entries as a Goodreads-compatible CSV with a header row.
func Write(w io.Writer, entries []library.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, e := range entries {
		r := FromEntry(e)
		if err := cw.Write(r.values()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func isISBN13(s string) bool {
	if len(s) != 13 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
