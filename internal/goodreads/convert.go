package goodreads

import (
	"strconv"
	"strings"

	"github.com/blackwell-systems/booklog/internal/library"
)

// Convert maps one export row to a library entry. It is pure: no I/O, and
// missing values simply produce empty attributes.
func Convert(r Row) library.Entry {
	isbn := cleanISBN(r.ISBN13)
	if isbn == "" {
		isbn = cleanISBN(r.ISBN)
	}

	published := r.OriginalPubYear
	if published == "" {
		published = r.YearPublished
	}

	return library.Entry{
		ISBN:      isbn,
		Title:     r.Title,
		Author:    r.Author,
		Published: published,
		Status:    deriveStatus(r),
		Rating:    r.MyRating,
		DateRead:  r.DateRead,
		DateAdded: r.DateAdded,
		Review:    r.MyReview,
	}
}

// ConvertAll converts rows in order.
func ConvertAll(rows []Row) []library.Entry {
	out := make([]library.Entry, len(rows))
	for i, r := range rows {
		out[i] = Convert(r)
	}
	return out
}

// deriveStatus: "read" when a read date exists or the read count is a
// positive integer; an unparsable count counts as zero.
func deriveStatus(r Row) string {
	if r.DateRead != "" {
		return library.StatusRead
	}
	if n, err := strconv.Atoi(strings.TrimSpace(r.ReadCount)); err == nil && n > 0 {
		return library.StatusRead
	}
	return library.StatusUnread
}

// cleanISBN strips the spreadsheet guard Goodreads wraps ISBNs in
// (="9780441013593").
func cleanISBN(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "=")
	s = strings.Trim(s, `"`)
	return strings.TrimSpace(s)
}
