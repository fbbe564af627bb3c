// Package goodreads converts a Goodreads library export (CSV) into library
// entries, and writes the library back out in the same format.
package goodreads

// Column names of the Goodreads export header.
const (
	ColBookID            = "Book Id"
	ColTitle             = "Title"
	ColAuthor            = "Author"
	ColAuthorLF          = "Author l-f"
	ColAdditionalAuthors = "Additional Authors"
	ColISBN              = "ISBN"
	ColISBN13            = "ISBN13"
	ColMyRating          = "My Rating"
	ColAverageRating     = "Average Rating"
	ColPublisher         = "Publisher"
	ColBinding           = "Binding"
	ColNumberOfPages     = "Number of Pages"
	ColYearPublished     = "Year Published"
	ColOriginalPubYear   = "Original Publication Year"
	ColDateRead          = "Date Read"
	ColDateAdded         = "Date Added"
	ColBookshelves       = "Bookshelves"
	ColBookshelvesPos    = "Bookshelves with positions"
	ColExclusiveShelf    = "Exclusive Shelf"
	ColMyReview          = "My Review"
	ColSpoiler           = "Spoiler"
	ColPrivateNotes      = "Private Notes"
	ColReadCount         = "Read Count"
	ColOwnedCopies       = "Owned Copies"
)

// Columns is the export header in Goodreads order.
var Columns = []string{
	ColBookID, ColTitle, ColAuthor, ColAuthorLF, ColAdditionalAuthors,
	ColISBN, ColISBN13, ColMyRating, ColAverageRating, ColPublisher,
	ColBinding, ColNumberOfPages, ColYearPublished, ColOriginalPubYear,
	ColDateRead, ColDateAdded, ColBookshelves, ColBookshelvesPos,
	ColExclusiveShelf, ColMyReview, ColSpoiler, ColPrivateNotes,
	ColReadCount, ColOwnedCopies,
}

// Row is one book line of the export. Missing columns leave fields empty.
type Row struct {
	BookID            string
	Title             string
	Author            string
	AuthorLF          string
	AdditionalAuthors string
	ISBN              string
	ISBN13            string
	MyRating          string
	AverageRating     string
	Publisher         string
	Binding           string
	NumberOfPages     string
	YearPublished     string
	OriginalPubYear   string
	DateRead          string
	DateAdded         string
	Bookshelves       string
	BookshelvesPos    string
	ExclusiveShelf    string
	MyReview          string
	Spoiler           string
	PrivateNotes      string
	ReadCount         string
	OwnedCopies       string
}

// fields maps column names to the Row field they fill.
func (r *Row) fields() map[string]*string {
	return map[string]*string{
		ColBookID:            &r.BookID,
		ColTitle:             &r.Title,
		ColAuthor:            &r.Author,
		ColAuthorLF:          &r.AuthorLF,
		ColAdditionalAuthors: &r.AdditionalAuthors,
		ColISBN:              &r.ISBN,
		ColISBN13:            &r.ISBN13,
		ColMyRating:          &r.MyRating,
		ColAverageRating:     &r.AverageRating,
		ColPublisher:         &r.Publisher,
		ColBinding:           &r.Binding,
		ColNumberOfPages:     &r.NumberOfPages,
		ColYearPublished:     &r.YearPublished,
		ColOriginalPubYear:   &r.OriginalPubYear,
		ColDateRead:          &r.DateRead,
		ColDateAdded:         &r.DateAdded,
		ColBookshelves:       &r.Bookshelves,
		ColBookshelvesPos:    &r.BookshelvesPos,
		ColExclusiveShelf:    &r.ExclusiveShelf,
		ColMyReview:          &r.MyReview,
		ColSpoiler:           &r.Spoiler,
		ColPrivateNotes:      &r.PrivateNotes,
		ColReadCount:         &r.ReadCount,
		ColOwnedCopies:       &r.OwnedCopies,
	}
}

// values returns the row in Columns order.
func (r *Row) values() []string {
	f := r.fields()
	out := make([]string, len(Columns))
	for i, col := range Columns {
		out[i] = *f[col]
	}
	return out
}
