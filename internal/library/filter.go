package library

import "strings"

// Filter applies all non-empty criteria and returns matching entries.
type Filter struct {
	Status       string // exact status, case-insensitive
	Search       string // matches title, author, or isbn
	MissingCover bool
}

// Apply returns the subset of entries matching all non-empty filter fields.
func (f Filter) Apply(books []Entry) []Entry {
	var out []Entry
	for _, b := range books {
		if f.Status != "" && b.NormalizedStatus() != strings.ToLower(f.Status) {
			continue
		}
		if f.MissingCover && b.HasCover() {
			continue
		}
		if f.Search != "" && !matchesSearch(b, f.Search) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// ByKey returns the first entry with the given identity key, or nil.
func ByKey(books []Entry, key string) *Entry {
	for i := range books {
		if books[i].IdentityKey() == key {
			return &books[i]
		}
	}
	return nil
}

func matchesSearch(b Entry, q string) bool {
	q = strings.ToLower(q)
	for _, field := range []string{b.Title, b.Author, b.ISBN} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
