package openlibrary

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blackwell-systems/booklog/internal/library"
)

// SearchResponse matches search.json.
type SearchResponse struct {
	NumFound      int   `json:"numFound"`
	Start         int   `json:"start"`
	NumFoundExact bool  `json:"numFoundExact"`
	Docs          []Doc `json:"docs"`
}

// Doc is one catalog search hit. It is never stored directly; use ToEntry.
type Doc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorNames      []string `json:"author_name,omitempty"`
	CoverID          *int     `json:"cover_i,omitempty"`
	FirstPublishYear *int     `json:"first_publish_year,omitempty"`
	Publishers       []string `json:"publisher,omitempty"`
}

// emptyResponse is what an empty query resolves to.
func emptyResponse() *SearchResponse {
	return &SearchResponse{Docs: []Doc{}}
}

// ToEntry converts a search hit into an unread library entry keyed by the
// catalog key.
func (d Doc) ToEntry() library.Entry {
	e := library.Entry{
		ISBN:   d.Key,
		Title:  d.Title,
		Author: strings.Join(d.AuthorNames, ", "),
		Status: library.StatusUnread,
	}
	if d.CoverID != nil {
		e.Cover = library.CoverID(strconv.Itoa(*d.CoverID))
	}
	if d.FirstPublishYear != nil {
		e.Published = strconv.Itoa(*d.FirstPublishYear)
	}
	return e
}

// Cover image sizes.
const (
	CoverSmall  = "S"
	CoverMedium = "M"
	CoverLarge  = "L"
)

// DefaultCoversBase is the public cover image host.
const DefaultCoversBase = "https://covers.openlibrary.org"

// CoverURL returns the image URL for a cover id on the default host.
func CoverURL(id, size string) string {
	return coverURL(DefaultCoversBase, id, size)
}

func coverURL(base, id, size string) string {
	switch strings.ToUpper(size) {
	case CoverSmall, CoverLarge:
		size = strings.ToUpper(size)
	default:
		size = CoverMedium
	}
	return fmt.Sprintf("%s/b/id/%s-%s.jpg", strings.TrimRight(base, "/"), id, size)
}
