package cache

import (
	"context"
	"fmt"
	"io"

	"github.com/blackwell-systems/booklog/internal/library"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// CoverFetcher downloads cover images. *openlibrary.Client implements it.
type CoverFetcher interface {
	FetchCover(ctx context.Context, id, size string) (io.ReadCloser, error)
}

// FetchCover returns the cached path for coverID, downloading it first if it
// is not cached yet.
func (m *Manager) FetchCover(ctx context.Context, f CoverFetcher, coverID, size string) (string, error) {
	if coverID == "" {
		return "", fmt.Errorf("empty cover id")
	}
	if m.HasCover(coverID, size) {
		return m.CoverPath(coverID, size), nil
	}

	body, err := f.FetchCover(ctx, coverID, size)
	if err != nil {
		return "", err
	}
	defer body.Close()

	return m.StoreCover(coverID, size, body)
}

// FetchReport counts the outcome of FetchAll.
type FetchReport struct {
	Cached     int // already present
	Downloaded int
	Failed     int
}

// FetchAll downloads the covers of every entry that has a cover id, with at
// most concurrency downloads in flight. Individual failures are logged and
// counted, never returned.
func (m *Manager) FetchAll(ctx context.Context, f CoverFetcher, entries []library.Entry, size string, concurrency int) FetchReport {
	if concurrency < 1 {
		concurrency = 1
	}

	seen := map[library.CoverID]bool{}
	var ids []string
	var rep FetchReport
	for _, e := range entries {
		if !e.HasCover() || seen[e.Cover] {
			continue
		}
		seen[e.Cover] = true
		if m.HasCover(e.Cover.String(), size) {
			rep.Cached++
			continue
		}
		ids = append(ids, e.Cover.String())
	}

	ok := make([]bool, len(ids))
	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, id := range ids {
		if ctx.Err() != nil {
			break
		}
		i, id := i, id
		g.Go(func() error {
			if _, err := m.FetchCover(ctx, f, id, size); err != nil {
				log.Warn().Err(err).Str("cover", id).Msg("cover download failed")
				return nil
			}
			ok[i] = true
			return nil
		})
	}
	_ = g.Wait()

	for _, v := range ok {
		if v {
			rep.Downloaded++
		} else {
			rep.Failed++
		}
	}
	return rep
}
