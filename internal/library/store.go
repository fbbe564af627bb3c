// Package library owns the personal book collection: the entry model, the
// dedup rules, and the bridge between the in-memory collection and its
// durable snapshot.
package library

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/blackwell-systems/booklog/internal/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultKey is the slot name the snapshot is stored under.
const DefaultKey = "library_data"

// Store is the sole owner of the collection. Create one at startup and pass
// it to every consumer; all mutation goes through Insert, Merge and Clear.
//
// The snapshot is written inside the same critical section as the mutation
// that produced it, so a later mutation can never be overwritten by an
// earlier snapshot.
type Store struct {
	slot storage.Slot
	key  string
	log  zerolog.Logger

	mu      sync.Mutex
	books   []Entry
	index   map[string]int // identity key -> position in books
	err     error
	subs    map[int]chan []Entry
	nextSub int
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the slot name.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger used for non-fatal storage failures.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// NewStore creates an empty Store backed by slot. Call Load to seed it.
func NewStore(slot storage.Slot, opts ...Option) *Store {
	s := &Store{
		slot:  slot,
		key:   DefaultKey,
		log:   log.With().Str("component", "library").Logger(),
		index: map[string]int{},
		subs:  map[int]chan []Entry{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load seeds the collection from the slot. A missing slot yields an empty
// library. An unreadable or invalid snapshot also yields an empty library and
// is recorded in Err; the error is returned for convenience but is not fatal.
// Loaded data is trusted as already deduplicated.
func (s *Store) Load(ctx context.Context) error {
	data, err := s.slot.Get(ctx, s.key)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.books = []Entry{}
	s.index = map[string]int{}

	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil
	case err != nil:
		err = fmt.Errorf("loading library: %w", err)
		s.recordLocked(err)
		return err
	}

	books, err := Parse(data)
	if err != nil {
		perr := &ParseError{Key: s.key, Err: err}
		s.recordLocked(perr)
		return perr
	}

	s.books = books
	for i, b := range books {
		if _, dup := s.index[b.IdentityKey()]; !dup {
			s.index[b.IdentityKey()] = i
		}
	}
	s.publishLocked()
	return nil
}

// Insert adds every entry whose identity key is not already present, in
// batch order. Existing entries are never overwritten or merged. It returns
// how many entries were added. When the resulting collection is non-empty
// the full snapshot is persisted; a persist failure is recorded in Err and
// returned, but the in-memory insertion stands.
func (s *Store) Insert(ctx context.Context, entries ...Entry) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, e := range entries {
		key := e.IdentityKey()
		if _, exists := s.index[key]; exists {
			continue
		}
		s.index[key] = len(s.books)
		s.books = append(s.books, e)
		added++
	}

	if added > 0 {
		s.publishLocked()
	}
	if len(s.books) == 0 {
		return added, nil
	}
	return added, s.persistLocked(ctx)
}

// Merge fills in empty fields of stored entries from the candidate with the
// same identity key. Fields already set on the stored entry are never
// overwritten, so a candidate built from an older snapshot cannot revert
// newer data. Candidates with unknown keys are ignored, so an entry removed
// by Clear is never brought back. It returns how many stored entries changed.
func (s *Store) Merge(ctx context.Context, entries ...Entry) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := 0
	for _, e := range entries {
		i, ok := s.index[e.IdentityKey()]
		if !ok {
			continue
		}
		if fillEmpty(&s.books[i], e) {
			changed++
		}
	}

	if changed == 0 {
		return 0, nil
	}
	s.publishLocked()
	return changed, s.persistLocked(ctx)
}

// fillEmpty copies every field of src that is empty on dst. The identity
// fields match already.
func fillEmpty(dst *Entry, src Entry) bool {
	changed := false
	fill := func(d *string, v string) {
		if *d == "" && v != "" {
			*d = v
			changed = true
		}
	}
	fill(&dst.Title, src.Title)
	fill(&dst.Author, src.Author)
	fill(&dst.Published, src.Published)
	fill(&dst.Status, src.Status)
	fill(&dst.Rating, src.Rating)
	fill(&dst.DateRead, src.DateRead)
	fill(&dst.DateAdded, src.DateAdded)
	fill(&dst.Review, src.Review)
	if dst.Cover == "" && src.Cover != "" {
		dst.Cover = src.Cover
		changed = true
	}
	return changed
}

// Clear empties the collection and deletes the slot key.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.books = []Entry{}
	s.index = map[string]int{}
	s.publishLocked()

	if err := s.slot.Delete(ctx, s.key); err != nil {
		err = fmt.Errorf("removing library snapshot: %w", err)
		s.recordLocked(err)
		return err
	}
	return nil
}

// Books returns a copy of the collection in insertion order.
func (s *Store) Books() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.books)
}

// Get returns the entry with the given identity key.
func (s *Store) Get(key string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[key]
	if !ok {
		return Entry{}, false
	}
	return s.books[i], true
}

// Err returns the last recorded non-fatal error, or nil.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// ClearErr resets the recorded error state.
func (s *Store) ClearErr() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = nil
}

// Subscribe returns a channel that receives a copy of the collection after
// every mutation, and a cancel func that closes it. Delivery never blocks the
// Store: a subscriber that falls behind only sees the latest snapshot.
func (s *Store) Subscribe() (<-chan []Entry, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan []Entry, 1)
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (s *Store) persistLocked(ctx context.Context) error {
	data, err := Marshal(s.books)
	if err != nil {
		s.recordLocked(err)
		return err
	}
	if err := s.slot.Set(ctx, s.key, data); err != nil {
		err = fmt.Errorf("saving library: %w", err)
		s.recordLocked(err)
		return err
	}
	return nil
}

func (s *Store) recordLocked(err error) {
	s.err = err
	s.log.Warn().Err(err).Str("key", s.key).Msg("library storage error")
}

func (s *Store) snapshotLocked() []Entry {
	out := make([]Entry, len(s.books))
	copy(out, s.books)
	return out
}

func (s *Store) publishLocked() {
	if len(s.subs) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			// Drop the stale pending snapshot and deliver the latest.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}
