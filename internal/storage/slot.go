// Package storage provides the durable key/value slots the library snapshot
// is persisted into.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the key has never been written or has
// been deleted.
var ErrNotFound = errors.New("not found")

// Slot is a named-key store holding opaque snapshots. Set replaces the whole
// value atomically; Delete removes the key (deleting a missing key is not an
// error).
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Options selects and configures a backend.
type Options struct {
	Backend    string
	Dir        string // file backend root
	SQLitePath string // sqlite backend database file
}

// Open returns the Slot for the configured backend.
func Open(opts Options) (Slot, error) {
	switch opts.Backend {
	case "", BackendFile:
		return NewFileStore(opts.Dir)
	case BackendSQLite:
		return OpenSQLite(opts.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want %q or %q)", opts.Backend, BackendFile, BackendSQLite)
	}
}
