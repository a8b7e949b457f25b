// Package store is the key-value persistence primitive every resource sits on:
// string keys mapping to JSON documents, with prefix scans.
package store

import (
	"context"
	"errors"
	"sort"
	"strings"
)

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("store: key not found")

// Entry is one key and its raw JSON value.
type Entry struct {
	Key   string
	Value []byte
}

// Store is implemented by every backend. Writes are last-write-wins; no backend
// offers transactions across keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// ScanPrefix returns every entry whose key starts with prefix, ordered by key.
	ScanPrefix(ctx context.Context, prefix string) ([]Entry, error)
	Close(ctx context.Context) error
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return strings.Compare(entries[i].Key, entries[j].Key) < 0
	})
}
