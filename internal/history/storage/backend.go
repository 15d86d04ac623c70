package storage

import (
	"context"
	"iter"
)

// Entry is a single key/value pair held by a Backend.
type Entry[K, V any] struct {
	Key   K
	Value V
}

// Backend stores values by key.
//
// List returns at most pageSize entries starting at pageToken (inclusive),
// in ascending key order. When more entries remain, the returned token is
// the key of the first entry of the next page.
type Backend[K, V any] interface {
	Get(ctx context.Context, key K) (value V, found bool, err error)
	Set(ctx context.Context, key K, value V) error
	Delete(ctx context.Context, key K) error
	List(ctx context.Context, pageSize *int, pageToken *K) (entries iter.Seq2[K, V], nextPageToken *K, err error)
	Flush(ctx context.Context) error
	Close(ctx context.Context) error
}

// DefaultListPageSize is the page size used when List is given a nil page size.
const DefaultListPageSize = 25

func ptr[T any](v T) *T {
	return &v
}

func PageSize(pageSize int) *int {
	return ptr(pageSize)
}

func PageToken[T any](pageToken T) *T {
	return ptr(pageToken)
}

// ListLimit resolves an optional page size.
func ListLimit(pageSize *int) int {
	if pageSize == nil || *pageSize <= 0 {
		return DefaultListPageSize
	}
	return *pageSize
}

// Seq turns collected entries into the iterator returned by List.
func Seq[K, V any](entries []Entry[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, e := range entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}
