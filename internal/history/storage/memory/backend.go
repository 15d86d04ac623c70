package memory

import (
	"cmp"
	"context"
	"iter"
	"slices"

	"github.com/picatz/tavus/internal/history/storage"
)

var _ storage.Backend[string, string] = (*Backend[string, string])(nil)

// Backend is an in-memory storage backend, which keeps entries in a slice
// sorted by key.
type Backend[K cmp.Ordered, V any] struct {
	store []storage.Entry[K, V]
}

// NewBackend creates a new, empty in-memory storage backend.
func NewBackend[K cmp.Ordered, V any]() *Backend[K, V] {
	return &Backend[K, V]{}
}

func (b *Backend[K, V]) search(key K) (int, bool) {
	return slices.BinarySearchFunc(b.store, key, func(e storage.Entry[K, V], k K) int {
		return cmp.Compare(e.Key, k)
	})
}

// Get retrieves a value from the in-memory store by its key.
func (b *Backend[K, V]) Get(ctx context.Context, key K) (V, bool, error) {
	if i, found := b.search(key); found {
		return b.store[i].Value, true, nil
	}
	var zero V
	return zero, false, nil
}

// Set stores a key-value pair in the in-memory store, replacing any
// existing value for the key.
func (b *Backend[K, V]) Set(ctx context.Context, key K, value V) error {
	i, found := b.search(key)
	if found {
		b.store[i].Value = value
		return nil
	}

	b.store = slices.Insert(b.store, i, storage.Entry[K, V]{Key: key, Value: value})
	return nil
}

// Delete removes a key-value pair from the in-memory store by its key.
func (b *Backend[K, V]) Delete(ctx context.Context, key K) error {
	if i, found := b.search(key); found {
		b.store = slices.Delete(b.store, i, i+1)
	}
	return nil
}

// List retrieves key-value pairs from the in-memory store, with optional pagination.
func (b *Backend[K, V]) List(ctx context.Context, pageSize *int, pageToken *K) (iter.Seq2[K, V], *K, error) {
	start := 0
	if pageToken != nil {
		start, _ = b.search(*pageToken)
	}

	limit := storage.ListLimit(pageSize)
	end := min(start+limit, len(b.store))

	page := slices.Clone(b.store[start:end])

	var nextPageToken *K
	if end < len(b.store) {
		nextPageToken = storage.PageToken(b.store[end].Key)
	}

	return storage.Seq(page), nextPageToken, nil
}

// Flush is a no-op for the in-memory backend.
func (b *Backend[K, V]) Flush(context.Context) error {
	return nil
}

// Close is a no-op for the in-memory backend.
func (b *Backend[K, V]) Close(context.Context) error {
	return nil
}
