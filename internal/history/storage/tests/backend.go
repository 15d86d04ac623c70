// Package tests holds the behaviour every storage backend must share.
package tests

import (
	"testing"
	"time"

	"github.com/picatz/tavus/internal/history"
	"github.com/picatz/tavus/internal/history/storage"
	"github.com/shoenig/test/must"
)

// collect drains a List iterator into its keys, in order.
func collect[V any](t *testing.T, b storage.Backend[string, V], pageSize *int, token *string) ([]string, []V, *string) {
	t.Helper()

	entries, next, err := b.List(t.Context(), pageSize, token)
	must.NoError(t, err)

	var (
		keys   []string
		values []V
	)
	for k, v := range entries {
		keys = append(keys, k)
		values = append(values, v)
	}
	return keys, values, next
}

// BackendSuite tests a backend implementation of the storage package, using
// the provided backend instance to perform the tests.
func BackendSuite(t *testing.T, backend storage.Backend[string, string]) {
	t.Helper()

	_, ok, err := backend.Get(t.Context(), "k1")
	must.NoError(t, err)
	must.False(t, ok)

	// Inserted out of order on purpose.
	must.NoError(t, backend.Set(t.Context(), "k2", "two"))
	must.NoError(t, backend.Set(t.Context(), "k1", "one"))
	must.NoError(t, backend.Set(t.Context(), "k3", "three"))

	value, ok, err := backend.Get(t.Context(), "k2")
	must.NoError(t, err)
	must.True(t, ok)
	must.Eq(t, "two", value)

	must.NoError(t, backend.Set(t.Context(), "k2", "TWO"))

	value, ok, err = backend.Get(t.Context(), "k2")
	must.NoError(t, err)
	must.True(t, ok)
	must.Eq(t, "TWO", value)

	keys, values, next := collect(t, backend, storage.PageSize(2), nil)
	must.Eq(t, []string{"k1", "k2"}, keys)
	must.Eq(t, []string{"one", "TWO"}, values)
	must.NotNil(t, next)
	must.Eq(t, "k3", *next)

	keys, values, next = collect(t, backend, nil, next)
	must.Eq(t, []string{"k3"}, keys)
	must.Eq(t, []string{"three"}, values)
	must.Nil(t, next)

	must.NoError(t, backend.Delete(t.Context(), "k1"))
	must.NoError(t, backend.Delete(t.Context(), "missing"))

	_, ok, err = backend.Get(t.Context(), "k1")
	must.NoError(t, err)
	must.False(t, ok)

	keys, _, next = collect(t, backend, nil, nil)
	must.Eq(t, []string{"k2", "k3"}, keys)
	must.Nil(t, next)

	must.NoError(t, backend.Flush(t.Context()))
}

// BackendSuite_history_records runs the history store on top of a backend.
func BackendSuite_history_records(t *testing.T, b storage.Backend[string, history.Record]) {
	t.Helper()

	store := history.NewStore(b)

	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	first := history.Record{ID: "a", Name: "StudySauce", URL: "https://example.com/c/1", StatusCode: 200, Opened: true, CreatedAt: created}
	second := history.Record{ID: "b", Name: "StudySauce", StatusCode: 400, CreatedAt: created.Add(time.Minute)}

	must.NoError(t, store.Add(t.Context(), second))
	must.NoError(t, store.Add(t.Context(), first))
	must.Error(t, store.Add(t.Context(), history.Record{}))

	got, ok, err := store.Get(t.Context(), "a")
	must.NoError(t, err)
	must.True(t, ok)
	must.Eq(t, first.URL, got.URL)
	must.True(t, first.CreatedAt.Equal(got.CreatedAt))

	records, err := store.List(t.Context(), 0)
	must.NoError(t, err)
	must.Eq(t, 2, len(records))
	must.Eq(t, "a", records[0].ID)
	must.Eq(t, "b", records[1].ID)

	records, err = store.List(t.Context(), 1)
	must.NoError(t, err)
	must.Eq(t, 1, len(records))
	must.Eq(t, "a", records[0].ID)

	removed, err := store.Clear(t.Context())
	must.NoError(t, err)
	must.Eq(t, 2, removed)

	records, err = store.List(t.Context(), 0)
	must.NoError(t, err)
	must.Eq(t, 0, len(records))
}
