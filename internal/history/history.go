// Package history keeps a local record of the conversations the CLI has
// created, so their URLs can be found again later.
package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/picatz/tavus"
	"github.com/picatz/tavus/internal/history/storage"
	"github.com/segmentio/ksuid"
)

// DefaultDirName is the name of the history directory inside the user's home.
const DefaultDirName = ".tavus-cli-history"

// DefaultPath returns where the CLI keeps its [pebble]-backed history
// database: DefaultDirName in the user's home directory, or in the working
// directory if the home directory is unknown.
//
// [pebble]: https://github.com/cockroachdb/pebble
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultDirName
	}
	return filepath.Join(home, DefaultDirName)
}

// Record describes one "create conversation" call.
type Record struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id,omitzero"`
	Name           string    `json:"name,omitzero"`
	URL            string    `json:"url,omitzero"`
	StatusCode     int       `json:"status_code,omitzero"`
	Opened         bool      `json:"opened"`
	CreatedAt      time.Time `json:"created_at"`
}

var (
	seqMu sync.Mutex
	seq   = &ksuid.Sequence{Seed: ksuid.New()}
)

// nextID returns a KSUID that sorts after every ID previously returned by
// this process.
func nextID() ksuid.KSUID {
	seqMu.Lock()
	defer seqMu.Unlock()

	id, err := seq.Next()
	if err != nil {
		// The sequence is exhausted after 65536 IDs.
		seq = &ksuid.Sequence{Seed: ksuid.New()}
		id, _ = seq.Next()
	}
	return id
}

// NewRecord builds a record for a response to req. Opened is left false, it
// is up to the caller to say whether the URL was handed to a browser.
func NewRecord(req *tavus.CreateConversationRequest, resp *tavus.CreateConversationResponse) Record {
	rec := Record{
		ID:        nextID().String(),
		CreatedAt: time.Now().UTC(),
	}

	if req != nil {
		rec.Name = req.ConversationName
	}

	if resp != nil {
		rec.ConversationID = resp.ConversationID
		rec.StatusCode = resp.StatusCode
		if resp.ConversationName != "" {
			rec.Name = resp.ConversationName
		}
		if u, ok := resp.URL(); ok {
			rec.URL = u
		}
	}

	return rec
}

// Store reads and writes records through a storage backend.
type Store struct {
	backend storage.Backend[string, Record]
}

// NewStore returns a Store on top of b.
func NewStore(b storage.Backend[string, Record]) *Store {
	return &Store{backend: b}
}

// Add saves rec.
func (s *Store) Add(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		return fmt.Errorf("history: record has no ID")
	}

	if err := s.backend.Set(ctx, rec.ID, rec); err != nil {
		return fmt.Errorf("failed to save history record %q: %w", rec.ID, err)
	}
	return nil
}

// Get returns the record with the given ID.
func (s *Store) Get(ctx context.Context, id string) (Record, bool, error) {
	return s.backend.Get(ctx, id)
}

// List returns up to limit records, oldest first. A limit of zero or less
// returns every record.
//
// Records are ordered by CreatedAt, then by ID. IDs from one process always
// ascend, but IDs from different processes only order by the second.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	var (
		records   []Record
		pageToken *string
	)

	for {
		entries, next, err := s.backend.List(ctx, storage.PageSize(storage.DefaultListPageSize), pageToken)
		if err != nil {
			return nil, fmt.Errorf("failed to list history: %w", err)
		}

		for _, rec := range entries {
			records = append(records, rec)
		}

		if next == nil {
			break
		}
		pageToken = next
	}

	slices.SortStableFunc(records, func(a, b Record) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	return records, nil
}

// Clear deletes every record and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int, error) {
	var removed int

	for {
		entries, next, err := s.backend.List(ctx, storage.PageSize(storage.DefaultListPageSize), nil)
		if err != nil {
			return removed, fmt.Errorf("failed to list history: %w", err)
		}

		for key := range entries {
			if err := s.backend.Delete(ctx, key); err != nil {
				return removed, fmt.Errorf("failed to delete history record %q: %w", key, err)
			}
			removed++
		}

		if next == nil {
			break
		}
	}

	if err := s.backend.Flush(ctx); err != nil {
		return removed, fmt.Errorf("failed to flush history: %w", err)
	}

	return removed, nil
}

// Close closes the underlying backend.
func (s *Store) Close(ctx context.Context) error {
	return s.backend.Close(ctx)
}
