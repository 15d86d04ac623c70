package history_test

import (
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/picatz/tavus"
	"github.com/picatz/tavus/internal/history"
	"github.com/picatz/tavus/internal/history/storage/memory"
	"github.com/segmentio/ksuid"
	"github.com/shoenig/test/must"
)

func TestNewRecord_withURL(t *testing.T) {
	resp, err := tavus.DecodeCreateConversationResponse([]byte(`{"conversation_id": "c123", "conversation_name": "Onboarding", "conversation_url": "https://example.com/c/123"}`))
	must.NoError(t, err)
	resp.StatusCode = 200

	rec := history.NewRecord(tavus.DefaultConversationRequest(), resp)

	_, err = ksuid.Parse(rec.ID)
	must.NoError(t, err)
	must.Eq(t, "UTC", rec.CreatedAt.Location().String())
	must.False(t, rec.CreatedAt.IsZero())

	must.Eq(t, "c123", rec.ConversationID)
	must.Eq(t, "Onboarding", rec.Name)
	must.Eq(t, "https://example.com/c/123", rec.URL)
	must.Eq(t, 200, rec.StatusCode)
	must.False(t, rec.Opened)
}

func TestNewRecord_withoutURL(t *testing.T) {
	resp, err := tavus.DecodeCreateConversationResponse([]byte(`{"status": "error", "message": "bad request"}`))
	must.NoError(t, err)
	resp.StatusCode = 400

	rec := history.NewRecord(tavus.DefaultConversationRequest(), resp)
	must.Eq(t, "StudySauce", rec.Name)
	must.Eq(t, "", rec.URL)
	must.Eq(t, 400, rec.StatusCode)
	must.False(t, rec.Opened)
}

func TestStore_listsInInsertionOrder(t *testing.T) {
	store := history.NewStore(memory.NewBackend[string, history.Record]())

	var ids []string
	for range 40 {
		rec := history.NewRecord(tavus.DefaultConversationRequest(), nil)
		must.NoError(t, store.Add(t.Context(), rec))
		ids = append(ids, rec.ID)
	}

	must.True(t, slices.IsSorted(ids))

	records, err := store.List(t.Context(), 0)
	must.NoError(t, err)

	got := make([]string, 0, len(records))
	for _, rec := range records {
		got = append(got, rec.ID)
	}
	must.Eq(t, ids, got)

	for _, id := range ids {
		_, ok, err := store.Get(t.Context(), id)
		must.NoError(t, err)
		must.True(t, ok)
	}
}

func TestStore_listLimitKeepsOldest(t *testing.T) {
	store := history.NewStore(memory.NewBackend[string, history.Record]())

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// IDs deliberately sort against creation time.
	for i, id := range []string{"c", "b", "a"} {
		must.NoError(t, store.Add(t.Context(), history.Record{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Millisecond)}))
	}

	records, err := store.List(t.Context(), 2)
	must.NoError(t, err)
	must.Eq(t, 2, len(records))
	must.Eq(t, "c", records[0].ID)
	must.Eq(t, "b", records[1].ID)
}

func TestDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	must.Eq(t, filepath.Join(home, history.DefaultDirName), history.DefaultPath())
}
