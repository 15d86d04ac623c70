package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/cockroachdb/pebble"
	"github.com/picatz/tavus"
	"github.com/picatz/tavus/internal/browser"
	"github.com/picatz/tavus/internal/config"
	"github.com/picatz/tavus/internal/history"
	"github.com/picatz/tavus/internal/history/storage"
	pebbleStorage "github.com/picatz/tavus/internal/history/storage/pebble"
	"github.com/shoenig/test/must"
)

// execute runs the CLI with args and returns what it wrote to stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	t.Setenv(config.EnvAPIKey, "")
	t.Setenv(config.EnvBaseURL, "")

	var stdout, stderr bytes.Buffer

	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(t.Context())
	return stdout.String(), stderr.String(), err
}

func tavusServer(t *testing.T, body string) string {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	return srv.URL
}

func TestRoot_opensConversation(t *testing.T) {
	var opened []string
	orig := openBrowser
	openBrowser = browser.LauncherFunc(func(url string) error {
		opened = append(opened, url)
		return nil
	})
	t.Cleanup(func() { openBrowser = orig })

	baseURL := tavusServer(t, `{"conversation_url": "https://example.com/c/123"}`)

	stdout, _, err := execute(t, "--api-key", "k", "--base-url", baseURL)
	must.NoError(t, err)
	must.Eq(t, "Opening conversation URL: https://example.com/c/123\n", stdout)
	must.Eq(t, []string{"https://example.com/c/123"}, opened)
}

func TestRoot_noBrowser(t *testing.T) {
	orig := openBrowser
	openBrowser = browser.LauncherFunc(func(url string) error {
		t.Fatalf("unexpected browser launch for %q", url)
		return nil
	})
	t.Cleanup(func() { openBrowser = orig })

	baseURL := tavusServer(t, `{"conversation_url": "https://example.com/c/123"}`)

	stdout, _, err := execute(t, "--api-key", "k", "--base-url", baseURL, "--no-browser")
	must.NoError(t, err)
	must.StrContains(t, stdout, "https://example.com/c/123")
}

func TestRoot_missingURL(t *testing.T) {
	const body = `{"status": "error", "message": "bad request"}`

	baseURL := tavusServer(t, body)

	stdout, _, err := execute(t, "--api-key", "k", "--base-url", baseURL, "--no-browser")
	must.NoError(t, err)
	must.StrContains(t, stdout, "No conversation URL found in response")
	must.StrContains(t, stdout, body)
}

func TestRoot_notJSON(t *testing.T) {
	baseURL := tavusServer(t, "not json at all")

	stdout, _, err := execute(t, "--api-key", "k", "--base-url", baseURL, "--no-browser")
	must.ErrorIs(t, err, tavus.ErrDecode)
	must.Eq(t, "", stdout)
}

func TestRoot_missingAPIKey(t *testing.T) {
	_, _, err := execute(t, "--no-browser")
	must.ErrorIs(t, err, config.ErrMissingAPIKey)
}

func TestRoot_recordAndHistory(t *testing.T) {
	dir := t.TempDir()
	baseURL := tavusServer(t, `{"conversation_id": "c1", "conversation_url": "https://example.com/c/1"}`)

	_, stderr, err := execute(t, "--api-key", "k", "--base-url", baseURL, "--no-browser", "--record", "--history-dir", dir)
	must.NoError(t, err)
	must.StrContains(t, stderr, "Recorded as ")

	stdout, _, err := execute(t, "history", "--history-dir", dir)
	must.NoError(t, err)
	must.StrContains(t, stdout, "https://example.com/c/1")
	must.StrContains(t, stdout, "StudySauce")

	stdout, _, err = execute(t, "history", "--history-dir", dir, "--clear")
	must.NoError(t, err)
	must.Eq(t, "Removed 1 recorded conversation(s)\n", stdout)

	stdout, _, err = execute(t, "history", "--history-dir", dir)
	must.NoError(t, err)
	must.StrContains(t, stdout, "No recorded conversations")
}

// readHistory returns the records kept in the pebble history at dir.
func readHistory(t *testing.T, dir string) []history.Record {
	t.Helper()

	backend, err := pebbleStorage.NewBackend(dir, &pebble.Options{}, &storage.JSONCodec[string, history.Record]{})
	must.NoError(t, err)

	store := history.NewStore(backend)
	defer store.Close(t.Context())

	records, err := store.List(t.Context(), 0)
	must.NoError(t, err)
	return records
}

func TestRoot_recordsWhetherOpened(t *testing.T) {
	orig := openBrowser
	openBrowser = browser.LauncherFunc(func(string) error { return nil })
	t.Cleanup(func() { openBrowser = orig })

	tests := []struct {
		name       string
		args       []string
		wantOpened bool
	}{
		{name: "browser", wantOpened: true},
		{name: "no browser", args: []string{"--no-browser"}, wantOpened: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			baseURL := tavusServer(t, `{"conversation_id": "c1", "conversation_url": "https://example.com/c/1"}`)

			args := append([]string{"--api-key", "k", "--base-url", baseURL, "--record", "--history-dir", dir}, tt.args...)
			_, stderr, err := execute(t, args...)
			must.NoError(t, err)

			id := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(stderr), "Recorded as "))

			records := readHistory(t, dir)
			must.Eq(t, 1, len(records))
			must.Eq(t, id, records[0].ID)
			must.Eq(t, "https://example.com/c/1", records[0].URL)
			must.Eq(t, tt.wantOpened, records[0].Opened)

			stdout, _, err := execute(t, "history", id, "--history-dir", dir)
			must.NoError(t, err)
			must.StrContains(t, stdout, id)
			must.Eq(t, !tt.wantOpened, strings.Contains(stdout, "(not opened)"))
		})
	}
}

func TestRoot_historyUnknownID(t *testing.T) {
	_, _, err := execute(t, "history", "missing", "--history-dir", t.TempDir())
	must.ErrorContains(t, err, `no recorded conversation "missing"`)
}

func TestRoot_temporaryHistory(t *testing.T) {
	dir := t.TempDir()
	baseURL := tavusServer(t, `{"conversation_id": "c1", "conversation_url": "https://example.com/c/1"}`)

	_, stderr, err := execute(t, "--api-key", "k", "--base-url", baseURL, "--no-browser", "--record", "--temporary", "--history-dir", dir)
	must.NoError(t, err)
	must.StrContains(t, stderr, "Recorded as ")

	entries, err := os.ReadDir(dir)
	must.NoError(t, err)
	must.SliceEmpty(t, entries)

	stdout, _, err := execute(t, "history", "--temporary", "--history-dir", dir)
	must.NoError(t, err)
	must.StrContains(t, stdout, "No recorded conversations")
}

func TestPayload(t *testing.T) {
	stdout, _, err := execute(t, "payload")
	must.NoError(t, err)

	var got tavus.CreateConversationRequest
	must.NoError(t, json.Unmarshal([]byte(stdout), &got))
	must.Eq(t, *tavus.DefaultConversationRequest(), got)

	again, _, err := execute(t, "payload")
	must.NoError(t, err)
	must.Eq(t, stdout, again)
}
