package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cockroachdb/pebble"
	"github.com/picatz/tavus/internal/history"
	"github.com/picatz/tavus/internal/history/storage"
	"github.com/picatz/tavus/internal/history/storage/memory"
	pebbleStorage "github.com/picatz/tavus/internal/history/storage/pebble"
	"github.com/spf13/cobra"
)

type stderrLoggerAndTracer struct{}

func (l *stderrLoggerAndTracer) Infof(format string, args ...interface{}) {}
func (l *stderrLoggerAndTracer) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
func (l *stderrLoggerAndTracer) Fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func (l *stderrLoggerAndTracer) Eventf(ctx context.Context, format string, args ...interface{}) {}
func (l *stderrLoggerAndTracer) IsTracingEnabled(ctx context.Context) bool {
	return false
}

// openHistory opens the pebble-backed history in the --history-dir directory,
// or an in-memory history with --temporary.
func openHistory(cmd *cobra.Command) (*history.Store, error) {
	if temporary, _ := cmd.Flags().GetBool("temporary"); temporary {
		return history.NewStore(memory.NewBackend[string, history.Record]()), nil
	}

	dir, _ := cmd.Flags().GetString("history-dir")
	if dir == "" {
		dir = history.DefaultPath()
	}

	opts := &pebble.Options{
		LoggerAndTracer: &stderrLoggerAndTracer{},
	}

	backend, err := pebbleStorage.NewBackend(dir, opts, &storage.JSONCodec[string, history.Record]{})
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}

	return history.NewStore(backend), nil
}
