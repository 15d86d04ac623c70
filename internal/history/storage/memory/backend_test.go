package memory_test

import (
	"testing"

	"github.com/picatz/tavus/internal/history"
	"github.com/picatz/tavus/internal/history/storage/memory"
	"github.com/picatz/tavus/internal/history/storage/tests"
)

func TestBackend(t *testing.T) {
	tests.BackendSuite(t, memory.NewBackend[string, string]())
	tests.BackendSuite_history_records(t, memory.NewBackend[string, history.Record]())
}
