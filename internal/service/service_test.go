package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/karn30chavda/VerdantView/internal/notify"
	"github.com/karn30chavda/VerdantView/internal/storage/sqlite"
)

// newTestStore opens an initialized store on a throwaway database.
func newTestStore(t *testing.T) (*sqlite.Store, *notify.Broker) {
	t.Helper()

	broker := notify.NewBroker()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), broker)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.InitializeDefaults(context.Background()); err != nil {
		t.Fatalf("failed to initialize defaults: %v", err)
	}
	return store, broker
}
