// Package app owns the application-scoped store handle. It replaces a
// module-level lazily-initialized global: the App is created once at startup
// and passed to every component needing storage access.
package app

import (
	"context"
	"sync"

	"github.com/karn30chavda/VerdantView/internal/notify"
	"github.com/karn30chavda/VerdantView/internal/storage"
	"github.com/karn30chavda/VerdantView/internal/storage/sqlite"
)

// App lazily opens the store on first use. Concurrent callers converge on a
// single physical open: only one initialization (and one schema upgrade) ever
// runs, and every caller observes the same handle or the same failure. An
// open failure is cached: storage unavailable is fatal for the session, and
// later callers fail fast instead of re-opening.
type App struct {
	dbPath string
	broker *notify.Broker

	once  sync.Once
	store *sqlite.Store
	err   error
}

// New creates an App for the database at dbPath. Nothing is opened yet.
func New(dbPath string) *App {
	return &App{
		dbPath: dbPath,
		broker: notify.NewBroker(),
	}
}

// Broker returns the change-notification broker. Subscribers registered
// before the store opens still receive every subsequent change signal.
func (a *App) Broker() *notify.Broker {
	return a.broker
}

// Store opens the store on first call and returns the shared handle.
func (a *App) Store(ctx context.Context) (storage.Store, error) {
	a.once.Do(func() {
		a.store, a.err = sqlite.Open(a.dbPath, a.broker)
		if a.err != nil {
			return
		}
		a.err = a.store.InitializeDefaults(ctx)
		if a.err != nil {
			a.store.Close()
			a.store = nil
		}
	})

	if a.err != nil {
		return nil, a.err
	}
	return a.store, nil
}

// Close releases the store if it was opened.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}
