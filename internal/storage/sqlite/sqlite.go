// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/karn30chavda/VerdantView/internal/models"
	"github.com/karn30chavda/VerdantView/internal/notify"
	"github.com/karn30chavda/VerdantView/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store using SQLite.
// Every successful write publishes exactly one change notification on the
// broker; reads publish nothing.
type Store struct {
	db     *sql.DB
	broker *notify.Broker
}

// Open creates a new Store at the given database path.
// It creates the parent directories and runs migrations automatically.
// An error here means storage is unavailable for this session; callers must
// surface it rather than retry.
func Open(dbPath string, broker *notify.Broker) (*Store, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db, broker: broker}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// notifyChange publishes a single change signal if a broker is attached.
// Called once per committed write.
func (s *Store) notifyChange() {
	if s.broker != nil {
		s.broker.Publish()
	}
}

// InitializeDefaults seeds the protected category set and the singleton
// settings record. Missing default categories are added without touching
// user-created ones; the settings row is created only if absent.
// Seeding does not publish change notifications.
func (s *Store) InitializeDefaults(ctx context.Context) error {
	return seedDefaults(ctx, s.db)
}

// execer is satisfied by both *sql.DB and *sql.Tx, so seeding can run
// standalone or inside a larger transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func seedDefaults(ctx context.Context, db execer) error {
	for _, name := range storage.DefaultCategories {
		_, err := db.ExecContext(ctx,
			"INSERT OR IGNORE INTO categories (name) VALUES (?)", name)
		if err != nil {
			return fmt.Errorf("failed to seed category %q: %w", name, err)
		}
	}

	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings
		 (id, monthly_budget, emergency_fund_goal, emergency_fund_current, user_name, theme)
		 VALUES (?, 0, 0, 0, '', 'system')`,
		models.SettingsID,
	)
	if err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}

	return nil
}
