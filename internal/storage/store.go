// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/karn30chavda/VerdantView/internal/models"
)

// Sentinel errors returned by store implementations. Check with errors.Is.
var (
	// ErrNotFound is returned by mutating operations addressing a record
	// that does not exist. Get operations return (nil, nil) instead.
	ErrNotFound = errors.New("record not found")

	// ErrProtectedCategory is returned when deleting a default category.
	ErrProtectedCategory = errors.New("category is protected")
)

// DefaultCategories is the fixed category set seeded at first initialization.
// These names can never be deleted.
var DefaultCategories = []string{
	"Food",
	"Transport",
	"Shopping",
	"Bills",
	"Entertainment",
	"Health",
	"Other",
}

// IsDefaultCategory reports whether name belongs to the protected set.
func IsDefaultCategory(name string) bool {
	for _, d := range DefaultCategories {
		if d == name {
			return true
		}
	}
	return false
}

// ExpenseStore persists income/expense entries.
type ExpenseStore interface {
	// CreateExpense persists a new entry and populates e.ID.
	// Any caller-supplied ID is ignored.
	CreateExpense(ctx context.Context, e *models.Expense) error
	GetExpense(ctx context.Context, id int64) (*models.Expense, error)
	ListExpenses(ctx context.Context) ([]*models.Expense, error)
	UpdateExpense(ctx context.Context, e *models.Expense) error
	DeleteExpense(ctx context.Context, id int64) error
}

// CategoryStore persists categories.
type CategoryStore interface {
	CreateCategory(ctx context.Context, c *models.Category) error
	ListCategories(ctx context.Context) ([]*models.Category, error)

	// DeleteCategory removes a user-created category. Deleting a category
	// whose name is in DefaultCategories fails with ErrProtectedCategory
	// and leaves the collection unchanged.
	DeleteCategory(ctx context.Context, id int64) error
}

// ReminderStore persists reminders.
type ReminderStore interface {
	CreateReminder(ctx context.Context, r *models.Reminder) error
	GetReminder(ctx context.Context, id int64) (*models.Reminder, error)
	ListReminders(ctx context.Context) ([]*models.Reminder, error)
	UpdateReminder(ctx context.Context, r *models.Reminder) error
	DeleteReminder(ctx context.Context, id int64) error
}

// SettingsStore persists the singleton settings record.
type SettingsStore interface {
	GetSettings(ctx context.Context) (*models.AppSettings, error)

	// UpdateSettings merges the patch into the stored record. Nil patch
	// fields keep their stored values.
	UpdateSettings(ctx context.Context, patch *models.SettingsPatch) error
}

// SavingsStore persists savings transactions.
type SavingsStore interface {
	CreateSavingsTransaction(ctx context.Context, tx *models.SavingsTransaction) error
	ListSavingsTransactions(ctx context.Context) ([]*models.SavingsTransaction, error)
	DeleteSavingsTransaction(ctx context.Context, id int64) error
}

// TripStore persists trips and their member rosters.
type TripStore interface {
	CreateTrip(ctx context.Context, t *models.Trip) error
	GetTrip(ctx context.Context, id int64) (*models.Trip, error)
	ListTrips(ctx context.Context) ([]*models.Trip, error)
	UpdateTripStatus(ctx context.Context, id int64, status string) error

	// DeleteTrip removes the trip and its roster. Trip expenses are NOT
	// cascaded; see MaintenanceStore.DeleteOrphanTripExpenses.
	DeleteTrip(ctx context.Context, id int64) error
}

// TripExpenseStore persists trip expenses.
type TripExpenseStore interface {
	CreateTripExpense(ctx context.Context, e *models.TripExpense) error
	GetTripExpense(ctx context.Context, id int64) (*models.TripExpense, error)
	ListTripExpenses(ctx context.Context) ([]*models.TripExpense, error)

	// ListTripExpensesByTrip uses the trip_id index.
	ListTripExpensesByTrip(ctx context.Context, tripID int64) ([]*models.TripExpense, error)
	UpdateTripExpense(ctx context.Context, e *models.TripExpense) error
	DeleteTripExpense(ctx context.Context, id int64) error
}

// MaintenanceStore groups batched maintenance operations. Each runs in a
// single transaction and publishes at most one change notification.
type MaintenanceStore interface {
	// ApplyReminderSweep advances the given reminders and removes the given
	// IDs in one transaction. A single notification is published iff at
	// least one reminder changed.
	ApplyReminderSweep(ctx context.Context, advance []*models.Reminder, remove []int64) error

	// WipeExceptTrips clears every collection except trips and trip
	// expenses, then re-seeds default categories and settings.
	WipeExceptTrips(ctx context.Context) error

	// DeleteOrphanTripExpenses removes trip expenses whose trip no longer
	// exists and returns how many were removed.
	DeleteOrphanTripExpenses(ctx context.Context) (int64, error)
}

// Store is the full storage surface. This abstraction allows swapping
// backends without changing the service layer.
type Store interface {
	ExpenseStore
	CategoryStore
	ReminderStore
	SettingsStore
	SavingsStore
	TripStore
	TripExpenseStore
	MaintenanceStore

	// InitializeDefaults ensures the default category set and the singleton
	// settings record exist. Idempotent; never removes user data.
	InitializeDefaults(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
