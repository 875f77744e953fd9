package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/karn30chavda/VerdantView/internal/models"
	"github.com/karn30chavda/VerdantView/internal/storage"
)

// BackupVersion tags whole-database export documents.
const BackupVersion = "1.0"

// Backup is the whole-database export document. Trip expenses appear as a
// flat list tagged with tripId, not nested per trip, so flat re-import with
// remapping stays straightforward.
type Backup struct {
	ExportID            string                       `json:"exportId"`
	Version             string                       `json:"version"`
	ExportedAt          int64                        `json:"exportedAt"`
	Expenses            []*models.Expense            `json:"expenses"`
	Categories          []*models.Category           `json:"categories"`
	Reminders           []*models.Reminder           `json:"reminders"`
	Settings            []*models.AppSettings        `json:"settings"`
	SavingsTransactions []*models.SavingsTransaction `json:"savingsTransactions"`
	Trips               []*models.Trip               `json:"trips"`
	TripExpenses        []*models.TripExpense        `json:"trip_expenses"`
}

// BackupService implements whole-database export, import, wipe, and the
// orphaned trip-expense sweep.
type BackupService struct {
	store storage.Store
}

// NewBackupService creates a BackupService with the given storage backend.
func NewBackupService(store storage.Store) *BackupService {
	return &BackupService{store: store}
}

// ExportAll bundles every collection into one document.
func (s *BackupService) ExportAll(ctx context.Context) (*Backup, error) {
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	reminders, err := s.store.ListReminders(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	savings, err := s.store.ListSavingsTransactions(ctx)
	if err != nil {
		return nil, err
	}
	trips, err := s.store.ListTrips(ctx)
	if err != nil {
		return nil, err
	}
	tripExpenses, err := s.store.ListTripExpenses(ctx)
	if err != nil {
		return nil, err
	}

	doc := &Backup{
		ExportID:            uuid.New().String(),
		Version:             BackupVersion,
		ExportedAt:          time.Now().Unix(),
		Expenses:            expenses,
		Categories:          categories,
		Reminders:           reminders,
		SavingsTransactions: savings,
		Trips:               trips,
		TripExpenses:        tripExpenses,
	}
	if settings != nil {
		doc.Settings = []*models.AppSettings{settings}
	}

	slog.Info("Database exported",
		"expenses", len(expenses),
		"trips", len(trips),
		"trip_expenses", len(tripExpenses),
	)
	return doc, nil
}

// ParseBackup validates a whole-database export document before any write.
// A payload that does not parse, or that contains none of the expected
// collections, is rejected whole.
func ParseBackup(data []byte) (*Backup, error) {
	var doc Backup
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBackup, err)
	}
	if doc.Expenses == nil && doc.Categories == nil && doc.Reminders == nil &&
		doc.Settings == nil && doc.SavingsTransactions == nil && doc.Trips == nil &&
		doc.TripExpenses == nil {
		return nil, fmt.Errorf("%w: no recognizable collections", ErrMalformedBackup)
	}
	return &doc, nil
}

// ImportAll appends the document's records to the current database. Nothing
// is replaced or cleared; every record's original identifier is stripped so
// the store reassigns it.
//
// Trips are the ordering-sensitive case: each imported trip is inserted
// first to obtain its new identifier, and only then are its expenses
// inserted with tripId rewritten. Trip expenses whose tripId matches no
// imported trip cannot be remapped and are skipped with a warning.
func (s *BackupService) ImportAll(ctx context.Context, doc *Backup) error {
	for _, e := range doc.Expenses {
		imported := *e
		imported.ID = 0
		if err := s.store.CreateExpense(ctx, &imported); err != nil {
			return fmt.Errorf("failed to import expense: %w", err)
		}
	}

	// Categories carry a unique-name index; appending a name that already
	// exists would fail the whole import, so existing names are skipped.
	existing, err := s.store.ListCategories(ctx)
	if err != nil {
		return err
	}
	names := make(map[string]bool, len(existing))
	for _, c := range existing {
		names[c.Name] = true
	}
	for _, c := range doc.Categories {
		if names[c.Name] {
			continue
		}
		imported := &models.Category{Name: c.Name}
		if err := s.store.CreateCategory(ctx, imported); err != nil {
			return fmt.Errorf("failed to import category: %w", err)
		}
		names[c.Name] = true
	}

	for _, r := range doc.Reminders {
		imported := *r
		imported.ID = 0
		if err := s.store.CreateReminder(ctx, &imported); err != nil {
			return fmt.Errorf("failed to import reminder: %w", err)
		}
	}

	// Settings is a singleton: imported values merge into the existing
	// record instead of appending a second row.
	if len(doc.Settings) > 0 {
		a := doc.Settings[0]
		patch := &models.SettingsPatch{
			MonthlyBudget:        &a.MonthlyBudget,
			EmergencyFundGoal:    &a.EmergencyFundGoal,
			EmergencyFundCurrent: &a.EmergencyFundCurrent,
			UserName:             &a.UserName,
			Theme:                &a.Theme,
		}
		if err := s.store.UpdateSettings(ctx, patch); err != nil {
			return fmt.Errorf("failed to import settings: %w", err)
		}
	}

	for _, tx := range doc.SavingsTransactions {
		imported := *tx
		imported.ID = 0
		if err := s.store.CreateSavingsTransaction(ctx, &imported); err != nil {
			return fmt.Errorf("failed to import savings transaction: %w", err)
		}
	}

	// Insert each trip, then its expenses with the remapped identifier.
	// The child inserts must wait for the parent's new ID.
	idMap := make(map[int64]int64, len(doc.Trips))
	for _, t := range doc.Trips {
		imported := &models.Trip{
			Name:      t.Name,
			Members:   t.Members,
			CreatedAt: t.CreatedAt,
			Status:    t.Status,
		}
		if err := s.store.CreateTrip(ctx, imported); err != nil {
			return fmt.Errorf("failed to import trip: %w", err)
		}
		idMap[t.ID] = imported.ID
	}

	var skipped int
	for _, e := range doc.TripExpenses {
		newID, ok := idMap[e.TripID]
		if !ok {
			skipped++
			continue
		}
		imported := &models.TripExpense{
			TripID:      newID,
			PayerName:   e.PayerName,
			Amount:      e.Amount,
			Description: e.Description,
			Date:        e.Date,
		}
		if err := s.store.CreateTripExpense(ctx, imported); err != nil {
			return fmt.Errorf("failed to import trip expense: %w", err)
		}
	}
	if skipped > 0 {
		slog.Warn("Skipped trip expenses referencing trips absent from the backup", "count", skipped)
	}

	slog.Info("Database imported",
		"expenses", len(doc.Expenses),
		"trips", len(doc.Trips),
		"trip_expenses", len(doc.TripExpenses)-skipped,
	)
	return nil
}

// Wipe clears every collection except trips and trip expenses and restores
// the defaults. The trip exclusion is deliberate and scoped in the store
// method's name.
func (s *BackupService) Wipe(ctx context.Context) error {
	if err := s.store.WipeExceptTrips(ctx); err != nil {
		slog.Error("Wipe failed", "error", err)
		return err
	}
	slog.Info("Database wiped (trips preserved)")
	return nil
}

// SweepOrphans removes trip expenses whose trip has been deleted.
func (s *BackupService) SweepOrphans(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteOrphanTripExpenses(ctx)
	if err != nil {
		slog.Error("Orphan sweep failed", "error", err)
		return 0, err
	}
	if n > 0 {
		slog.Info("Orphaned trip expenses removed", "count", n)
	}
	return n, nil
}
