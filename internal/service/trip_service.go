// Package service implements the aggregate operations composed from the
// store: trip lifecycle, export/import with ID remapping, the reminder
// sweeper, and budget reporting.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/karn30chavda/VerdantView/internal/models"
	"github.com/karn30chavda/VerdantView/internal/settlement"
	"github.com/karn30chavda/VerdantView/internal/storage"
)

// ErrMalformedBackup is returned when an import payload does not parse as
// the expected document shape. No writes happen before full validation.
var ErrMalformedBackup = errors.New("malformed backup document")

// TripExportVersion tags single-trip export documents.
const TripExportVersion = "1.0"

// TripExport is the single-trip export document.
type TripExport struct {
	ExportID   string                `json:"exportId"`
	Version    string                `json:"version"`
	ExportedAt int64                 `json:"exportedAt"`
	Trip       *models.Trip          `json:"trip"`
	Expenses   []*models.TripExpense `json:"expenses"`
}

// TripService orchestrates trip lifecycle, trip-expense CRUD, settlement,
// and single-trip export/import.
type TripService struct {
	store storage.Store
}

// NewTripService creates a TripService with the given storage backend.
func NewTripService(store storage.Store) *TripService {
	return &TripService{store: store}
}

// CreateTrip creates an active trip with the roster stored as given.
// Member-name trimming and splitting is the caller's responsibility.
func (s *TripService) CreateTrip(ctx context.Context, name string, members []string) (*models.Trip, error) {
	trip := &models.Trip{
		Name:    name,
		Members: members,
	}
	if err := s.store.CreateTrip(ctx, trip); err != nil {
		slog.Error("CreateTrip failed", "name", name, "error", err)
		return nil, err
	}

	slog.Info("Trip created", "trip_id", trip.ID, "members_count", len(members))
	return trip, nil
}

// UpdateTripStatus transitions a trip between active and completed.
func (s *TripService) UpdateTripStatus(ctx context.Context, id int64, status string) error {
	if status != models.TripActive && status != models.TripCompleted {
		return fmt.Errorf("invalid trip status %q", status)
	}

	if err := s.store.UpdateTripStatus(ctx, id, status); err != nil {
		slog.Error("UpdateTripStatus failed", "trip_id", id, "error", err)
		return err
	}

	slog.Info("Trip status updated", "trip_id", id, "status", status)
	return nil
}

// DeleteTrip removes a trip. Its expenses are not cascaded; the count left
// behind is logged so the gap is visible (see BackupService.SweepOrphans).
func (s *TripService) DeleteTrip(ctx context.Context, id int64) error {
	expenses, err := s.store.ListTripExpensesByTrip(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteTrip(ctx, id); err != nil {
		slog.Error("DeleteTrip failed", "trip_id", id, "error", err)
		return err
	}

	if len(expenses) > 0 {
		slog.Warn("Trip deleted with expenses left behind",
			"trip_id", id, "orphaned_expenses", len(expenses))
	} else {
		slog.Info("Trip deleted", "trip_id", id)
	}
	return nil
}

// AddTripExpense records a spend within a trip. The trip must exist. A payer
// name that matches no roster member is accepted but logged: such spend is
// silently excluded from settlement totals.
func (s *TripService) AddTripExpense(ctx context.Context, e *models.TripExpense) error {
	trip, err := s.store.GetTrip(ctx, e.TripID)
	if err != nil {
		return err
	}
	if trip == nil {
		return fmt.Errorf("trip %d: %w", e.TripID, storage.ErrNotFound)
	}

	if !onRoster(trip.Members, e.PayerName) {
		slog.Warn("Trip expense payer is not on the roster; spend will be excluded from settlement",
			"trip_id", e.TripID, "payer", e.PayerName)
	}

	if e.Date == 0 {
		e.Date = time.Now().Unix()
	}

	if err := s.store.CreateTripExpense(ctx, e); err != nil {
		slog.Error("AddTripExpense failed", "trip_id", e.TripID, "error", err)
		return err
	}

	slog.Info("Trip expense added", "trip_id", e.TripID, "expense_id", e.ID, "amount", e.Amount)
	return nil
}

// UpdateTripExpense rewrites an existing trip expense.
func (s *TripService) UpdateTripExpense(ctx context.Context, e *models.TripExpense) error {
	return s.store.UpdateTripExpense(ctx, e)
}

// DeleteTripExpense removes a trip expense.
func (s *TripService) DeleteTripExpense(ctx context.Context, id int64) error {
	return s.store.DeleteTripExpense(ctx, id)
}

// TripWithExpenses loads a trip and its expenses. Returns (nil, nil, nil)
// if the trip does not exist; callers must check for absence.
func (s *TripService) TripWithExpenses(ctx context.Context, id int64) (*models.Trip, []*models.TripExpense, error) {
	trip, err := s.store.GetTrip(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if trip == nil {
		return nil, nil, nil
	}

	expenses, err := s.store.ListTripExpensesByTrip(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return trip, expenses, nil
}

// Settle computes the transfers that settle the trip. Consumers (e.g. PDF
// rendering) must use this output verbatim and never recompute it.
func (s *TripService) Settle(ctx context.Context, tripID int64) ([]settlement.Transfer, error) {
	trip, expenses, err := s.TripWithExpenses(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, fmt.Errorf("trip %d: %w", tripID, storage.ErrNotFound)
	}

	flat := make([]models.TripExpense, len(expenses))
	for i, e := range expenses {
		flat[i] = *e
	}

	transfers := settlement.Settle(trip.Members, flat)
	slog.Info("Trip settled", "trip_id", tripID, "transfers", len(transfers))
	return transfers, nil
}

// ExportTrip bundles a trip and its expenses into an export document.
func (s *TripService) ExportTrip(ctx context.Context, tripID int64) (*TripExport, error) {
	trip, expenses, err := s.TripWithExpenses(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, fmt.Errorf("trip %d: %w", tripID, storage.ErrNotFound)
	}

	return &TripExport{
		ExportID:   uuid.New().String(),
		Version:    TripExportVersion,
		ExportedAt: time.Now().Unix(),
		Trip:       trip,
		Expenses:   expenses,
	}, nil
}

// ParseTripExport validates a single-trip export document. It rejects the
// whole payload before any write can happen.
func ParseTripExport(data []byte) (*TripExport, error) {
	var doc TripExport
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBackup, err)
	}
	if doc.Trip == nil {
		return nil, fmt.Errorf("%w: missing trip record", ErrMalformedBackup)
	}
	return &doc, nil
}

// ImportTripAsNew inserts the exported trip as a new trip. The original trip
// identifier is discarded; the store assigns a fresh one, and every imported
// expense has its tripId rewritten to the new identifier. Expenses are only
// inserted after the new trip identifier is known.
func (s *TripService) ImportTripAsNew(ctx context.Context, doc *TripExport) (*models.Trip, error) {
	trip := &models.Trip{
		Name:    doc.Trip.Name,
		Members: doc.Trip.Members,
		Status:  doc.Trip.Status,
	}
	if err := s.store.CreateTrip(ctx, trip); err != nil {
		return nil, err
	}

	for _, e := range doc.Expenses {
		imported := &models.TripExpense{
			TripID:      trip.ID,
			PayerName:   e.PayerName,
			Amount:      e.Amount,
			Description: e.Description,
			Date:        e.Date,
		}
		if err := s.store.CreateTripExpense(ctx, imported); err != nil {
			return nil, fmt.Errorf("failed to import trip expense: %w", err)
		}
	}

	slog.Info("Trip imported as new", "trip_id", trip.ID, "expenses_count", len(doc.Expenses))
	return trip, nil
}

// ImportTripMerge appends the exported expenses into an existing trip. Each
// expense's own identifier is stripped and its tripId overwritten; the trip
// record itself is not touched.
func (s *TripService) ImportTripMerge(ctx context.Context, tripID int64, doc *TripExport) error {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if trip == nil {
		return fmt.Errorf("trip %d: %w", tripID, storage.ErrNotFound)
	}

	for _, e := range doc.Expenses {
		imported := &models.TripExpense{
			TripID:      tripID,
			PayerName:   e.PayerName,
			Amount:      e.Amount,
			Description: e.Description,
			Date:        e.Date,
		}
		if err := s.store.CreateTripExpense(ctx, imported); err != nil {
			return fmt.Errorf("failed to merge trip expense: %w", err)
		}
	}

	slog.Info("Trip import merged", "trip_id", tripID, "expenses_count", len(doc.Expenses))
	return nil
}

func onRoster(roster []string, name string) bool {
	for _, m := range roster {
		if m == name {
			return true
		}
	}
	return false
}
