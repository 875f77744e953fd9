package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/karn30chavda/VerdantView/internal/models"
	"github.com/karn30chavda/VerdantView/internal/storage"
)

// CreateTripExpense inserts a new trip expense and populates e.ID.
// The caller is responsible for e.TripID pointing at an existing trip; the
// store does not enforce the reference.
func (s *Store) CreateTripExpense(ctx context.Context, e *models.TripExpense) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO trip_expenses (trip_id, payer_name, amount, description, date)
		 VALUES (?, ?, ?, ?, ?)`,
		e.TripID, e.PayerName, e.Amount, e.Description, e.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read trip expense id: %w", err)
	}
	e.ID = id

	s.notifyChange()
	return nil
}

// GetTripExpense retrieves a trip expense by ID. Returns (nil, nil) if absent.
func (s *Store) GetTripExpense(ctx context.Context, id int64) (*models.TripExpense, error) {
	e := &models.TripExpense{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, trip_id, payer_name, amount, description, date
		 FROM trip_expenses WHERE id = ?`, id,
	).Scan(&e.ID, &e.TripID, &e.PayerName, &e.Amount, &e.Description, &e.Date)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip expense: %w", err)
	}

	return e, nil
}

// ListTripExpenses retrieves every trip expense across all trips, as a flat
// list tagged with trip_id. Used by the whole-database export.
func (s *Store) ListTripExpenses(ctx context.Context) ([]*models.TripExpense, error) {
	return s.queryTripExpenses(ctx,
		`SELECT id, trip_id, payer_name, amount, description, date
		 FROM trip_expenses ORDER BY trip_id, date`)
}

// ListTripExpensesByTrip retrieves the expenses of one trip via the trip_id
// index, ordered by date.
func (s *Store) ListTripExpensesByTrip(ctx context.Context, tripID int64) ([]*models.TripExpense, error) {
	return s.queryTripExpenses(ctx,
		`SELECT id, trip_id, payer_name, amount, description, date
		 FROM trip_expenses WHERE trip_id = ? ORDER BY date`, tripID)
}

func (s *Store) queryTripExpenses(ctx context.Context, query string, args ...interface{}) ([]*models.TripExpense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list trip expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.TripExpense
	for rows.Next() {
		e := &models.TripExpense{}
		if err := rows.Scan(&e.ID, &e.TripID, &e.PayerName, &e.Amount, &e.Description, &e.Date); err != nil {
			return nil, fmt.Errorf("failed to scan trip expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trip expenses: %w", err)
	}

	return expenses, nil
}

// UpdateTripExpense rewrites an existing trip expense.
func (s *Store) UpdateTripExpense(ctx context.Context, e *models.TripExpense) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE trip_expenses
		 SET trip_id = ?, payer_name = ?, amount = ?, description = ?, date = ?
		 WHERE id = ?`,
		e.TripID, e.PayerName, e.Amount, e.Description, e.Date, e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update trip expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("trip expense %d: %w", e.ID, storage.ErrNotFound)
	}

	s.notifyChange()
	return nil
}

// DeleteTripExpense removes a trip expense by ID.
func (s *Store) DeleteTripExpense(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM trip_expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete trip expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("trip expense %d: %w", id, storage.ErrNotFound)
	}

	s.notifyChange()
	return nil
}
