package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/karn30chavda/VerdantView/internal/models"
	"github.com/karn30chavda/VerdantView/internal/storage"
)

// CreateExpense inserts a new expense entry and populates e.ID.
// Any caller-supplied ID is ignored; the store assigns identifiers.
func (s *Store) CreateExpense(ctx context.Context, e *models.Expense) error {
	if e.Type == "" {
		e.Type = models.TypeExpense
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (title, amount, category, type, payment_mode, date, notes, exclude_from_budget)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Title, e.Amount, e.Category, e.Type, e.PaymentMode, e.Date, nullString(e.Notes), e.ExcludeFromBudget,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read expense id: %w", err)
	}
	e.ID = id

	s.notifyChange()
	return nil
}

// GetExpense retrieves an expense by ID. Returns (nil, nil) if absent.
func (s *Store) GetExpense(ctx context.Context, id int64) (*models.Expense, error) {
	e := &models.Expense{}
	var notes sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, amount, category, type, payment_mode, date, notes, exclude_from_budget
		 FROM expenses WHERE id = ?`, id,
	).Scan(&e.ID, &e.Title, &e.Amount, &e.Category, &e.Type, &e.PaymentMode, &e.Date, &notes, &e.ExcludeFromBudget)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	e.Notes = notes.String
	return e, nil
}

// ListExpenses retrieves every expense entry, newest first.
func (s *Store) ListExpenses(ctx context.Context) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, amount, category, type, payment_mode, date, notes, exclude_from_budget
		 FROM expenses ORDER BY date DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		e := &models.Expense{}
		var notes sql.NullString
		if err := rows.Scan(&e.ID, &e.Title, &e.Amount, &e.Category, &e.Type, &e.PaymentMode, &e.Date, &notes, &e.ExcludeFromBudget); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Notes = notes.String
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}

// UpdateExpense rewrites an existing expense entry.
func (s *Store) UpdateExpense(ctx context.Context, e *models.Expense) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE expenses
		 SET title = ?, amount = ?, category = ?, type = ?, payment_mode = ?, date = ?, notes = ?, exclude_from_budget = ?
		 WHERE id = ?`,
		e.Title, e.Amount, e.Category, e.Type, e.PaymentMode, e.Date, nullString(e.Notes), e.ExcludeFromBudget, e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("expense %d: %w", e.ID, storage.ErrNotFound)
	}

	s.notifyChange()
	return nil
}

// DeleteExpense removes an expense entry by ID.
func (s *Store) DeleteExpense(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("expense %d: %w", id, storage.ErrNotFound)
	}

	s.notifyChange()
	return nil
}

// nullString maps an empty string to SQL NULL.
func nullString(v string) interface{} {
	if v == "" {
		return nil
	}
	return v
}
