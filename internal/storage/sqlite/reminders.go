package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/karn30chavda/VerdantView/internal/models"
	"github.com/karn30chavda/VerdantView/internal/storage"
)

// CreateReminder inserts a new reminder and populates r.ID.
func (s *Store) CreateReminder(ctx context.Context, r *models.Reminder) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO reminders (title, date, is_recurring, repeat_interval, last_triggered)
		 VALUES (?, ?, ?, ?, ?)`,
		r.Title, r.Date, r.IsRecurring, r.RepeatInterval, r.LastTriggered,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reminder: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read reminder id: %w", err)
	}
	r.ID = id

	s.notifyChange()
	return nil
}

// GetReminder retrieves a reminder by ID. Returns (nil, nil) if absent.
func (s *Store) GetReminder(ctx context.Context, id int64) (*models.Reminder, error) {
	r := &models.Reminder{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, date, is_recurring, repeat_interval, last_triggered
		 FROM reminders WHERE id = ?`, id,
	).Scan(&r.ID, &r.Title, &r.Date, &r.IsRecurring, &r.RepeatInterval, &r.LastTriggered)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reminder: %w", err)
	}

	return r, nil
}

// ListReminders retrieves every reminder ordered by due date.
func (s *Store) ListReminders(ctx context.Context) ([]*models.Reminder, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, date, is_recurring, repeat_interval, last_triggered
		 FROM reminders ORDER BY date`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	var reminders []*models.Reminder
	for rows.Next() {
		r := &models.Reminder{}
		if err := rows.Scan(&r.ID, &r.Title, &r.Date, &r.IsRecurring, &r.RepeatInterval, &r.LastTriggered); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		reminders = append(reminders, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reminders: %w", err)
	}

	return reminders, nil
}

// UpdateReminder rewrites an existing reminder.
func (s *Store) UpdateReminder(ctx context.Context, r *models.Reminder) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE reminders
		 SET title = ?, date = ?, is_recurring = ?, repeat_interval = ?, last_triggered = ?
		 WHERE id = ?`,
		r.Title, r.Date, r.IsRecurring, r.RepeatInterval, r.LastTriggered, r.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update reminder: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("reminder %d: %w", r.ID, storage.ErrNotFound)
	}

	s.notifyChange()
	return nil
}

// DeleteReminder removes a reminder by ID.
func (s *Store) DeleteReminder(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM reminders WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("reminder %d: %w", id, storage.ErrNotFound)
	}

	s.notifyChange()
	return nil
}
