package sqlite

import (
	"context"
	"fmt"

	"github.com/karn30chavda/VerdantView/internal/models"
)

// ApplyReminderSweep advances and removes reminders in one transaction.
// A no-op sweep (both lists empty) commits nothing and publishes nothing;
// otherwise exactly one change notification is published.
func (s *Store) ApplyReminderSweep(ctx context.Context, advance []*models.Reminder, remove []int64) error {
	if len(advance) == 0 && len(remove) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, r := range advance {
		_, err := tx.ExecContext(ctx,
			"UPDATE reminders SET date = ?, last_triggered = ? WHERE id = ?",
			r.Date, r.LastTriggered, r.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to advance reminder %d: %w", r.ID, err)
		}
	}

	for _, id := range remove {
		_, err := tx.ExecContext(ctx, "DELETE FROM reminders WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("failed to remove reminder %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reminder sweep: %w", err)
	}

	s.notifyChange()
	return nil
}

// WipeExceptTrips clears every collection except trips and trip expenses,
// then re-seeds the default categories and settings. Trips are deliberately
// excluded from this wipe path.
func (s *Store) WipeExceptTrips(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"expenses", "categories", "reminders", "settings", "savings_transactions"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	// Re-seeding in the same transaction means no committed state ever
	// lacks the default categories or the settings singleton.
	if err := seedDefaults(ctx, tx); err != nil {
		return fmt.Errorf("failed to re-seed defaults after wipe: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit wipe: %w", err)
	}

	s.notifyChange()
	return nil
}

// DeleteOrphanTripExpenses removes trip expenses whose trip no longer
// exists and returns how many were removed. Publishes one notification iff
// anything was removed.
func (s *Store) DeleteOrphanTripExpenses(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM trip_expenses WHERE trip_id NOT IN (SELECT id FROM trips)")
	if err != nil {
		return 0, fmt.Errorf("failed to delete orphaned trip expenses: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count orphaned trip expenses: %w", err)
	}

	if n > 0 {
		s.notifyChange()
	}
	return n, nil
}
