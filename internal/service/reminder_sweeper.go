package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/karn30chavda/VerdantView/internal/models"
	"github.com/karn30chavda/VerdantView/internal/storage"
)

// ReminderSweeper retires or advances reminders whose due date has passed.
// It is invoked at app-active time, not on a background schedule.
type ReminderSweeper struct {
	store storage.Store
}

// NewReminderSweeper creates a ReminderSweeper with the given storage backend.
func NewReminderSweeper(store storage.Store) *ReminderSweeper {
	return &ReminderSweeper{store: store}
}

// Sweep processes every reminder due strictly before the start of now's day
// (day granularity, not time-of-day):
//
//   - non-recurring: deleted
//   - recurring: lastTriggered set to the previous due date, due date
//     advanced by repeatInterval days from the previous due date (not from
//     now, so a missed interval does not drift)
//
// All changes are applied in one store transaction, which publishes exactly
// one change notification. A sweep that finds nothing overdue writes and
// publishes nothing.
func (s *ReminderSweeper) Sweep(ctx context.Context, now time.Time) (advanced, removed int, err error) {
	reminders, err := s.store.ListReminders(ctx)
	if err != nil {
		return 0, 0, err
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var advance []*models.Reminder
	var remove []int64
	for _, r := range reminders {
		due := time.Unix(r.Date, 0).In(now.Location())
		if !due.Before(startOfDay) {
			continue
		}

		if !r.IsRecurring {
			remove = append(remove, r.ID)
			continue
		}

		next := *r
		next.LastTriggered = r.Date
		next.Date = due.AddDate(0, 0, r.RepeatInterval).Unix()
		advance = append(advance, &next)
	}

	if err := s.store.ApplyReminderSweep(ctx, advance, remove); err != nil {
		slog.Error("Reminder sweep failed", "error", err)
		return 0, 0, err
	}

	if len(advance) > 0 || len(remove) > 0 {
		slog.Info("Reminder sweep applied", "advanced", len(advance), "removed", len(remove))
	}
	return len(advance), len(remove), nil
}
