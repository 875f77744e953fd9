package service

import (
	"context"
	"testing"
	"time"

	"github.com/karn30chavda/VerdantView/internal/models"
)

func TestSweepRemovesOverdueNonRecurring(t *testing.T) {
	store, _ := newTestStore(t)
	sweeper := NewReminderSweeper(store)
	ctx := context.Background()

	now := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)

	overdue := &models.Reminder{Title: "Electricity", Date: yesterday.Unix()}
	upcoming := &models.Reminder{Title: "Rent", Date: now.AddDate(0, 0, 3).Unix()}
	store.CreateReminder(ctx, overdue)
	store.CreateReminder(ctx, upcoming)

	advanced, removed, err := sweeper.Sweep(ctx, now)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if advanced != 0 || removed != 1 {
		t.Errorf("sweep = %d advanced, %d removed, want 0/1", advanced, removed)
	}

	if got, _ := store.GetReminder(ctx, overdue.ID); got != nil {
		t.Errorf("overdue non-recurring reminder survived: %+v", got)
	}
	if got, _ := store.GetReminder(ctx, upcoming.ID); got == nil {
		t.Error("upcoming reminder was removed")
	}
}

func TestSweepAdvancesRecurring(t *testing.T) {
	store, _ := newTestStore(t)
	sweeper := NewReminderSweeper(store)
	ctx := context.Background()

	now := time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)
	prevDue := now.AddDate(0, 0, -1)

	r := &models.Reminder{
		Title:          "Gym",
		Date:           prevDue.Unix(),
		IsRecurring:    true,
		RepeatInterval: 30,
	}
	store.CreateReminder(ctx, r)

	advanced, removed, err := sweeper.Sweep(ctx, now)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if advanced != 1 || removed != 0 {
		t.Errorf("sweep = %d advanced, %d removed, want 1/0", advanced, removed)
	}

	got, err := store.GetReminder(ctx, r.ID)
	if err != nil || got == nil {
		t.Fatalf("recurring reminder missing after sweep: %v", err)
	}

	// Anchored to the previous due date, not to now.
	if want := prevDue.AddDate(0, 0, 30).Unix(); got.Date != want {
		t.Errorf("next due = %d, want %d", got.Date, want)
	}
	if got.LastTriggered != prevDue.Unix() {
		t.Errorf("lastTriggered = %d, want %d", got.LastTriggered, prevDue.Unix())
	}
}

func TestSweepIgnoresDueToday(t *testing.T) {
	store, _ := newTestStore(t)
	sweeper := NewReminderSweeper(store)
	ctx := context.Background()

	// Due earlier today: the sweeper works at day granularity, so this is
	// not yet overdue.
	now := time.Date(2025, 3, 15, 23, 0, 0, 0, time.UTC)
	today := time.Date(2025, 3, 15, 1, 0, 0, 0, time.UTC)

	r := &models.Reminder{Title: "Due today", Date: today.Unix()}
	store.CreateReminder(ctx, r)

	advanced, removed, err := sweeper.Sweep(ctx, now)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if advanced != 0 || removed != 0 {
		t.Errorf("sweep = %d advanced, %d removed, want 0/0", advanced, removed)
	}
	if got, _ := store.GetReminder(ctx, r.ID); got == nil {
		t.Error("same-day reminder was removed")
	}
}

func TestSweepEmptyPublishesNothing(t *testing.T) {
	store, broker := newTestStore(t)
	sweeper := NewReminderSweeper(store)
	ctx := context.Background()

	id, ch := broker.Subscribe()
	defer broker.Unsubscribe(id)

	// Drain anything pending from setup.
	select {
	case <-ch:
	default:
	}

	if _, _, err := sweeper.Sweep(ctx, time.Now()); err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}

	select {
	case <-ch:
		t.Error("empty sweep published a change notification")
	default:
	}
}
