package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/karn30chavda/VerdantView/internal/models"
	"github.com/karn30chavda/VerdantView/internal/notify"
	"github.com/karn30chavda/VerdantView/internal/storage"
)

func newTestStore(t *testing.T) (*Store, *notify.Broker) {
	t.Helper()

	dir := t.TempDir()
	broker := notify.NewBroker()
	store, err := Open(filepath.Join(dir, "test.db"), broker)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.InitializeDefaults(context.Background()); err != nil {
		t.Fatalf("InitializeDefaults failed: %v", err)
	}
	return store, broker
}

// drained reports whether a change signal is pending and clears it.
func drained(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestOpenAndMigrate(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "nested", "data", "test.db")

	store, err := Open(dbPath, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	var version int
	if err := store.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("failed to read user_version: %v", err)
	}
	if version != SchemaVersion {
		t.Errorf("user_version = %d, want %d", version, SchemaVersion)
	}
	store.Close()

	// Reopening must be a no-op migration that preserves data.
	store2, err := Open(dbPath, nil)
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	defer store2.Close()

	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("database file missing: %v", err)
	}
}

func TestInitializeDefaults(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	t.Run("seeds protected categories once", func(t *testing.T) {
		// A second run must not duplicate anything.
		if err := store.InitializeDefaults(ctx); err != nil {
			t.Fatalf("InitializeDefaults failed: %v", err)
		}

		categories, err := store.ListCategories(ctx)
		if err != nil {
			t.Fatalf("ListCategories failed: %v", err)
		}
		if len(categories) != len(storage.DefaultCategories) {
			t.Errorf("got %d categories, want %d", len(categories), len(storage.DefaultCategories))
		}
	})

	t.Run("seeds singleton settings", func(t *testing.T) {
		settings, err := store.GetSettings(ctx)
		if err != nil {
			t.Fatalf("GetSettings failed: %v", err)
		}
		if settings == nil {
			t.Fatal("expected settings record")
		}
		if settings.ID != models.SettingsID {
			t.Errorf("settings ID = %d, want %d", settings.ID, models.SettingsID)
		}
		if settings.Theme != "system" {
			t.Errorf("default theme = %q, want system", settings.Theme)
		}
	})
}

func TestExpenseCRUD(t *testing.T) {
	store, broker := newTestStore(t)
	ctx := context.Background()
	_, events := broker.Subscribe()

	e := &models.Expense{
		Title:       "Groceries",
		Amount:      42.50,
		Category:    "Food",
		PaymentMode: models.PaymentCard,
		Date:        time.Now().Unix(),
	}
	if err := store.CreateExpense(ctx, e); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	if e.ID == 0 {
		t.Error("expected expense ID to be assigned")
	}
	if e.Type != models.TypeExpense {
		t.Errorf("default type = %q, want expense", e.Type)
	}
	if !drained(events) {
		t.Error("expected a change notification after create")
	}

	got, err := store.GetExpense(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetExpense failed: %v", err)
	}
	if got == nil || got.Title != "Groceries" || got.Amount != 42.50 {
		t.Errorf("GetExpense = %+v", got)
	}
	if drained(events) {
		t.Error("reads must not publish change notifications")
	}

	got.Amount = 50
	if err := store.UpdateExpense(ctx, got); err != nil {
		t.Fatalf("UpdateExpense failed: %v", err)
	}
	drained(events)

	if err := store.DeleteExpense(ctx, e.ID); err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}

	absent, err := store.GetExpense(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetExpense after delete failed: %v", err)
	}
	if absent != nil {
		t.Errorf("expected absent result, got %+v", absent)
	}

	if err := store.DeleteExpense(ctx, e.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second delete: got %v, want ErrNotFound", err)
	}
}

func TestCategoryProtection(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	categories, err := store.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}

	for _, c := range categories {
		if !storage.IsDefaultCategory(c.Name) {
			continue
		}
		if err := store.DeleteCategory(ctx, c.ID); !errors.Is(err, storage.ErrProtectedCategory) {
			t.Errorf("deleting %q: got %v, want ErrProtectedCategory", c.Name, err)
		}
	}

	after, err := store.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(after) != len(categories) {
		t.Errorf("category count changed from %d to %d", len(categories), len(after))
	}

	// User-created categories remain deletable.
	custom := &models.Category{Name: "Gadgets"}
	if err := store.CreateCategory(ctx, custom); err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	if err := store.DeleteCategory(ctx, custom.ID); err != nil {
		t.Errorf("DeleteCategory failed for user category: %v", err)
	}
}

func TestSettingsMerge(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	name := "Karan"
	if err := store.UpdateSettings(ctx, &models.SettingsPatch{UserName: &name}); err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}

	budget := 2500.0
	if err := store.UpdateSettings(ctx, &models.SettingsPatch{MonthlyBudget: &budget}); err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}

	settings, err := store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.UserName != "Karan" {
		t.Errorf("partial update clobbered userName: %q", settings.UserName)
	}
	if settings.MonthlyBudget != 2500 {
		t.Errorf("monthlyBudget = %v, want 2500", settings.MonthlyBudget)
	}
	if settings.Theme != "system" {
		t.Errorf("partial update clobbered theme: %q", settings.Theme)
	}
}

func TestTripRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	trip := &models.Trip{
		Name:    "Goa",
		Members: []string{"Alice", "Bob", "Alice"}, // duplicates kept as given
	}
	if err := store.CreateTrip(ctx, trip); err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}
	if trip.ID == 0 || trip.CreatedAt == 0 {
		t.Errorf("expected assigned ID and timestamp, got %+v", trip)
	}
	if trip.Status != models.TripActive {
		t.Errorf("default status = %q, want active", trip.Status)
	}

	got, err := store.GetTrip(ctx, trip.ID)
	if err != nil {
		t.Fatalf("GetTrip failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected trip")
	}
	if len(got.Members) != 3 || got.Members[0] != "Alice" || got.Members[1] != "Bob" || got.Members[2] != "Alice" {
		t.Errorf("roster = %v, want ordered [Alice Bob Alice]", got.Members)
	}

	if err := store.UpdateTripStatus(ctx, trip.ID, models.TripCompleted); err != nil {
		t.Fatalf("UpdateTripStatus failed: %v", err)
	}
	got, _ = store.GetTrip(ctx, trip.ID)
	if got.Status != models.TripCompleted {
		t.Errorf("status = %q, want completed", got.Status)
	}

	absent, err := store.GetTrip(ctx, 9999)
	if err != nil {
		t.Fatalf("GetTrip failed: %v", err)
	}
	if absent != nil {
		t.Errorf("expected absent result for unknown trip, got %+v", absent)
	}
}

func TestTripExpenseIndex(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	a := &models.Trip{Name: "A", Members: []string{"X"}}
	b := &models.Trip{Name: "B", Members: []string{"Y"}}
	store.CreateTrip(ctx, a)
	store.CreateTrip(ctx, b)

	for i := 0; i < 3; i++ {
		store.CreateTripExpense(ctx, &models.TripExpense{TripID: a.ID, PayerName: "X", Amount: 10, Date: int64(i)})
	}
	store.CreateTripExpense(ctx, &models.TripExpense{TripID: b.ID, PayerName: "Y", Amount: 99, Date: 1})

	forA, err := store.ListTripExpensesByTrip(ctx, a.ID)
	if err != nil {
		t.Fatalf("ListTripExpensesByTrip failed: %v", err)
	}
	if len(forA) != 3 {
		t.Errorf("got %d expenses for trip A, want 3", len(forA))
	}
	for _, e := range forA {
		if e.TripID != a.ID {
			t.Errorf("expense %d has tripId %d, want %d", e.ID, e.TripID, a.ID)
		}
	}

	all, err := store.ListTripExpenses(ctx)
	if err != nil {
		t.Fatalf("ListTripExpenses failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("got %d expenses total, want 4", len(all))
	}
}

func TestDeleteTripLeavesExpenses(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	trip := &models.Trip{Name: "Orphan maker", Members: []string{"X"}}
	store.CreateTrip(ctx, trip)
	store.CreateTripExpense(ctx, &models.TripExpense{TripID: trip.ID, PayerName: "X", Amount: 5, Date: 1})

	if err := store.DeleteTrip(ctx, trip.ID); err != nil {
		t.Fatalf("DeleteTrip failed: %v", err)
	}

	// No cascade: the expense survives the trip.
	left, _ := store.ListTripExpensesByTrip(ctx, trip.ID)
	if len(left) != 1 {
		t.Fatalf("expected 1 orphaned expense, got %d", len(left))
	}

	n, err := store.DeleteOrphanTripExpenses(ctx)
	if err != nil {
		t.Fatalf("DeleteOrphanTripExpenses failed: %v", err)
	}
	if n != 1 {
		t.Errorf("orphans removed = %d, want 1", n)
	}
}

func TestApplyReminderSweep(t *testing.T) {
	store, broker := newTestStore(t)
	ctx := context.Background()
	_, events := broker.Subscribe()

	recurring := &models.Reminder{Title: "Rent", Date: 1000, IsRecurring: true, RepeatInterval: 30}
	oneShot := &models.Reminder{Title: "Dentist", Date: 2000}
	store.CreateReminder(ctx, recurring)
	store.CreateReminder(ctx, oneShot)
	drained(events)

	t.Run("empty sweep publishes nothing", func(t *testing.T) {
		if err := store.ApplyReminderSweep(ctx, nil, nil); err != nil {
			t.Fatalf("ApplyReminderSweep failed: %v", err)
		}
		if drained(events) {
			t.Error("no-op sweep must not publish")
		}
	})

	t.Run("batched apply", func(t *testing.T) {
		advanced := *recurring
		advanced.LastTriggered = recurring.Date
		advanced.Date = recurring.Date + 30*24*3600

		err := store.ApplyReminderSweep(ctx, []*models.Reminder{&advanced}, []int64{oneShot.ID})
		if err != nil {
			t.Fatalf("ApplyReminderSweep failed: %v", err)
		}
		if !drained(events) {
			t.Error("expected one change notification")
		}

		reminders, _ := store.ListReminders(ctx)
		if len(reminders) != 1 {
			t.Fatalf("got %d reminders, want 1", len(reminders))
		}
		if reminders[0].LastTriggered != 1000 {
			t.Errorf("lastTriggered = %d, want 1000", reminders[0].LastTriggered)
		}
	})
}

func TestWipeExceptTrips(t *testing.T) {
	store, broker := newTestStore(t)
	ctx := context.Background()

	store.CreateExpense(ctx, &models.Expense{Title: "x", Amount: 1, Category: "Food", Date: 1})
	store.CreateReminder(ctx, &models.Reminder{Title: "r", Date: 1})
	store.CreateSavingsTransaction(ctx, &models.SavingsTransaction{Amount: 1, Date: 1, Type: models.SavingsDeposit})
	trip := &models.Trip{Name: "Keep me", Members: []string{"X"}}
	store.CreateTrip(ctx, trip)
	store.CreateTripExpense(ctx, &models.TripExpense{TripID: trip.ID, PayerName: "X", Amount: 1, Date: 1})

	_, events := broker.Subscribe()

	if err := store.WipeExceptTrips(ctx); err != nil {
		t.Fatalf("WipeExceptTrips failed: %v", err)
	}

	// The wipe and the re-seed commit together and signal once.
	if !drained(events) {
		t.Error("expected a change notification after wipe")
	}

	if expenses, _ := store.ListExpenses(ctx); len(expenses) != 0 {
		t.Errorf("expenses survived the wipe: %d", len(expenses))
	}
	if reminders, _ := store.ListReminders(ctx); len(reminders) != 0 {
		t.Errorf("reminders survived the wipe: %d", len(reminders))
	}

	// Defaults restored.
	categories, _ := store.ListCategories(ctx)
	if len(categories) != len(storage.DefaultCategories) {
		t.Errorf("got %d categories after wipe, want %d", len(categories), len(storage.DefaultCategories))
	}
	if settings, _ := store.GetSettings(ctx); settings == nil {
		t.Error("settings not re-seeded after wipe")
	}

	// Trips deliberately excluded.
	if trips, _ := store.ListTrips(ctx); len(trips) != 1 {
		t.Errorf("trips were wiped: %d", len(trips))
	}
	if expenses, _ := store.ListTripExpensesByTrip(ctx, trip.ID); len(expenses) != 1 {
		t.Errorf("trip expenses were wiped: %d", len(expenses))
	}
}
