package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/karn30chavda/VerdantView/internal/models"
	"github.com/karn30chavda/VerdantView/internal/storage"
)

func TestBackupRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	trips := NewTripService(store)
	backup := NewBackupService(store)
	ctx := context.Background()

	store.CreateExpense(ctx, &models.Expense{Title: "Coffee", Amount: 4.5, Category: "Food", Date: 1})
	store.CreateCategory(ctx, &models.Category{Name: "Travel"})
	store.CreateReminder(ctx, &models.Reminder{Title: "Rent", Date: 1})
	store.CreateSavingsTransaction(ctx, &models.SavingsTransaction{Amount: 100, Date: 1, Type: models.SavingsDeposit})
	trip, _ := trips.CreateTrip(ctx, "Goa", []string{"Alice", "Bob"})
	trips.AddTripExpense(ctx, &models.TripExpense{TripID: trip.ID, PayerName: "Alice", Amount: 80, Description: "Fuel"})

	doc, err := backup.ExportAll(ctx)
	if err != nil {
		t.Fatalf("ExportAll failed: %v", err)
	}
	if len(doc.Trips) != 1 || len(doc.TripExpenses) != 1 {
		t.Fatalf("export = %d trips, %d trip expenses", len(doc.Trips), len(doc.TripExpenses))
	}
	if doc.TripExpenses[0].TripID != trip.ID {
		t.Errorf("flat trip expense tagged with tripId %d, want %d", doc.TripExpenses[0].TripID, trip.ID)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	parsed, err := ParseBackup(data)
	if err != nil {
		t.Fatalf("ParseBackup failed: %v", err)
	}

	// Import back into the same database: everything is appended, nothing
	// replaced.
	if err := backup.ImportAll(ctx, parsed); err != nil {
		t.Fatalf("ImportAll failed: %v", err)
	}

	expenses, _ := store.ListExpenses(ctx)
	if len(expenses) != 2 {
		t.Errorf("got %d expenses after import, want 2", len(expenses))
	}

	allTrips, _ := store.ListTrips(ctx)
	if len(allTrips) != 2 {
		t.Fatalf("got %d trips after import, want 2", len(allTrips))
	}

	// Categories are deduplicated by name: defaults + Travel, no doubles.
	categories, _ := store.ListCategories(ctx)
	if want := len(storage.DefaultCategories) + 1; len(categories) != want {
		t.Errorf("got %d categories after import, want %d", len(categories), want)
	}
}

func TestBackupImportRemapsCollidingTrips(t *testing.T) {
	store, _ := newTestStore(t)
	backup := NewBackupService(store)
	ctx := context.Background()

	// The local trip occupies ID 1, the same identifier the backup's trip
	// carries.
	local := &models.Trip{Name: "Local", Members: []string{"Local Member"}}
	store.CreateTrip(ctx, local)
	store.CreateTripExpense(ctx, &models.TripExpense{TripID: local.ID, PayerName: "Local Member", Amount: 10, Description: "local spend"})

	doc := &Backup{
		Version: BackupVersion,
		Trips: []*models.Trip{
			{ID: local.ID, Name: "Imported", Members: []string{"Alice"}, Status: models.TripCompleted},
		},
		TripExpenses: []*models.TripExpense{
			{ID: 1, TripID: local.ID, PayerName: "Alice", Amount: 33, Description: "imported spend"},
		},
	}

	if err := backup.ImportAll(ctx, doc); err != nil {
		t.Fatalf("ImportAll failed: %v", err)
	}

	trips, _ := store.ListTrips(ctx)
	if len(trips) != 2 {
		t.Fatalf("got %d trips, want 2", len(trips))
	}

	var imported *models.Trip
	for _, tr := range trips {
		if tr.Name == "Imported" {
			imported = tr
		}
	}
	if imported == nil {
		t.Fatal("imported trip missing")
	}
	if imported.ID == local.ID {
		t.Error("imported trip was not assigned a fresh identifier")
	}

	// No cross-contamination between the two trips' expenses.
	localExpenses, _ := store.ListTripExpensesByTrip(ctx, local.ID)
	if len(localExpenses) != 1 || localExpenses[0].Description != "local spend" {
		t.Errorf("local trip expenses = %+v", localExpenses)
	}
	importedExpenses, _ := store.ListTripExpensesByTrip(ctx, imported.ID)
	if len(importedExpenses) != 1 || importedExpenses[0].Description != "imported spend" {
		t.Errorf("imported trip expenses = %+v", importedExpenses)
	}
}

func TestBackupImportMergesSettings(t *testing.T) {
	store, _ := newTestStore(t)
	backup := NewBackupService(store)
	ctx := context.Background()

	doc := &Backup{
		Settings: []*models.AppSettings{
			{MonthlyBudget: 1234, UserName: "Imported User", Theme: "dark"},
		},
	}
	if err := backup.ImportAll(ctx, doc); err != nil {
		t.Fatalf("ImportAll failed: %v", err)
	}

	settings, _ := store.GetSettings(ctx)
	if settings.ID != models.SettingsID {
		t.Errorf("settings ID = %d, want singleton %d", settings.ID, models.SettingsID)
	}
	if settings.MonthlyBudget != 1234 || settings.UserName != "Imported User" {
		t.Errorf("settings = %+v", settings)
	}
}

func TestParseBackupRejectsGarbage(t *testing.T) {
	for name, payload := range map[string]string{
		"not json":       "]]",
		"no collections": `{"version":"1.0"}`,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseBackup([]byte(payload)); !errors.Is(err, ErrMalformedBackup) {
				t.Errorf("got %v, want ErrMalformedBackup", err)
			}
		})
	}
}

func TestSweepOrphans(t *testing.T) {
	store, _ := newTestStore(t)
	trips := NewTripService(store)
	backup := NewBackupService(store)
	ctx := context.Background()

	trip, _ := trips.CreateTrip(ctx, "Doomed", []string{"X"})
	trips.AddTripExpense(ctx, &models.TripExpense{TripID: trip.ID, PayerName: "X", Amount: 5})
	trips.DeleteTrip(ctx, trip.ID)

	n, err := backup.SweepOrphans(ctx)
	if err != nil {
		t.Fatalf("SweepOrphans failed: %v", err)
	}
	if n != 1 {
		t.Errorf("orphans removed = %d, want 1", n)
	}
}
