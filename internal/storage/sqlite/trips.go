package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/karn30chavda/VerdantView/internal/models"
	"github.com/karn30chavda/VerdantView/internal/storage"
)

// CreateTrip persists a new trip and its ordered member roster in one
// transaction, populating t.ID. The roster is stored exactly as given: no
// deduplication, no trimming.
func (s *Store) CreateTrip(ctx context.Context, t *models.Trip) error {
	if t.Status == "" {
		t.Status = models.TripActive
	}
	if t.CreatedAt == 0 {
		t.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO trips (name, created_at, status) VALUES (?, ?, ?)",
		t.Name, t.CreatedAt, t.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read trip id: %w", err)
	}

	for i, name := range t.Members {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO trip_members (trip_id, position, name) VALUES (?, ?, ?)",
			id, i, name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert trip member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	t.ID = id
	s.notifyChange()
	return nil
}

// GetTrip retrieves a trip with its roster. Returns (nil, nil) if absent.
func (s *Store) GetTrip(ctx context.Context, id int64) (*models.Trip, error) {
	t := &models.Trip{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at, status FROM trips WHERE id = ?", id,
	).Scan(&t.ID, &t.Name, &t.CreatedAt, &t.Status)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	members, err := s.tripMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Members = members

	return t, nil
}

// ListTrips retrieves every trip with its roster, newest first.
func (s *Store) ListTrips(ctx context.Context) ([]*models.Trip, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, created_at, status FROM trips ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var trips []*models.Trip
	for rows.Next() {
		t := &models.Trip{}
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.Status); err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}

	for _, t := range trips {
		members, err := s.tripMembers(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		t.Members = members
	}

	return trips, nil
}

// UpdateTripStatus transitions a trip between active and completed.
func (s *Store) UpdateTripStatus(ctx context.Context, id int64, status string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE trips SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return fmt.Errorf("failed to update trip status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("trip %d: %w", id, storage.ErrNotFound)
	}

	s.notifyChange()
	return nil
}

// DeleteTrip removes a trip and its roster. Trip expenses referencing the
// trip are left in place; DeleteOrphanTripExpenses cleans them up.
func (s *Store) DeleteTrip(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM trips WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("trip %d: %w", id, storage.ErrNotFound)
	}

	s.notifyChange()
	return nil
}

// tripMembers loads a trip's roster in stored order.
func (s *Store) tripMembers(ctx context.Context, tripID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM trip_members WHERE trip_id = ? ORDER BY position", tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to get trip members: %w", err)
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan trip member: %w", err)
		}
		members = append(members, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trip members: %w", err)
	}

	return members, nil
}
