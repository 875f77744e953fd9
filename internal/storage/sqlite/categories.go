package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/karn30chavda/VerdantView/internal/models"
	"github.com/karn30chavda/VerdantView/internal/storage"
)

// CreateCategory inserts a new category and populates c.ID.
// Names are unique; inserting an existing name fails.
func (s *Store) CreateCategory(ctx context.Context, c *models.Category) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO categories (name) VALUES (?)", c.Name)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read category id: %w", err)
	}
	c.ID = id

	s.notifyChange()
	return nil
}

// ListCategories retrieves every category sorted by name.
func (s *Store) ListCategories(ctx context.Context) ([]*models.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		c := &models.Category{}
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, nil
}

// DeleteCategory removes a category by ID. Deleting a protected default
// category fails with storage.ErrProtectedCategory before any mutation.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	var name string
	err := s.db.QueryRowContext(ctx,
		"SELECT name FROM categories WHERE id = ?", id).Scan(&name)
	if err == sql.ErrNoRows {
		return fmt.Errorf("category %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check category: %w", err)
	}

	if storage.IsDefaultCategory(name) {
		return fmt.Errorf("category %q: %w", name, storage.ErrProtectedCategory)
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.notifyChange()
	return nil
}
