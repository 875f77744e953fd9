package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/karn30chavda/VerdantView/internal/models"
	"github.com/karn30chavda/VerdantView/internal/storage"
)

// CreateSavingsTransaction inserts a new savings transaction and populates tx.ID.
func (s *Store) CreateSavingsTransaction(ctx context.Context, tx *models.SavingsTransaction) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO savings_transactions (amount, date, type, note) VALUES (?, ?, ?, ?)",
		tx.Amount, tx.Date, tx.Type, nullString(tx.Note),
	)
	if err != nil {
		return fmt.Errorf("failed to insert savings transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read savings transaction id: %w", err)
	}
	tx.ID = id

	s.notifyChange()
	return nil
}

// ListSavingsTransactions retrieves every savings transaction, newest first.
func (s *Store) ListSavingsTransactions(ctx context.Context) ([]*models.SavingsTransaction, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, amount, date, type, note FROM savings_transactions ORDER BY date DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list savings transactions: %w", err)
	}
	defer rows.Close()

	var txs []*models.SavingsTransaction
	for rows.Next() {
		tx := &models.SavingsTransaction{}
		var note sql.NullString
		if err := rows.Scan(&tx.ID, &tx.Amount, &tx.Date, &tx.Type, &note); err != nil {
			return nil, fmt.Errorf("failed to scan savings transaction: %w", err)
		}
		tx.Note = note.String
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate savings transactions: %w", err)
	}

	return txs, nil
}

// DeleteSavingsTransaction removes a savings transaction by ID.
func (s *Store) DeleteSavingsTransaction(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM savings_transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete savings transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("savings transaction %d: %w", id, storage.ErrNotFound)
	}

	s.notifyChange()
	return nil
}
