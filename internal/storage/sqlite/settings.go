package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/karn30chavda/VerdantView/internal/models"
	"github.com/karn30chavda/VerdantView/internal/storage"
)

// GetSettings retrieves the singleton settings record.
// Returns (nil, nil) only if the store was never initialized.
func (s *Store) GetSettings(ctx context.Context) (*models.AppSettings, error) {
	a := &models.AppSettings{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, monthly_budget, emergency_fund_goal, emergency_fund_current, user_name, theme
		 FROM settings WHERE id = ?`, models.SettingsID,
	).Scan(&a.ID, &a.MonthlyBudget, &a.EmergencyFundGoal, &a.EmergencyFundCurrent, &a.UserName, &a.Theme)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	return a, nil
}

// UpdateSettings merges the patch into the stored record in one transaction.
// Nil patch fields keep their stored values; the record is never replaced
// wholesale.
func (s *Store) UpdateSettings(ctx context.Context, patch *models.SettingsPatch) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	a := &models.AppSettings{}
	err = tx.QueryRowContext(ctx,
		`SELECT id, monthly_budget, emergency_fund_goal, emergency_fund_current, user_name, theme
		 FROM settings WHERE id = ?`, models.SettingsID,
	).Scan(&a.ID, &a.MonthlyBudget, &a.EmergencyFundGoal, &a.EmergencyFundCurrent, &a.UserName, &a.Theme)
	if err == sql.ErrNoRows {
		return fmt.Errorf("settings: %w", storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	if patch.MonthlyBudget != nil {
		a.MonthlyBudget = *patch.MonthlyBudget
	}
	if patch.EmergencyFundGoal != nil {
		a.EmergencyFundGoal = *patch.EmergencyFundGoal
	}
	if patch.EmergencyFundCurrent != nil {
		a.EmergencyFundCurrent = *patch.EmergencyFundCurrent
	}
	if patch.UserName != nil {
		a.UserName = *patch.UserName
	}
	if patch.Theme != nil {
		a.Theme = *patch.Theme
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE settings
		 SET monthly_budget = ?, emergency_fund_goal = ?, emergency_fund_current = ?, user_name = ?, theme = ?
		 WHERE id = ?`,
		a.MonthlyBudget, a.EmergencyFundGoal, a.EmergencyFundCurrent, a.UserName, a.Theme, models.SettingsID,
	)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settings update: %w", err)
	}

	s.notifyChange()
	return nil
}
