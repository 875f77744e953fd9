package models

// Savings transaction types.
const (
	SavingsDeposit    = "deposit"
	SavingsWithdrawal = "withdrawal"
	SavingsGoalUpdate = "goal_update"
)

// SavingsTransaction represents a movement on the emergency fund.
type SavingsTransaction struct {
	ID     int64   `json:"id"`
	Amount float64 `json:"amount"`
	Date   int64   `json:"date"`

	// Type is one of the Savings* constants.
	Type string `json:"type"`

	Note string `json:"note,omitempty"`
}
