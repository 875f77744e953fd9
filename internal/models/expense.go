package models

// Entry types for Expense.Type.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Payment modes for Expense.PaymentMode.
const (
	PaymentCash   = "Cash"
	PaymentCard   = "Card"
	PaymentOnline = "Online"
	PaymentOther  = "Other"
)

// Expense represents a single income or expense entry.
type Expense struct {
	// ID is the store-assigned identifier.
	ID int64 `json:"id"`

	// Title is the human-readable name for the entry.
	Title string `json:"title"`

	// Amount is the entry amount. Always non-negative; Type decides the sign.
	Amount float64 `json:"amount"`

	// Category loosely references Category.Name. No foreign key is enforced;
	// deleting a category leaves entries pointing at the old name.
	Category string `json:"category"`

	// Type is TypeIncome or TypeExpense. Defaults to TypeExpense.
	Type string `json:"type"`

	// PaymentMode is one of the Payment* constants.
	PaymentMode string `json:"paymentMode"`

	// Date is the Unix timestamp of the entry.
	Date int64 `json:"date"`

	// Notes is optional free text.
	Notes string `json:"notes,omitempty"`

	// ExcludeFromBudget removes the entry from monthly budget calculations.
	ExcludeFromBudget bool `json:"excludeFromBudget,omitempty"`
}
