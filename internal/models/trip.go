package models

// Trip statuses.
const (
	TripActive    = "active"
	TripCompleted = "completed"
)

// Trip represents a group trip whose expenses are split among members.
type Trip struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`

	// Members is the ordered roster of member display names, stored exactly
	// as given. Uniqueness is not enforced; a duplicated name collapses to a
	// single settlement entry charged one even share per occurrence.
	Members []string `json:"members"`

	// CreatedAt is the Unix timestamp when the trip was created.
	CreatedAt int64 `json:"createdAt"`

	// Status is TripActive or TripCompleted.
	Status string `json:"status"`
}

// TripExpense represents a spend within a trip.
//
// PayerName attributes the spend to a roster member by exact string match.
// A payer name that matches no roster entry is excluded from settlement
// balance calculations.
type TripExpense struct {
	ID          int64   `json:"id"`
	TripID      int64   `json:"tripId"`
	PayerName   string  `json:"payerName"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        int64   `json:"date"`
}
