package models

// Category represents an expense category.
// Names are unique within the store. Categories seeded at first
// initialization are protected and cannot be deleted.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
