package models

// Reminder represents a payment reminder.
//
// Non-recurring reminders are deleted by the sweeper once their due date has
// passed. Recurring reminders are never deleted: each sweep that finds them
// overdue records the previous due date in LastTriggered and advances Date by
// RepeatInterval days, anchored to the previous due date (not to "now").
type Reminder struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`

	// Date is the due date as a Unix timestamp.
	Date int64 `json:"date"`

	IsRecurring bool `json:"isRecurring"`

	// RepeatInterval is the recurrence period in days. Required when
	// IsRecurring is true, ignored otherwise.
	RepeatInterval int `json:"repeatInterval,omitempty"`

	// LastTriggered is the previous due date, zero if never triggered.
	LastTriggered int64 `json:"lastTriggered,omitempty"`
}
