// Package models defines the core domain models for VerdantView.
//
// # Collections
//
// Every model maps to one store collection:
//   - Expense: a single income or expense entry
//   - Category: a user-visible expense category (a fixed default set is protected)
//   - Reminder: a one-shot or recurring payment reminder
//   - AppSettings: the singleton settings record (ID is always 1)
//   - SavingsTransaction: a deposit/withdrawal against the emergency fund
//   - Trip: a group trip with an ordered member roster
//   - TripExpense: a spend within a trip, attributed to a payer by name
//
// # Design Principles
//
//  1. IDs are integers assigned by the store. Callers never supply an ID on
//     creation; imported records have their IDs stripped and reassigned.
//  2. Timestamps are Unix seconds (int64) throughout.
//  3. Relationships use ID fields, not pointers (TripExpense.TripID), and
//     loose name references (Expense.Category, TripExpense.PayerName) where
//     the original data model never enforced a foreign key.
//  4. JSON tags define the export/import document format and must stay
//     stable across releases.
package models
