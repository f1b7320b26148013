package models

// User represents a registered participant in the ledger.
type User struct {
	// ID is the unique identifier for the user. IDs are assigned
	// sequentially starting at 1 and are never reused.
	ID int64 `json:"id"`

	// Name is the display name of the user. Must be non-empty.
	Name string `json:"name"`
}

// UserBalance is one user's net position across all recorded expenses.
// Positive means the group owes this user money, negative means the user
// owes the group. Balances are derived on demand and never persisted.
type UserBalance struct {
	UserID int64 `json:"user_id"`

	Name string `json:"name"`

	// Balance is rounded to 2 decimal places.
	Balance float64 `json:"balance"`
}
