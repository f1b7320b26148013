package models

import "time"

// Expense represents one shared cost: who paid, how much, and which user
// slots participate in the split.
type Expense struct {
	// ID is the unique identifier for the expense. IDs are assigned
	// sequentially starting at 1, on a counter independent from user IDs.
	ID int64 `json:"id"`

	// Description is a human-readable label (e.g. "Dinner").
	Description string `json:"description"`

	// Amount is the full cost of the expense. Always > 0, currency-less.
	Amount float64 `json:"amount"`

	// PaidByUserID is the user who fronted the full amount.
	PaidByUserID int64 `json:"paid_by_user_id"`

	// Participants lists the user IDs splitting this expense. At least one
	// entry. Duplicates are NOT deduplicated: a user listed twice carries
	// two shares.
	Participants []int64 `json:"participants"`

	// CreatedAt is the UTC timestamp assigned when the expense was
	// recorded. Immutable.
	CreatedAt time.Time `json:"created_at"`
}
