package models

// LedgerState is the full persisted aggregate: every user, every expense,
// and the id counters. It is loaded once at startup and written back in
// full after each mutation.
//
// The JSON form keeps user ids as textual map keys and timestamps as
// ISO-8601 text with the UTC designator, so a state round-trips through
// any Store without loss.
type LedgerState struct {
	// Users maps user id to user. Iteration order is ascending id, which
	// equals insertion order since ids are sequential and users are never
	// deleted.
	Users map[int64]User `json:"users"`

	// Expenses in insertion order. Append-only.
	Expenses []Expense `json:"expenses"`

	// NextUserID and NextExpenseID are strictly greater than any id issued
	// so far. They only ever increase.
	NextUserID    int64 `json:"next_user_id"`
	NextExpenseID int64 `json:"next_expense_id"`
}

// NewLedgerState returns an empty state with both counters at 1.
func NewLedgerState() *LedgerState {
	return &LedgerState{
		Users:         make(map[int64]User),
		NextUserID:    1,
		NextExpenseID: 1,
	}
}

// Normalize repairs a state decoded from storage: nil maps become empty
// and counters below 1 are reset so id assignment always starts at 1.
func (s *LedgerState) Normalize() {
	if s.Users == nil {
		s.Users = make(map[int64]User)
	}
	if s.NextUserID < 1 {
		s.NextUserID = 1
	}
	if s.NextExpenseID < 1 {
		s.NextExpenseID = 1
	}
}
