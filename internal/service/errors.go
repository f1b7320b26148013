package service

import "fmt"

// ValidationError reports malformed input: a non-positive amount, an empty
// participant list, or an empty name. It maps to a client-input failure
// and is never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports a reference to a user id that does not exist,
// whether as a direct lookup, a payer, or a participant.
type NotFoundError struct {
	UserID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("user with ID %d not found", e.UserID)
}
