package service

import (
	"context"
	"log/slog"

	"github.com/tallyhq/tally/internal/models"
)

// RegisterUser creates a new user with the next sequential id.
// An empty name is rejected with a ValidationError.
func (l *Ledger) RegisterUser(ctx context.Context, name string) (models.User, error) {
	if name == "" {
		return models.User{}, &ValidationError{Message: "name must not be empty"}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	user := models.User{
		ID:   l.state.NextUserID,
		Name: name,
	}
	l.state.Users[user.ID] = user
	l.state.NextUserID++

	l.persist(ctx)

	slog.Info("User registered", "user_id", user.ID, "name", user.Name)
	return user, nil
}

// GetUser looks up a user by id, returning a NotFoundError if absent.
func (l *Ledger) GetUser(ctx context.Context, id int64) (models.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	user, ok := l.state.Users[id]
	if !ok {
		return models.User{}, &NotFoundError{UserID: id}
	}
	return user, nil
}

// ListUsers returns all registered users in insertion order.
func (l *Ledger) ListUsers(ctx context.Context) []models.User {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.usersByID()
}
