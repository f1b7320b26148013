// Package service implements the user registry and expense ledger: the
// operations behind the API, with all validation and id assignment.
package service

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/tallyhq/tally/internal/clock"
	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/storage"
)

// Ledger owns the in-memory ledger state. All mutations and reads run
// under a single mutex: two concurrent id assignments or persist writes
// must never interleave.
//
// Persistence is best-effort: the full state is written back after each
// mutation, and a failed write is logged but never surfaced to the
// caller.
type Ledger struct {
	mu    sync.Mutex
	state *models.LedgerState
	store storage.Store
	clock clock.Clock
}

// New loads the persisted state from the store and returns a ledger
// holding it. A load failure is not fatal: the ledger starts empty and
// the error is logged.
func New(ctx context.Context, store storage.Store, clk clock.Clock) *Ledger {
	state, err := store.Load(ctx)
	if err != nil {
		slog.Warn("Failed to load ledger state, starting empty", "error", err)
		state = models.NewLedgerState()
	}
	state.Normalize()

	return &Ledger{
		state: state,
		store: store,
		clock: clk,
	}
}

// persist writes the full state back to the store. Callers must hold mu.
// Save failures are logged and swallowed.
func (l *Ledger) persist(ctx context.Context) {
	if err := l.store.Save(ctx, l.state); err != nil {
		slog.Error("Failed to persist ledger state", "error", err)
	}
}

// usersByID returns all registered users in ascending id order, which is
// insertion order since ids are sequential and users are never deleted.
// Callers must hold mu.
func (l *Ledger) usersByID() []models.User {
	users := make([]models.User, 0, len(l.state.Users))
	for _, u := range l.state.Users {
		users = append(users, u)
	}
	slices.SortFunc(users, func(a, b models.User) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return users
}
