// Package storage provides abstractions for persistent ledger storage.
package storage

import (
	"context"

	"github.com/tallyhq/tally/internal/models"
)

// Store defines the persistence contract for the ledger. The full state
// is loaded once at startup and written back in full after each
// mutation. This abstraction allows swapping storage backends (JSON
// file, SQLite, etc.) without changing the service layer.
type Store interface {
	// Load returns the persisted state. When no prior state exists, or
	// the store is corrupt or unreadable, implementations return an
	// empty state (logged, not fatal) rather than an error.
	Load(ctx context.Context) (*models.LedgerState, error)

	// Save serializes the full state, replacing whatever was stored
	// before.
	Save(ctx context.Context, state *models.LedgerState) error

	// Close releases any resources held by the store.
	Close() error
}
