// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface. It keeps the same load-all/save-all contract
// as the JSON file store: Save replaces the whole state in one
// transaction, Load reads it all back.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads the full ledger state. An unreadable database is logged and
// falls back to an empty state rather than failing the caller.
func (s *SQLiteStore) Load(ctx context.Context) (*models.LedgerState, error) {
	state, err := s.load(ctx)
	if err != nil {
		slog.Warn("Ledger state unreadable, falling back to empty state", "error", err)
		return models.NewLedgerState(), nil
	}
	return state, nil
}

func (s *SQLiteStore) load(ctx context.Context) (*models.LedgerState, error) {
	state := models.NewLedgerState()

	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		state.Users[user.ID] = user
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	expenseRows, err := s.db.QueryContext(ctx,
		"SELECT id, description, amount, paid_by_user_id, created_at FROM expenses ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer expenseRows.Close()

	for expenseRows.Next() {
		var expense models.Expense
		var createdAt string
		if err := expenseRows.Scan(&expense.ID, &expense.Description, &expense.Amount,
			&expense.PaidByUserID, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}

		expense.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse expense timestamp: %w", err)
		}
		expense.CreatedAt = expense.CreatedAt.UTC()

		state.Expenses = append(state.Expenses, expense)
	}
	if err := expenseRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	// Attach participants, preserving slot order and duplicates.
	for i := range state.Expenses {
		expense := &state.Expenses[i]
		participantRows, err := s.db.QueryContext(ctx,
			"SELECT user_id FROM expense_participants WHERE expense_id = ? ORDER BY position",
			expense.ID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to query expense participants: %w", err)
		}

		for participantRows.Next() {
			var userID int64
			if err := participantRows.Scan(&userID); err != nil {
				participantRows.Close()
				return nil, fmt.Errorf("failed to scan participant: %w", err)
			}
			expense.Participants = append(expense.Participants, userID)
		}
		if err := participantRows.Err(); err != nil {
			participantRows.Close()
			return nil, fmt.Errorf("failed to iterate participants: %w", err)
		}
		participantRows.Close()
	}

	if err := s.loadCounter(ctx, "next_user_id", &state.NextUserID); err != nil {
		return nil, err
	}
	if err := s.loadCounter(ctx, "next_expense_id", &state.NextExpenseID); err != nil {
		return nil, err
	}

	state.Normalize()
	return state, nil
}

func (s *SQLiteStore) loadCounter(ctx context.Context, name string, target *int64) error {
	err := s.db.QueryRowContext(ctx, "SELECT value FROM counters WHERE name = ?", name).Scan(target)
	if err == sql.ErrNoRows {
		*target = 1
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load counter %s: %w", name, err)
	}
	return nil
}

// Save replaces the persisted state with the given one in a single
// transaction.
func (s *SQLiteStore) Save(ctx context.Context, state *models.LedgerState) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"expense_participants", "expenses", "users"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, user := range state.Users {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO users (id, name) VALUES (?, ?)",
			user.ID, user.Name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert user: %w", err)
		}
	}

	for _, expense := range state.Expenses {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expenses (id, description, amount, paid_by_user_id, created_at) VALUES (?, ?, ?, ?, ?)",
			expense.ID, expense.Description, expense.Amount, expense.PaidByUserID,
			expense.CreatedAt.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}

		for position, userID := range expense.Participants {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO expense_participants (expense_id, position, user_id) VALUES (?, ?, ?)",
				expense.ID, position, userID,
			)
			if err != nil {
				return fmt.Errorf("failed to insert participant: %w", err)
			}
		}
	}

	for name, value := range map[string]int64{
		"next_user_id":    state.NextUserID,
		"next_expense_id": state.NextExpenseID,
	} {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO counters (name, value) VALUES (?, ?) ON CONFLICT(name) DO UPDATE SET value = excluded.value",
			name, value,
		)
		if err != nil {
			return fmt.Errorf("failed to store counter %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
