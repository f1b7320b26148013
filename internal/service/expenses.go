package service

import (
	"context"
	"log/slog"
	"slices"

	"github.com/tallyhq/tally/internal/calculator"
	"github.com/tallyhq/tally/internal/models"
)

// RecordExpense validates and appends a new expense to the ledger.
//
// All validation runs before any mutation, so a failed call leaves the
// state untouched: the expense counter does not advance and nothing is
// appended. Checks, in order:
//   - amount must be > 0 (ValidationError)
//   - at least one participant (ValidationError)
//   - payer must exist (NotFoundError)
//   - every participant must exist, checked in list order with the first
//     failure reported (NotFoundError)
func (l *Ledger) RecordExpense(ctx context.Context, description string, amount float64, paidByUserID int64, participants []int64) (models.Expense, error) {
	if amount <= 0 {
		return models.Expense{}, &ValidationError{Message: "amount must be greater than 0"}
	}
	if len(participants) == 0 {
		return models.Expense{}, &ValidationError{Message: "must have at least one participant"}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.state.Users[paidByUserID]; !ok {
		return models.Expense{}, &NotFoundError{UserID: paidByUserID}
	}
	for _, participantID := range participants {
		if _, ok := l.state.Users[participantID]; !ok {
			return models.Expense{}, &NotFoundError{UserID: participantID}
		}
	}

	expense := models.Expense{
		ID:           l.state.NextExpenseID,
		Description:  description,
		Amount:       amount,
		PaidByUserID: paidByUserID,
		Participants: slices.Clone(participants),
		CreatedAt:    l.clock.Now().UTC(),
	}
	l.state.Expenses = append(l.state.Expenses, expense)
	l.state.NextExpenseID++

	l.persist(ctx)

	slog.Info("Expense recorded",
		"expense_id", expense.ID,
		"amount", expense.Amount,
		"paid_by_user_id", expense.PaidByUserID,
		"participants_count", len(expense.Participants),
	)
	return expense, nil
}

// ListExpenses returns every recorded expense in insertion order.
func (l *Ledger) ListExpenses(ctx context.Context) []models.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]models.Expense{}, l.state.Expenses...)
}

// Balances derives the current net balance for every registered user.
// It computes under the mutex so a concurrent mutation can never be
// observed mid-calculation, and it never mutates state itself.
func (l *Ledger) Balances(ctx context.Context) []models.UserBalance {
	l.mu.Lock()
	defer l.mu.Unlock()

	return calculator.ComputeBalances(l.usersByID(), l.state.Expenses)
}
