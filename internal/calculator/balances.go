// Package calculator derives per-user net balances from the expense
// history. It is a pure view over the ledger: it never mutates state, so
// recomputation is always consistent with the recorded expenses.
package calculator

import (
	"math"

	"github.com/tallyhq/tally/internal/models"
)

// ComputeBalances computes the net balance for every registered user.
//
// Algorithm:
//   - Every user starts at 0, so users with no activity still appear.
//   - For each expense, in ledger order: the payer is credited the full
//     amount (even when the payer is not among the participants), and each
//     participant slot is debited amount / slot-count. A user listed twice
//     is debited twice.
//   - Results are rounded to 2 decimal places (ties to even).
//
// The users slice fixes the output order. An empty registry yields an
// empty result; given referentially-intact input this never fails.
func ComputeBalances(users []models.User, expenses []models.Expense) []models.UserBalance {
	if len(users) == 0 {
		return []models.UserBalance{}
	}

	balances := make(map[int64]float64, len(users))
	for _, u := range users {
		balances[u.ID] = 0.0
	}

	for _, expense := range expenses {
		if len(expense.Participants) == 0 {
			// Cannot happen through the ledger's validation; skip rather
			// than divide by zero if storage ever hands us one.
			continue
		}

		share := expense.Amount / float64(len(expense.Participants))

		// Payer gets credited the full amount up front.
		balances[expense.PaidByUserID] += expense.Amount

		// Each participant slot (including the payer's, if listed) is
		// debited one share. Duplicate slots are debited per occurrence.
		for _, participantID := range expense.Participants {
			if _, exists := balances[participantID]; exists {
				balances[participantID] -= share
			}
		}
	}

	result := make([]models.UserBalance, 0, len(users))
	for _, u := range users {
		result = append(result, models.UserBalance{
			UserID:  u.ID,
			Name:    u.Name,
			Balance: round2(balances[u.ID]),
		})
	}
	return result
}

// round2 rounds to 2 decimal places with ties going to the even digit.
func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
