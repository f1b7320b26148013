// Package models defines the core domain records for the shared-expense
// ledger.
//
// # Models
//
//   - User: a registered participant, identified by a sequential integer id
//   - Expense: one shared cost, append-only once recorded
//   - UserBalance: a user's derived net position (never stored)
//   - LedgerState: the persisted aggregate of users, expenses and id counters
//
// # Design Principles
//
//  1. **Typed records**: every field is explicit; validation happens at the
//     service boundary, not inside the models.
//  2. **Immutability**: users and expenses are never edited or deleted once
//     created. Balances are always recomputed from the full history.
//  3. **IDs over pointers**: expenses reference users by id, never by
//     pointer, so the aggregate serializes cleanly.
package models
