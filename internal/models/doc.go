// Package models defines the core domain models for pocketledger.
//
// # Models
//
//   - User: a registered account owning exactly one Ledger and one BudgetTable
//   - Ledger: append-only, ordered list of Transactions for one user
//   - Transaction: one dated income or expense entry tagged with a category
//   - BudgetTable: per-category spending limits for one user
//
// Ownership is single-parent and tree-shaped: a Transaction belongs to exactly
// one Ledger, a Ledger and a BudgetTable to exactly one User. Nothing is shared
// between users.
//
// # Categories
//
// Categories are free-form, case-sensitive strings. No normalization is
// applied: "Food" and "food" are different categories.
//
// # Concurrency
//
// Ledger and BudgetTable are not safe for concurrent use. Callers serialize
// access per user (see storage.Registry.WithUser).
package models
