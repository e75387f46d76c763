package models

import "time"

// User represents a registered account and everything it owns.
//
// Login and PasswordHash belong to authentication; they travel with the
// record so the whole user can be persisted in one snapshot.
type User struct {
	// Login is the unique user name.
	Login string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was registered.
	CreatedAt int64

	// Ledger is the user's transaction history.
	Ledger *Ledger

	// Budgets holds the user's per-category limits.
	Budgets *BudgetTable
}

// NewUser creates a user with an empty ledger and budget table.
func NewUser(login, passwordHash string) *User {
	return &User{
		Login:        login,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
		Ledger:       NewLedger(),
		Budgets:      NewBudgetTable(),
	}
}

// Clone returns a deep copy. Transactions are values, so copying the entry
// slice is enough.
func (u *User) Clone() *User {
	c := &User{
		Login:        u.Login,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		Ledger:       NewLedger(),
		Budgets:      NewBudgetTable(),
	}
	if u.Ledger != nil {
		c.Ledger = RestoreLedger(u.Ledger.entries)
	}
	if u.Budgets != nil {
		c.Budgets = RestoreBudgetTable(u.Budgets.limits)
	}
	return c
}
