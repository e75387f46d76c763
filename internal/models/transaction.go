package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/pocketledger/internal/money"
)

// TransactionKind is either Income or Expense.
type TransactionKind string

const (
	Income  TransactionKind = "income"
	Expense TransactionKind = "expense"
)

// ParseKind accepts "income" or "expense" in any letter case.
func ParseKind(s string) (TransactionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Income):
		return Income, nil
	case string(Expense):
		return Expense, nil
	default:
		return "", fmt.Errorf("unknown transaction kind: %q", s)
	}
}

// Valid reports whether k is one of the known kinds.
func (k TransactionKind) Valid() bool {
	return k == Income || k == Expense
}

// Transaction is a single ledger entry. It is never modified after being
// appended to a Ledger.
type Transaction struct {
	// ID is the unique identifier for the entry (UUID format).
	ID string

	// Kind is Income or Expense.
	Kind TransactionKind

	// Category groups entries for aggregation and budgets.
	Category string

	// Amount is always strictly positive; Kind carries the direction.
	Amount money.Money

	// CreatedAt is the moment the entry was appended.
	CreatedAt time.Time

	// Comment is free text and may be empty.
	Comment string
}
