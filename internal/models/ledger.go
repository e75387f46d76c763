package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/pocketledger/internal/money"
)

// now is replaced in tests.
var now = time.Now

// Ledger is the append-only transaction history of one user.
// Entries keep their append order; nothing is removed or edited.
type Ledger struct {
	entries []Transaction
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// RestoreLedger rebuilds a ledger from persisted entries, keeping their order.
func RestoreLedger(entries []Transaction) *Ledger {
	l := &Ledger{entries: make([]Transaction, len(entries))}
	copy(l.entries, entries)
	return l
}

// IsBlank reports whether s is empty or only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Append records a new entry stamped with the current time.
// The category must be non-blank and the amount strictly positive.
func (l *Ledger) Append(kind TransactionKind, category string, amount money.Money, comment string) (Transaction, error) {
	if IsBlank(category) {
		return Transaction{}, invalid(ReasonEmptyCategory)
	}
	if amount.Sign() <= 0 {
		return Transaction{}, invalid(ReasonAmountNotPos)
	}

	tx := Transaction{
		ID:        uuid.New().String(),
		Kind:      kind,
		Category:  category,
		Amount:    amount,
		CreatedAt: now(),
		Comment:   comment,
	}
	l.entries = append(l.entries, tx)
	return tx, nil
}

// Entries returns a copy of all entries in append order.
func (l *Ledger) Entries() []Transaction {
	out := make([]Transaction, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// TotalFor sums every entry of the given kind.
func (l *Ledger) TotalFor(kind TransactionKind) money.Money {
	sum := money.Zero
	for _, tx := range l.entries {
		if tx.Kind == kind {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum
}

// SumsByCategory groups entries of the given kind by category.
// Categories without matching entries are absent from the result.
func (l *Ledger) SumsByCategory(kind TransactionKind) map[string]money.Money {
	sums := make(map[string]money.Money)
	for _, tx := range l.entries {
		if tx.Kind != kind {
			continue
		}
		sums[tx.Category] = sums[tx.Category].Add(tx.Amount)
	}
	return sums
}

// SumFor sums entries of one kind and category; zero if there are none.
func (l *Ledger) SumFor(kind TransactionKind, category string) money.Money {
	sum := money.Zero
	for _, tx := range l.entries {
		if tx.Kind == kind && tx.Category == category {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum
}

// SumForCategories adds SumFor over every listed category. Duplicates are
// counted once per occurrence.
func (l *Ledger) SumForCategories(kind TransactionKind, categories []string) money.Money {
	sum := money.Zero
	for _, c := range categories {
		sum = sum.Add(l.SumFor(kind, c))
	}
	return sum
}
