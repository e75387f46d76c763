package models

import (
	"maps"
	"slices"

	"github.com/mmynk/pocketledger/internal/money"
)

// BudgetTable maps a category to its spending limit. Limits are never
// negative and there is at most one per category.
type BudgetTable struct {
	limits map[string]money.Money
}

// NewBudgetTable returns an empty table.
func NewBudgetTable() *BudgetTable {
	return &BudgetTable{limits: make(map[string]money.Money)}
}

// RestoreBudgetTable rebuilds a table from persisted limits.
func RestoreBudgetTable(limits map[string]money.Money) *BudgetTable {
	b := NewBudgetTable()
	maps.Copy(b.limits, limits)
	return b
}

// Set installs or replaces the limit for category.
func (b *BudgetTable) Set(category string, limit money.Money) error {
	if IsBlank(category) {
		return invalid(ReasonEmptyCategory)
	}
	if limit.IsNegative() {
		return invalid(ReasonNegativeLimit)
	}
	if b.limits == nil {
		b.limits = make(map[string]money.Money)
	}
	b.limits[category] = limit
	return nil
}

// Get returns the limit for category, if one is set.
func (b *BudgetTable) Get(category string) (money.Money, bool) {
	limit, ok := b.limits[category]
	return limit, ok
}

// Entries returns a snapshot of every limit.
func (b *BudgetTable) Entries() map[string]money.Money {
	out := make(map[string]money.Money, len(b.limits))
	maps.Copy(out, b.limits)
	return out
}

// Categories returns the budgeted categories in ordinal order.
func (b *BudgetTable) Categories() []string {
	return slices.Sorted(maps.Keys(b.limits))
}

// Len returns the number of budgeted categories.
func (b *BudgetTable) Len() int {
	return len(b.limits)
}
