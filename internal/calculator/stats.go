// Package calculator derives totals, per-category sums and budget lines from a
// user's ledger and budget table. Every function here is read-only.
package calculator

import (
	"maps"
	"slices"

	"github.com/mmynk/pocketledger/internal/models"
	"github.com/mmynk/pocketledger/internal/money"
)

// BudgetLine is the state of one category budget.
type BudgetLine struct {
	Limit     money.Money
	Remaining money.Money // Limit minus all expenses in the category; negative when overspent
}

// StatsReport is the all-time summary of one user's finances.
type StatsReport struct {
	TotalIncome       money.Money
	TotalExpense      money.Money
	IncomeByCategory  map[string]money.Money
	ExpenseByCategory map[string]money.Money
	Budgets           map[string]BudgetLine
}

// CategorySum is the result of an ad-hoc multi-category query.
type CategorySum struct {
	Kind       models.TransactionKind
	Categories []string    // as requested, in caller order
	Sum        money.Money // sum over Categories, duplicates included
	NotFound   []string    // requested categories with no entries of Kind, in caller order
}

// BuildStats computes the full report for a user.
//
// Algorithm:
// - Totals and per-category sums come straight from the ledger
// - Every budgeted category gets a line: remaining = limit - expenses(category)
// - Budgeted categories without expenses keep remaining = limit
// - Expense categories without a budget get no line
func BuildStats(user *models.User) StatsReport {
	ledger := user.Ledger
	expenseByCat := ledger.SumsByCategory(models.Expense)

	budgets := make(map[string]BudgetLine, user.Budgets.Len())
	for category, limit := range user.Budgets.Entries() {
		spent := expenseByCat[category] // zero when absent
		budgets[category] = BudgetLine{
			Limit:     limit,
			Remaining: limit.Sub(spent),
		}
	}

	return StatsReport{
		TotalIncome:       ledger.TotalFor(models.Income),
		TotalExpense:      ledger.TotalFor(models.Expense),
		IncomeByCategory:  ledger.SumsByCategory(models.Income),
		ExpenseByCategory: expenseByCat,
		Budgets:           budgets,
	}
}

// ByKind returns the per-category sums for one kind.
func (r StatsReport) ByKind(kind models.TransactionKind) map[string]money.Money {
	if kind == models.Income {
		return r.IncomeByCategory
	}
	return r.ExpenseByCategory
}

// SumByCategories totals the given categories for one kind and lists the ones
// that have no entries of that kind. Unknown categories contribute zero; they
// are reported, not rejected.
func SumByCategories(user *models.User, kind models.TransactionKind, categories []string) CategorySum {
	byCat := user.Ledger.SumsByCategory(kind)

	notFound := []string{}
	for _, c := range categories {
		if _, ok := byCat[c]; !ok {
			notFound = append(notFound, c)
		}
	}

	return CategorySum{
		Kind:       kind,
		Categories: slices.Clone(categories),
		Sum:        user.Ledger.SumForCategories(kind, categories),
		NotFound:   notFound,
	}
}

// BudgetRemaining is limit minus everything spent in category so far.
func BudgetRemaining(ledger *models.Ledger, category string, limit money.Money) money.Money {
	return limit.Sub(ledger.SumFor(models.Expense, category))
}

// SortedCategories returns map keys in ordinal order for stable rendering.
func SortedCategories[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
