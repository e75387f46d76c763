// Package report renders statistics as console text.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mmynk/pocketledger/internal/calculator"
	"github.com/mmynk/pocketledger/internal/models"
	"github.com/mmynk/pocketledger/internal/money"
)

const (
	ruleHeavy = "================================"
	ruleLight = "--------------------------------"

	// TimestampLayout is used for the "Stats at" header line.
	TimestampLayout = "2006-01-02T15:04:05.000"
)

// WriteStats writes the full report: totals and per-category sums for both
// kinds, then budgets.
func WriteStats(w io.Writer, r calculator.StatsReport) {
	fmt.Fprintf(w, "Total income: %s\n", r.TotalIncome)
	fmt.Fprintln(w, "Income by categories:")
	writeSorted(w, r.IncomeByCategory)

	fmt.Fprintf(w, "Total expense: %s\n", r.TotalExpense)
	fmt.Fprintln(w, "Expense by categories:")
	writeSorted(w, r.ExpenseByCategory)

	fmt.Fprintln(w, "Budgets by categories:")
	if len(r.Budgets) == 0 {
		fmt.Fprintln(w, "  (no budgets set)")
		return
	}
	for _, cat := range calculator.SortedCategories(r.Budgets) {
		b := r.Budgets[cat]
		fmt.Fprintf(w, "  %s: limit=%s, remaining=%s\n", cat, b.Limit, b.Remaining)
	}
}

// WriteKind writes the per-category sums of one kind.
func WriteKind(w io.Writer, r calculator.StatsReport, kind models.TransactionKind) {
	if kind == models.Income {
		fmt.Fprintln(w, "Income by categories:")
	} else {
		fmt.Fprintln(w, "Expense by categories:")
	}
	writeSorted(w, r.ByKind(kind))
}

// WriteCategorySum writes the result of a category subset query.
func WriteCategorySum(w io.Writer, s calculator.CategorySum) {
	fmt.Fprintf(w, "Sum (%s) for %s = %s\n", s.Kind, List(s.Categories), s.Sum)
	if len(s.NotFound) > 0 {
		fmt.Fprintf(w, "WARNING: categories not found: %s\n", List(s.NotFound))
	}
}

// List formats names as "[a, b, c]".
func List(items []string) string {
	return "[" + strings.Join(items, ", ") + "]"
}

func writeSorted(w io.Writer, sums map[string]money.Money) {
	if len(sums) == 0 {
		fmt.Fprintln(w, "  (empty)")
		return
	}
	for _, cat := range calculator.SortedCategories(sums) {
		fmt.Fprintf(w, "  %s: %s\n", cat, sums[cat])
	}
}

// writeFramed writes a header stamped with at, the body, and a blank line.
func writeFramed(w io.Writer, at string, body func(io.Writer)) {
	fmt.Fprintln(w, ruleHeavy)
	fmt.Fprintf(w, "Stats at %s\n", at)
	fmt.Fprintln(w, ruleLight)
	body(w)
	fmt.Fprintln(w)
}
