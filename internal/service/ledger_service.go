// Package service implements the ledger commands: validate input, mutate the
// user's ledger or budgets, and report warnings.
package service

import (
	"fmt"
	"log/slog"

	"github.com/mmynk/pocketledger/internal/calculator"
	"github.com/mmynk/pocketledger/internal/metrics"
	"github.com/mmynk/pocketledger/internal/models"
	"github.com/mmynk/pocketledger/internal/money"
)

// Operation names used in logs and metrics.
const (
	OpAddIncome  = "add_income"
	OpAddExpense = "add_expense"
	OpSetBudget  = "set_budget"
)

// Success messages.
const (
	MsgIncomeAdded  = "Income added."
	MsgExpenseAdded = "Expense added."
	MsgBudgetSet    = "Budget set."
	MsgOverspend    = "WARNING: total expenses exceeded total income."
)

// LedgerService runs income, expense, budget and stats commands against a
// single user. It holds no per-user state; callers serialize calls per user.
type LedgerService struct {
	recorder metrics.Recorder
	logger   *slog.Logger
}

// NewLedgerService creates the service. A nil recorder disables metrics and a
// nil logger falls back to slog.Default().
func NewLedgerService(recorder metrics.Recorder, logger *slog.Logger) *LedgerService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LedgerService{recorder: recorder, logger: logger}
}

// AddIncome validates and records an income entry.
func (s *LedgerService) AddIncome(user *models.User, category, amount, comment string) Result {
	tx, err := s.record(user, models.Income, category, amount, comment)
	if err != nil {
		return s.fail(OpAddIncome, user, err)
	}
	s.logger.Info("Income added", "login", user.Login, "category", tx.Category, "amount", tx.Amount.String(), "id", tx.ID)
	return OK(MsgIncomeAdded)
}

// AddExpense validates and records an expense entry, then checks, in order:
//  1. whether the category budget (if any) is now overspent
//  2. whether total expenses now exceed total income
//
// Both checks run on the ledger after the append. Either may add a warning;
// the expense is recorded regardless.
func (s *LedgerService) AddExpense(user *models.User, category, amount, comment string) Result {
	tx, err := s.record(user, models.Expense, category, amount, comment)
	if err != nil {
		return s.fail(OpAddExpense, user, err)
	}
	s.logger.Info("Expense added", "login", user.Login, "category", tx.Category, "amount", tx.Amount.String(), "id", tx.ID)

	var warnings []string

	if limit, ok := user.Budgets.Get(tx.Category); ok {
		remaining := calculator.BudgetRemaining(user.Ledger, tx.Category, limit)
		if remaining.Sign() < 0 {
			warnings = append(warnings, BudgetExceededWarning(tx.Category, remaining))
			s.recorder.WarningRaised(metrics.WarningBudgetExceeded)
			s.logger.Warn("Budget exceeded", "login", user.Login, "category", tx.Category, "remaining", remaining.String())
		}
	}

	if user.Ledger.TotalFor(models.Expense).Cmp(user.Ledger.TotalFor(models.Income)) > 0 {
		warnings = append(warnings, MsgOverspend)
		s.recorder.WarningRaised(metrics.WarningOverspend)
		s.logger.Warn("Expenses exceed income", "login", user.Login)
	}

	return Warn(MsgExpenseAdded, warnings...)
}

// SetBudget installs or replaces the limit for a category. Existing entries
// are not re-evaluated; the next expense or stats query uses the new limit.
func (s *LedgerService) SetBudget(user *models.User, category, limit string) Result {
	if models.IsBlank(category) {
		return s.fail(OpSetBudget, user, &models.ValidationError{Reason: models.ReasonEmptyCategory})
	}
	l, err := money.Parse(limit)
	if err != nil {
		return s.fail(OpSetBudget, user, &models.ValidationError{Reason: models.ReasonNegativeLimit})
	}
	if err := user.Budgets.Set(category, l); err != nil {
		return s.fail(OpSetBudget, user, err)
	}

	s.logger.Info("Budget set", "login", user.Login, "category", category, "limit", l.String())
	return OK(MsgBudgetSet)
}

// Stats builds the full report for user.
func (s *LedgerService) Stats(user *models.User) calculator.StatsReport {
	return calculator.BuildStats(user)
}

// SumByCategories totals the requested categories for one kind.
func (s *LedgerService) SumByCategories(user *models.User, kind models.TransactionKind, categories []string) calculator.CategorySum {
	res := calculator.SumByCategories(user, kind, categories)
	if len(res.NotFound) > 0 {
		s.recorder.WarningRaised(metrics.WarningNotFound)
		s.logger.Debug("Categories not found", "login", user.Login, "kind", kind, "categories", res.NotFound)
	}
	return res
}

// BudgetExceededWarning formats the overrun warning for one category.
func BudgetExceededWarning(category string, remaining money.Money) string {
	return fmt.Sprintf("WARNING: budget exceeded for category '%s'. Remaining: %s", category, remaining)
}

// record validates input in a fixed order (category, then amount is a
// number, then amount is positive) and appends on success.
func (s *LedgerService) record(user *models.User, kind models.TransactionKind, category, amount, comment string) (models.Transaction, error) {
	if models.IsBlank(category) {
		return models.Transaction{}, &models.ValidationError{Reason: models.ReasonEmptyCategory}
	}
	a, err := money.Parse(amount)
	if err != nil {
		return models.Transaction{}, &models.ValidationError{Reason: models.ReasonAmountNotNumber}
	}
	if a.Sign() <= 0 {
		return models.Transaction{}, &models.ValidationError{Reason: models.ReasonAmountNotPos}
	}

	tx, err := user.Ledger.Append(kind, category, a, comment)
	if err != nil {
		return models.Transaction{}, err
	}
	s.recorder.TransactionRecorded(string(kind))
	return tx, nil
}

func (s *LedgerService) fail(op string, user *models.User, err error) Result {
	s.recorder.ValidationFailed(op)
	s.logger.Debug("Command rejected", "operation", op, "login", user.Login, "error", err)
	return Fail(err)
}
