package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mmynk/pocketledger/internal/models"
	"github.com/mmynk/pocketledger/internal/money"
)

// insertTransactions writes a user's ledger. seq records append order.
func insertTransactions(ctx context.Context, tx *sql.Tx, login string, entries []models.Transaction) error {
	if len(entries) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (id, login, seq, kind, category, amount, created_at, comment)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare transaction insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		_, err := stmt.ExecContext(ctx,
			e.ID,
			login,
			i,
			string(e.Kind),
			e.Category,
			e.Amount,
			e.CreatedAt.UnixNano(),
			e.Comment,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", e.ID, err)
		}
	}

	return nil
}

// insertBudgets writes a user's budget limits.
func insertBudgets(ctx context.Context, tx *sql.Tx, login string, limits map[string]money.Money) error {
	for category, limit := range limits {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO budgets (login, category, limit_amount) VALUES (?, ?, ?)",
			login, category, limit,
		)
		if err != nil {
			return fmt.Errorf("failed to insert budget %s/%s: %w", login, category, err)
		}
	}
	return nil
}

// loadTransactions returns every ledger entry grouped by login, in append
// order.
func (s *SQLiteStore) loadTransactions(ctx context.Context) (map[string][]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT login, id, kind, category, amount, created_at, comment
		FROM transactions
		ORDER BY login, seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]models.Transaction)
	for rows.Next() {
		var (
			login     string
			kind      string
			createdAt int64
			t         models.Transaction
		)
		if err := rows.Scan(&login, &t.ID, &kind, &t.Category, &t.Amount, &createdAt, &t.Comment); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		t.Kind, err = models.ParseKind(kind)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", t.ID, err)
		}
		t.CreatedAt = time.Unix(0, createdAt)
		result[login] = append(result[login], t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return result, nil
}

// loadBudgets returns every budget limit grouped by login.
func (s *SQLiteStore) loadBudgets(ctx context.Context) (map[string]map[string]money.Money, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT login, category, limit_amount FROM budgets")
	if err != nil {
		return nil, fmt.Errorf("failed to get budgets: %w", err)
	}
	defer rows.Close()

	result := make(map[string]map[string]money.Money)
	for rows.Next() {
		var (
			login    string
			category string
			limit    money.Money
		)
		if err := rows.Scan(&login, &category, &limit); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		if result[login] == nil {
			result[login] = make(map[string]money.Money)
		}
		result[login][category] = limit
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}

	return result, nil
}
