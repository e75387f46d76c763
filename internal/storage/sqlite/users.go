package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/pocketledger/internal/models"
)

// insertUser writes the account row for user.
func insertUser(ctx context.Context, tx *sql.Tx, user *models.User) error {
	query := `
		INSERT INTO users (login, password_hash, created_at)
		VALUES (?, ?, ?)
	`

	_, err := tx.ExecContext(ctx, query,
		user.Login,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user %s: %w", user.Login, err)
	}

	return nil
}

// loadUsers returns every account ordered by login, each with an empty
// ledger and budget table.
func (s *SQLiteStore) loadUsers(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT login, password_hash, created_at
		FROM users
		ORDER BY login
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{
			Ledger:  models.NewLedger(),
			Budgets: models.NewBudgetTable(),
		}
		if err := rows.Scan(&user.Login, &user.PasswordHash, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}
