// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/pocketledger/internal/models"
	"github.com/mmynk/pocketledger/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &SQLiteStore{db: db, path: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SchemaVersion returns the applied migration version.
func (s *SQLiteStore) SchemaVersion() (uint, error) {
	v, dirty, err := schemaVersion(s.path)
	if err != nil {
		return 0, err
	}
	if dirty {
		return v, fmt.Errorf("schema version %d is dirty", v)
	}
	return v, nil
}

// Load reads every user together with its ledger and budgets.
func (s *SQLiteStore) Load(ctx context.Context) ([]*models.User, error) {
	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}

	byLogin := make(map[string]*models.User, len(users))
	for _, u := range users {
		byLogin[u.Login] = u
	}

	entries, err := s.loadTransactions(ctx)
	if err != nil {
		return nil, err
	}
	for login, txs := range entries {
		u, ok := byLogin[login]
		if !ok {
			return nil, fmt.Errorf("transactions reference unknown user: %s", login)
		}
		u.Ledger = models.RestoreLedger(txs)
	}

	limits, err := s.loadBudgets(ctx)
	if err != nil {
		return nil, err
	}
	for login, l := range limits {
		u, ok := byLogin[login]
		if !ok {
			return nil, fmt.Errorf("budgets reference unknown user: %s", login)
		}
		u.Budgets = models.RestoreBudgetTable(l)
	}

	return users, nil
}

// Save replaces the stored state with users in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, users []*models.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Children first; foreign keys are enforced.
	for _, table := range []string{"budgets", "transactions", "users"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, u := range users {
		if err := insertUser(ctx, tx, u); err != nil {
			return err
		}
		if err := insertTransactions(ctx, tx, u.Login, u.Ledger.Entries()); err != nil {
			return err
		}
		if err := insertBudgets(ctx, tx, u.Login, u.Budgets.Entries()); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
