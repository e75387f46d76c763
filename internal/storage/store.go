// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/pocketledger/internal/models"
)

// Store persists the full set of users with their ledgers and budgets.
// The in-memory Registry is the source of truth while the program runs; a
// Store only loads it at startup and saves snapshots of it.
type Store interface {
	// Load returns every persisted user. An empty store yields an empty
	// slice, not an error.
	Load(ctx context.Context) ([]*models.User, error)

	// Save replaces the persisted state with users. It is atomic: on error
	// the previous state is left intact.
	Save(ctx context.Context, users []*models.User) error

	// Close releases any resources held by the store.
	Close() error
}
