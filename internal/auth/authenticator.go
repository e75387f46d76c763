package auth

import (
	"context"

	"github.com/mmynk/pocketledger/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction keeps the console independent of how credentials are
// checked.
type Authenticator interface {
	// Register creates a new account. The returned user has an empty ledger
	// and no budgets.
	Register(ctx context.Context, login, credential string) (*models.User, error)

	// Authenticate verifies the credential and returns the user if it matches.
	Authenticate(ctx context.Context, login, credential string) (*models.User, error)
}
