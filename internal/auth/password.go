package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/pocketledger/internal/models"
	"github.com/mmynk/pocketledger/internal/storage"
)

var (
	ErrBlankCredentials = errors.New("login and password must be non-empty")
	ErrUserExists       = errors.New("user already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidPassword  = errors.New("invalid password")
)

// UserStorage defines the user lookups the authenticator needs.
// storage.Registry satisfies it.
type UserStorage interface {
	Exists(login string) bool
	Get(login string) (*models.User, bool)
	Put(user *models.User) error
}

var _ UserStorage = (*storage.Registry)(nil)

// Ensure PasswordAuthenticator implements Authenticator
var _ Authenticator = (*PasswordAuthenticator)(nil)

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage UserStorage
	cost    int
}

// NewPasswordAuthenticator creates a new password-based authenticator. A cost
// outside bcrypt's accepted range falls back to bcrypt.DefaultCost.
func NewPasswordAuthenticator(storage UserStorage, cost int) *PasswordAuthenticator {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordAuthenticator{
		storage: storage,
		cost:    cost,
	}
}

// Register creates a new user account with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, login, credential string) (*models.User, error) {
	if models.IsBlank(login) || models.IsBlank(credential) {
		return nil, ErrBlankCredentials
	}

	if a.storage.Exists(login) {
		return nil, fmt.Errorf("%w: %s", ErrUserExists, login)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(credential), a.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(login, string(hashedPassword))

	// Put re-checks under the registry lock; a concurrent registration of the
	// same login loses here.
	if err := a.storage.Put(user); err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			return nil, fmt.Errorf("%w: %s", ErrUserExists, login)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.InfoContext(ctx, "User registered", "login", login)
	return user, nil
}

// Authenticate verifies the login and password, returning the user if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, login, credential string) (*models.User, error) {
	if models.IsBlank(login) || models.IsBlank(credential) {
		return nil, ErrBlankCredentials
	}

	user, ok := a.storage.Get(login)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, login)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credential)); err != nil {
		slog.WarnContext(ctx, "Failed login", "login", login)
		return nil, ErrInvalidPassword
	}

	return user, nil
}
