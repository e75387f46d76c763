package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/pocketledger/internal/storage"
)

func newAuthenticator() (*PasswordAuthenticator, *storage.Registry) {
	reg := storage.NewRegistry()
	return NewPasswordAuthenticator(reg, bcrypt.MinCost), reg
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		login    string
		password string
		wantErr  error
	}{
		{"valid", "alice", "pw1", nil},
		{"blank login", " ", "pw1", ErrBlankCredentials},
		{"empty password", "bob", "", ErrBlankCredentials},
		{"duplicate", "taken", "pw", ErrUserExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, reg := newAuthenticator()
			_, err := a.Register(ctx, "taken", "pw")
			require.NoError(t, err)

			user, err := a.Register(ctx, tt.login, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 1, reg.Len())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.login, user.Login)
			assert.NotEqual(t, tt.password, user.PasswordHash)
			assert.Equal(t, 0, user.Ledger.Len())
			assert.True(t, reg.Exists(tt.login))
		})
	}
}

func TestRegisterDuplicateMessageNamesLogin(t *testing.T) {
	a, _ := newAuthenticator()
	_, err := a.Register(context.Background(), "alice", "pw")
	require.NoError(t, err)

	_, err = a.Register(context.Background(), "alice", "other")
	require.ErrorIs(t, err, ErrUserExists)
	assert.True(t, strings.HasSuffix(err.Error(), ": alice"))
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	a, _ := newAuthenticator()
	_, err := a.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	user, err := a.Authenticate(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Login)

	_, err = a.Authenticate(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidPassword)

	_, err = a.Authenticate(ctx, "nobody", "pw1")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = a.Authenticate(ctx, "", "pw1")
	assert.ErrorIs(t, err, ErrBlankCredentials)
}

func TestNewPasswordAuthenticatorClampsCost(t *testing.T) {
	a := NewPasswordAuthenticator(storage.NewRegistry(), 99)
	assert.Equal(t, bcrypt.DefaultCost, a.cost)
}

func TestSessionManager(t *testing.T) {
	m, err := NewSessionManager("secret", time.Hour)
	require.NoError(t, err)

	token, err := m.Generate("alice")
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Login)

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewSessionManager("other", time.Hour)
		require.NoError(t, err)
		_, err = other.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Validate("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Login: "alice"}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = m.Validate(unsigned)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestSessionManagerRandomSecret(t *testing.T) {
	a, err := NewSessionManager("", time.Hour)
	require.NoError(t, err)
	b, err := NewSessionManager("", time.Hour)
	require.NoError(t, err)

	token, err := a.Generate("alice")
	require.NoError(t, err)
	_, err = b.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSession(t *testing.T) {
	ctx := context.Background()
	a, _ := newAuthenticator()
	_, err := a.Register(ctx, "alice", "pw1")
	require.NoError(t, err)
	_, err = a.Register(ctx, "bob", "pw2")
	require.NoError(t, err)

	m, err := NewSessionManager("secret", time.Hour)
	require.NoError(t, err)
	s := NewSession(a, m)

	_, err = s.Current()
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	require.NoError(t, s.Login(ctx, "alice", "pw1"))
	login, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, "alice", login)

	// A failed login keeps the previous session.
	assert.ErrorIs(t, s.Login(ctx, "bob", "bad"), ErrInvalidPassword)
	login, err = s.Current()
	require.NoError(t, err)
	assert.Equal(t, "alice", login)

	require.NoError(t, s.Login(ctx, "bob", "pw2"))
	login, _ = s.Current()
	assert.Equal(t, "bob", login)

	s.Logout()
	_, err = s.Current()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestSessionExpiry(t *testing.T) {
	ctx := context.Background()
	a, _ := newAuthenticator()
	_, err := a.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	m, err := NewSessionManager("secret", -time.Minute)
	require.NoError(t, err)
	s := NewSession(a, m)

	require.NoError(t, s.Login(ctx, "alice", "pw1"))
	_, err = s.Current()
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.Current()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}
