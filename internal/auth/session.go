package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrNotLoggedIn  = errors.New("not logged in")
)

// SessionManager handles session token generation and validation.
type SessionManager struct {
	secretKey     []byte
	tokenDuration time.Duration
}

// Claims represents the custom JWT claims for a console session.
type Claims struct {
	Login string `json:"login"`
	jwt.RegisteredClaims
}

// NewSessionManager creates a session manager with the given secret and token
// duration. An empty secret is replaced by 32 random bytes, so tokens do not
// survive a restart.
func NewSessionManager(secretKey string, tokenDuration time.Duration) (*SessionManager, error) {
	if secretKey == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
		secretKey = hex.EncodeToString(buf)
	}
	return &SessionManager{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
	}, nil
}

// Generate creates a signed token for login.
func (m *SessionManager) Generate(login string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Login: login,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   login,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Validate parses and validates a token, returning the claims if valid.
func (m *SessionManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
	)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Session is the single active console session. A successful login replaces
// whatever session was active before.
type Session struct {
	auth    Authenticator
	manager *SessionManager

	mu    sync.Mutex
	token string
}

// NewSession creates a logged-out session.
func NewSession(auth Authenticator, manager *SessionManager) *Session {
	return &Session{auth: auth, manager: manager}
}

// Login authenticates and, on success, makes login the current user.
// On failure the previous session is left untouched.
func (s *Session) Login(ctx context.Context, login, password string) error {
	user, err := s.auth.Authenticate(ctx, login, password)
	if err != nil {
		return err
	}

	token, err := s.manager.Generate(user.Login)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// Logout ends the current session. It is a no-op when logged out.
func (s *Session) Logout() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}

// Current returns the logged-in login. An expired token ends the session and
// yields ErrInvalidToken.
func (s *Session) Current() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" {
		return "", ErrNotLoggedIn
	}

	claims, err := s.manager.Validate(s.token)
	if err != nil {
		s.token = ""
		return "", err
	}
	return claims.Login, nil
}
