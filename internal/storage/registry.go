package storage

import (
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/mmynk/pocketledger/internal/models"
)

// ErrUserNotFound is returned by WithUser for an unknown login.
var ErrUserNotFound = errors.New("user not found")

// ErrUserExists is returned by Put when the login is already taken.
var ErrUserExists = errors.New("user already exists")

type entry struct {
	mu   sync.Mutex
	user *models.User
}

// Registry is the in-memory set of users keyed by login.
//
// The map is guarded by an RWMutex. Each user additionally has its own mutex
// so that commands for different users never block each other, while commands
// for the same user run one at a time.
type Registry struct {
	mu    sync.RWMutex
	users map[string]*entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{users: make(map[string]*entry)}
}

// Exists reports whether login is registered.
func (r *Registry) Exists(login string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[login]
	return ok
}

// Get returns a deep copy of the user, or false if the login is unknown.
func (r *Registry) Get(login string) (*models.User, bool) {
	r.mu.RLock()
	e, ok := r.users[login]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.user.Clone(), true
}

// Put adds a new user. It fails with ErrUserExists if the login is taken, so
// that two concurrent registrations of the same login cannot both succeed.
func (r *Registry) Put(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Login]; ok {
		return ErrUserExists
	}
	r.users[user.Login] = &entry{user: user}
	return nil
}

// WithUser runs fn with exclusive access to the live user record. fn must not
// retain the pointer after it returns.
func (r *Registry) WithUser(login string, fn func(*models.User) error) error {
	r.mu.RLock()
	e, ok := r.users[login]
	r.mu.RUnlock()
	if !ok {
		return ErrUserNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.user)
}

// Logins returns all registered logins in sorted order.
func (r *Registry) Logins() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	logins := make([]string, 0, len(r.users))
	for login := range r.users {
		logins = append(logins, login)
	}
	slices.Sort(logins)
	return logins
}

// Len returns the number of registered users.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

// ReplaceAll swaps the registry contents for users. Used once after loading.
func (r *Registry) ReplaceAll(users []*models.User) {
	m := make(map[string]*entry, len(users))
	for _, u := range users {
		m[u.Login] = &entry{user: u}
	}

	r.mu.Lock()
	r.users = m
	r.mu.Unlock()
}

// Snapshot returns deep copies of every user, sorted by login. Each user is
// copied under its own lock, so a snapshot never observes a half-applied
// command.
func (r *Registry) Snapshot() []*models.User {
	r.mu.RLock()
	entries := make([]*entry, 0, len(r.users))
	for _, e := range r.users {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	users := make([]*models.User, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		users = append(users, e.user.Clone())
		e.mu.Unlock()
	}
	slices.SortFunc(users, func(a, b *models.User) int {
		return strings.Compare(a.Login, b.Login)
	})
	return users
}
