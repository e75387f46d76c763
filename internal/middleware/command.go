// Package middleware wraps console command handlers with cross-cutting
// behavior: logging, metrics and the login requirement.
package middleware

import (
	"context"
	"strings"
)

// Command is one parsed console line.
type Command struct {
	// Name is the lower-cased first word.
	Name string
	// Args are the remaining whitespace-separated words.
	Args []string
	// Line is the trimmed input as typed.
	Line string
}

// Parse splits a trimmed, non-empty line into a Command.
func Parse(line string) Command {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{Line: line}
	}
	return Command{
		Name: strings.ToLower(fields[0]),
		Args: fields[1:],
		Line: strings.TrimSpace(line),
	}
}

// Handler runs one command.
type Handler func(ctx context.Context, cmd Command) error

// Interceptor decorates a Handler.
type Interceptor func(next Handler) Handler

// Chain applies interceptors so that the first one is outermost.
func Chain(h Handler, interceptors ...Interceptor) Handler {
	for i := len(interceptors) - 1; i >= 0; i-- {
		h = interceptors[i](h)
	}
	return h
}

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// LoginKey is the context key for the logged-in user's login.
const LoginKey contextKey = "login"

// WithLogin stores login in ctx.
func WithLogin(ctx context.Context, login string) context.Context {
	return context.WithValue(ctx, LoginKey, login)
}

// GetLogin extracts the login from the context.
// Returns empty string if not found.
func GetLogin(ctx context.Context) string {
	login, _ := ctx.Value(LoginKey).(string)
	return login
}
