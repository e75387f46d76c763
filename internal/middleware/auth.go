package middleware

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mmynk/pocketledger/internal/auth"
)

// MsgLoginRequired is printed when a protected command runs without a session.
const MsgLoginRequired = "Please login first."

// CurrentUser reports the logged-in login. auth.Session satisfies it.
type CurrentUser interface {
	Current() (string, error)
}

var _ CurrentUser = (*auth.Session)(nil)

// RequireLogin returns an interceptor that resolves the current session and
// adds the login to the context. Without a valid session it prints
// MsgLoginRequired to out and does not call the handler.
func RequireLogin(session CurrentUser, out io.Writer) Interceptor {
	return func(next Handler) Handler {
		return func(ctx context.Context, cmd Command) error {
			login, err := session.Current()
			if err != nil {
				if errors.Is(err, auth.ErrInvalidToken) {
					slog.InfoContext(ctx, "Session expired", "command", cmd.Name)
				}
				fmt.Fprintln(out, MsgLoginRequired)
				return nil
			}
			return next(WithLogin(ctx, login), cmd)
		}
	}
}

// OptionalLogin adds the login to the context when a session is active and
// otherwise passes the command through unchanged.
func OptionalLogin(session CurrentUser) Interceptor {
	return func(next Handler) Handler {
		return func(ctx context.Context, cmd Command) error {
			if login, err := session.Current(); err == nil {
				ctx = WithLogin(ctx, login)
			}
			return next(ctx, cmd)
		}
	}
}
