package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmynk/pocketledger/internal/auth"
)

type fakeSession struct {
	login string
	err   error
}

func (f fakeSession) Current() (string, error) { return f.login, f.err }

type commandCounter struct{ names []string }

func (c *commandCounter) TransactionRecorded(string) {}
func (c *commandCounter) WarningRaised(string)       {}
func (c *commandCounter) ValidationFailed(string)    {}
func (c *commandCounter) CommandHandled(n string)    { c.names = append(c.names, n) }

func TestParse(t *testing.T) {
	cmd := Parse("  Income  food 100  lunch with  Bob ")
	assert.Equal(t, "income", cmd.Name)
	assert.Equal(t, []string{"food", "100", "lunch", "with", "Bob"}, cmd.Args)
	assert.Equal(t, "Income  food 100  lunch with  Bob", cmd.Line)

	assert.Equal(t, "", Parse("   ").Name)
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) Interceptor {
		return func(next Handler) Handler {
			return func(ctx context.Context, cmd Command) error {
				order = append(order, name)
				return next(ctx, cmd)
			}
		}
	}

	h := Chain(func(context.Context, Command) error {
		order = append(order, "handler")
		return nil
	}, mark("a"), mark("b"))

	assert.NoError(t, h(context.Background(), Command{}))
	assert.Equal(t, []string{"a", "b", "handler"}, order)
}

func TestRequireLogin(t *testing.T) {
	tests := []struct {
		name       string
		session    fakeSession
		wantCalled bool
		wantOut    string
	}{
		{"logged in", fakeSession{login: "alice"}, true, ""},
		{"logged out", fakeSession{err: auth.ErrNotLoggedIn}, false, "Please login first.\n"},
		{"expired", fakeSession{err: auth.ErrInvalidToken}, false, "Please login first.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			var gotLogin string
			called := false

			h := Chain(func(ctx context.Context, cmd Command) error {
				called = true
				gotLogin = GetLogin(ctx)
				return nil
			}, RequireLogin(tt.session, &out))

			assert.NoError(t, h(context.Background(), Parse("stats")))
			assert.Equal(t, tt.wantCalled, called)
			assert.Equal(t, tt.wantOut, out.String())
			if tt.wantCalled {
				assert.Equal(t, tt.session.login, gotLogin)
			}
		})
	}
}

func TestOptionalLogin(t *testing.T) {
	var gotLogin string
	h := Chain(func(ctx context.Context, cmd Command) error {
		gotLogin = GetLogin(ctx)
		return nil
	}, OptionalLogin(fakeSession{err: auth.ErrNotLoggedIn}))

	assert.NoError(t, h(context.Background(), Parse("whoami")))
	assert.Empty(t, gotLogin)
}

func TestLogging(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	counter := &commandCounter{}

	boom := errors.New("disk full")
	h := Chain(func(context.Context, Command) error { return boom },
		OptionalLogin(fakeSession{login: "alice"}),
		Logging(logger, counter),
	)

	err := h(context.Background(), Parse("login alice secret-password"))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"login"}, counter.names)

	out := logs.String()
	assert.Contains(t, out, "command=login")
	assert.Contains(t, out, "login=alice")
	assert.Contains(t, out, "disk full")
	assert.NotContains(t, out, "secret-password")
}
