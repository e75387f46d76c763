package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmynk/pocketledger/internal/metrics"
)

// Logging returns an interceptor that logs every command and counts it.
// It logs the command name, login, duration, and any error. Arguments are
// never logged since they may hold passwords.
func Logging(logger *slog.Logger, recorder metrics.Recorder) Interceptor {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return func(next Handler) Handler {
		return func(ctx context.Context, cmd Command) error {
			start := time.Now()

			err := next(ctx, cmd)

			recorder.CommandHandled(cmd.Name)
			duration := time.Since(start).Milliseconds()
			if err != nil {
				logger.ErrorContext(ctx, "Command error",
					"command", cmd.Name,
					"error", err,
					"login", GetLogin(ctx),
					"duration_ms", duration,
				)
			} else {
				logger.DebugContext(ctx, "Command ok",
					"command", cmd.Name,
					"login", GetLogin(ctx),
					"duration_ms", duration,
				)
			}

			return err
		}
	}
}
