package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mmynk/pocketledger/internal/auth"
	"github.com/mmynk/pocketledger/internal/cli"
	"github.com/mmynk/pocketledger/internal/config"
	"github.com/mmynk/pocketledger/internal/metrics"
	"github.com/mmynk/pocketledger/internal/report"
	"github.com/mmynk/pocketledger/internal/service"
	"github.com/mmynk/pocketledger/internal/storage"
	"github.com/mmynk/pocketledger/internal/storage/sqlite"
	"github.com/mmynk/pocketledger/pkg/logging"
)

const shutdownTimeout = 5 * time.Second

func main() {
	envFile := flag.String("env-file", config.DefaultEnvFile, "file with KEY=value settings to load before the environment")
	help := flag.Bool("help", false, "show command help")
	flag.Parse()

	if *help {
		flag.PrintDefaults()
		return
	}

	logging.Setup("warn")

	cfg, err := config.Load(*envFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	if err := run(cfg); err != nil {
		slog.Error("Exiting", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	m := metrics.New()
	registry := storage.NewRegistry()
	authenticator := auth.NewPasswordAuthenticator(registry, cfg.BcryptCost)
	sessions, err := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		return err
	}

	mode, err := report.ParseMode(cfg.StatsOutput)
	if err != nil {
		return err
	}

	console := cli.New(cli.Options{
		In:            os.Stdin,
		Out:           os.Stdout,
		Registry:      registry,
		Store:         store,
		Authenticator: authenticator,
		Session:       auth.NewSession(authenticator, sessions),
		Ledger:        service.NewLedgerService(m, slog.Default()),
		Stats:         report.NewOutput(os.Stdout, mode, cfg.StatsFile),
		StatsFile:     cfg.StatsFile,
		Autosave:      cfg.Autosave,
		Recorder:      m,
		Logger:        slog.Default(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// Leaving the console ends the process, metrics server included.
		defer cancel()
		return console.Run(gctx)
	})

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           loggingMiddleware(mux),
			ReadHeaderTimeout: shutdownTimeout,
		}

		g.Go(func() error {
			slog.Info("Metrics server starting", "address", cfg.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server failed: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}

// loggingMiddleware logs every scrape at debug level.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
