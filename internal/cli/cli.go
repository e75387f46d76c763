// Package cli implements the interactive line console.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mmynk/pocketledger/internal/auth"
	"github.com/mmynk/pocketledger/internal/metrics"
	"github.com/mmynk/pocketledger/internal/middleware"
	"github.com/mmynk/pocketledger/internal/report"
	"github.com/mmynk/pocketledger/internal/service"
	"github.com/mmynk/pocketledger/internal/storage"
)

const (
	banner = "Personal Finance Manager (CLI)\nType 'help' to see commands."
	bye    = "Bye!"
)

// Options wires a Console to its collaborators. Store may be nil, in which
// case nothing is loaded or saved.
type Options struct {
	// In is read by a background goroutine that only stops at end of input
	// or a read error. Cancelling Run does not interrupt a pending read;
	// close In to release it.
	In  io.Reader
	Out io.Writer

	Registry      *storage.Registry
	Store         storage.Store
	Authenticator auth.Authenticator
	Session       *auth.Session
	Ledger        *service.LedgerService
	Stats         *report.Output

	// StatsFile is the path "statsout file" uses when none is given.
	StatsFile string
	// Autosave persists the registry after every successful change.
	Autosave bool

	Recorder metrics.Recorder
	Logger   *slog.Logger
}

// Console reads commands line by line and writes human-readable results.
type Console struct {
	in  io.Reader
	out io.Writer

	registry *storage.Registry
	store    storage.Store
	auth     auth.Authenticator
	session  *auth.Session
	ledger   *service.LedgerService
	stats    *report.Output

	statsFile string
	autosave  bool

	recorder metrics.Recorder
	logger   *slog.Logger

	handlers map[string]middleware.Handler
	exiting  bool
}

// New creates a Console.
func New(opts Options) *Console {
	c := &Console{
		in:        opts.In,
		out:       opts.Out,
		registry:  opts.Registry,
		store:     opts.Store,
		auth:      opts.Authenticator,
		session:   opts.Session,
		ledger:    opts.Ledger,
		stats:     opts.Stats,
		statsFile: opts.StatsFile,
		autosave:  opts.Autosave,
		recorder:  opts.Recorder,
		logger:    opts.Logger,
	}
	if c.recorder == nil {
		c.recorder = metrics.Nop{}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.statsFile == "" {
		c.statsFile = report.DefaultStatsFile
	}
	if c.stats == nil {
		c.stats = report.NewOutput(c.out, report.ModeConsole, c.statsFile)
	}
	c.registerHandlers()
	return c
}

func (c *Console) registerHandlers() {
	public := []middleware.Interceptor{
		middleware.OptionalLogin(c.session),
		middleware.Logging(c.logger, c.recorder),
	}
	protected := append(public[:len(public):len(public)], middleware.RequireLogin(c.session, c.out))

	c.handlers = map[string]middleware.Handler{
		"help":     middleware.Chain(c.handleHelp, public...),
		"exit":     middleware.Chain(c.handleExit, public...),
		"register": middleware.Chain(c.handleRegister, public...),
		"login":    middleware.Chain(c.handleLogin, public...),
		"logout":   middleware.Chain(c.handleLogout, public...),
		"whoami":   middleware.Chain(c.handleWhoami, public...),
		"statsout": middleware.Chain(c.handleStatsOut, public...),
		"income":   middleware.Chain(c.handleIncome, protected...),
		"expense":  middleware.Chain(c.handleExpense, protected...),
		"budget":   middleware.Chain(c.handleBudget, protected...),
		"stats":    middleware.Chain(c.handleStats, protected...),
	}
}

// Run loads saved users, then processes input until "exit", end of input or
// ctx cancellation. The registry is saved before Run returns. After a
// cancellation the input reader may still be blocked; it exits once In is
// closed. main returns right after Run, so os.Stdin needs no closing.
func (c *Console) Run(ctx context.Context) error {
	if err := c.load(ctx); err != nil {
		return err
	}

	fmt.Fprintln(c.out, banner)

	lines := make(chan string)
	done := make(chan struct{})
	defer close(done)
	go c.readLines(lines, done)

loop:
	for {
		fmt.Fprint(c.out, c.prompt())

		select {
		case <-ctx.Done():
			fmt.Fprintln(c.out)
			c.logger.Info("Console interrupted", "reason", context.Cause(ctx))
			break loop
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(c.out)
				break loop
			}
			if c.Handle(ctx, line) {
				break loop
			}
		}
	}

	// Cancellation must not prevent the final save.
	err := c.save(context.WithoutCancel(ctx))
	fmt.Fprintln(c.out, bye)
	return err
}

// Handle runs one input line and reports whether the loop should stop.
// Blank lines are ignored.
func (c *Console) Handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	cmd := middleware.Parse(line)
	h, ok := c.handlers[cmd.Name]
	if !ok {
		c.recorder.CommandHandled("unknown")
		fmt.Fprintf(c.out, "Unknown command: %s. Type 'help'.\n", cmd.Name)
		return false
	}

	_ = h(ctx, cmd) // already logged and reported
	return c.exiting
}

// readLines feeds lines until In is exhausted or done is closed. Closing done
// only unblocks a pending send, never a pending read.
func (c *Console) readLines(lines chan<- string, done <-chan struct{}) {
	defer close(lines)
	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-done:
			return
		}
	}
	if err := scanner.Err(); err != nil {
		c.logger.Error("Failed to read input", "error", err)
	}
}

func (c *Console) prompt() string {
	if login, err := c.session.Current(); err == nil {
		return login + "> "
	}
	return "> "
}

func (c *Console) load(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	users, err := c.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	c.registry.ReplaceAll(users)
	c.logger.Info("Loaded users", "count", len(users))
	return nil
}

// save writes a snapshot of every user. Failures are reported on the console
// and returned; the in-memory state is kept either way.
func (c *Console) save(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	if err := c.store.Save(ctx, c.registry.Snapshot()); err != nil {
		c.logger.Error("Failed to save data", "error", err)
		fmt.Fprintln(c.out, "ERROR: failed to save data.")
		fmt.Fprintf(c.out, "Reason: %v\n", err)
		return fmt.Errorf("failed to save data: %w", err)
	}
	return nil
}

// changed runs after a successful mutation.
func (c *Console) changed(ctx context.Context) error {
	if !c.autosave {
		return nil
	}
	return c.save(ctx)
}
