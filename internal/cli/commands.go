package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mmynk/pocketledger/internal/auth"
	"github.com/mmynk/pocketledger/internal/calculator"
	"github.com/mmynk/pocketledger/internal/middleware"
	"github.com/mmynk/pocketledger/internal/models"
	"github.com/mmynk/pocketledger/internal/report"
	"github.com/mmynk/pocketledger/internal/service"
)

func (c *Console) handleHelp(context.Context, middleware.Command) error {
	writeHelp(c.out, c.statsFile)
	return nil
}

func (c *Console) handleExit(context.Context, middleware.Command) error {
	c.exiting = true
	return nil
}

func (c *Console) handleRegister(ctx context.Context, cmd middleware.Command) error {
	if len(cmd.Args) < 2 {
		fmt.Fprintln(c.out, "Usage: register <login> <password>")
		return nil
	}
	login, password := cmd.Args[0], cmd.Args[1]

	_, err := c.auth.Register(ctx, login, password)
	switch {
	case err == nil:
		fmt.Fprintf(c.out, "User registered: %s\n", login)
		return c.changed(ctx)
	case errors.Is(err, auth.ErrBlankCredentials):
		fmt.Fprintln(c.out, "Login and password must be non-empty.")
	case errors.Is(err, auth.ErrUserExists):
		fmt.Fprintf(c.out, "User already exists: %s\n", login)
	default:
		fmt.Fprintf(c.out, "ERROR: %v\n", err)
		return err
	}
	return nil
}

func (c *Console) handleLogin(ctx context.Context, cmd middleware.Command) error {
	if len(cmd.Args) < 2 {
		fmt.Fprintln(c.out, "Usage: login <login> <password>")
		return nil
	}
	login, password := cmd.Args[0], cmd.Args[1]

	err := c.session.Login(ctx, login, password)
	switch {
	case err == nil:
		fmt.Fprintf(c.out, "Logged in as: %s\n", login)
	case errors.Is(err, auth.ErrBlankCredentials):
		fmt.Fprintln(c.out, "Login and password must be non-empty.")
	case errors.Is(err, auth.ErrUserNotFound):
		fmt.Fprintf(c.out, "User not found: %s\n", login)
	case errors.Is(err, auth.ErrInvalidPassword):
		fmt.Fprintln(c.out, "Invalid password.")
	default:
		fmt.Fprintf(c.out, "ERROR: %v\n", err)
		return err
	}
	return nil
}

func (c *Console) handleLogout(context.Context, middleware.Command) error {
	c.session.Logout()
	fmt.Fprintln(c.out, "Logged out.")
	return nil
}

func (c *Console) handleWhoami(ctx context.Context, _ middleware.Command) error {
	if login := middleware.GetLogin(ctx); login != "" {
		fmt.Fprintf(c.out, "You are logged in as: %s\n", login)
	} else {
		fmt.Fprintln(c.out, "You are not logged in.")
	}
	return nil
}

func (c *Console) handleStatsOut(_ context.Context, cmd middleware.Command) error {
	if len(cmd.Args) == 0 {
		fmt.Fprintf(c.out, "Stats output: %s\n", c.stats.Describe())
		return nil
	}

	switch strings.ToLower(cmd.Args[0]) {
	case string(report.ModeConsole):
		c.stats.UseConsole()
		fmt.Fprintln(c.out, "Stats output switched to console.")
	case string(report.ModeFile):
		path := c.statsFile
		if len(cmd.Args) >= 2 {
			path = cmd.Args[1]
		}
		fmt.Fprintf(c.out, "Stats output switched to file: %s\n", c.stats.UseFile(path))
	default:
		fmt.Fprintln(c.out, "Usage:")
		fmt.Fprintln(c.out, "  statsout")
		fmt.Fprintln(c.out, "  statsout console")
		fmt.Fprintln(c.out, "  statsout file [path]")
	}
	return nil
}

func (c *Console) handleIncome(ctx context.Context, cmd middleware.Command) error {
	return c.addEntry(ctx, cmd, models.Income)
}

func (c *Console) handleExpense(ctx context.Context, cmd middleware.Command) error {
	return c.addEntry(ctx, cmd, models.Expense)
}

func (c *Console) addEntry(ctx context.Context, cmd middleware.Command, kind models.TransactionKind) error {
	if len(cmd.Args) < 2 {
		fmt.Fprintf(c.out, "Usage: %s <category> <amount> [comment...]\n", kind)
		return nil
	}
	category, amount := cmd.Args[0], cmd.Args[1]
	comment := strings.Join(cmd.Args[2:], " ")

	return c.mutate(ctx, func(u *models.User) service.Result {
		if kind == models.Income {
			return c.ledger.AddIncome(u, category, amount, comment)
		}
		return c.ledger.AddExpense(u, category, amount, comment)
	})
}

func (c *Console) handleBudget(ctx context.Context, cmd middleware.Command) error {
	if len(cmd.Args) < 2 {
		fmt.Fprintln(c.out, "Usage: budget <category> <limit>")
		return nil
	}
	category, limit := cmd.Args[0], cmd.Args[1]

	return c.mutate(ctx, func(u *models.User) service.Result {
		return c.ledger.SetBudget(u, category, limit)
	})
}

// mutate runs fn on the logged-in user under the user's lock, prints the
// result and saves when something changed.
func (c *Console) mutate(ctx context.Context, fn func(*models.User) service.Result) error {
	var res service.Result
	err := c.registry.WithUser(middleware.GetLogin(ctx), func(u *models.User) error {
		res = fn(u)
		return nil
	})
	if err != nil {
		return c.userGone(ctx, err)
	}

	fmt.Fprintln(c.out, res.String())
	if !res.Succeeded() {
		return nil
	}
	return c.changed(ctx)
}

func (c *Console) handleStats(ctx context.Context, cmd middleware.Command) error {
	args := cmd.Args

	if len(args) == 0 {
		r, err := c.buildStats(ctx)
		if err != nil {
			return err
		}
		c.stats.Emit(func(w io.Writer) { report.WriteStats(w, r) })
		return nil
	}

	if len(args) == 1 {
		if kind, err := models.ParseKind(args[0]); err == nil {
			r, err := c.buildStats(ctx)
			if err != nil {
				return err
			}
			c.stats.Emit(func(w io.Writer) { report.WriteKind(w, r, kind) })
			return nil
		}
	}

	if len(args) >= 3 && strings.EqualFold(args[0], "categories") {
		kind, err := models.ParseKind(args[1])
		if err != nil {
			fmt.Fprintln(c.out, "Usage: stats categories <income|expense> <cat1,cat2,...>")
			return nil
		}

		cats := splitCategories(args[2])
		if len(cats) == 0 {
			fmt.Fprintln(c.out, "No categories provided.")
			return nil
		}

		var sum calculator.CategorySum
		err = c.registry.WithUser(middleware.GetLogin(ctx), func(u *models.User) error {
			sum = c.ledger.SumByCategories(u, kind, cats)
			return nil
		})
		if err != nil {
			return c.userGone(ctx, err)
		}
		c.stats.Emit(func(w io.Writer) { report.WriteCategorySum(w, sum) })
		return nil
	}

	fmt.Fprintln(c.out, "Usage:")
	fmt.Fprintln(c.out, "  stats")
	fmt.Fprintln(c.out, "  stats income")
	fmt.Fprintln(c.out, "  stats expense")
	fmt.Fprintln(c.out, "  stats categories <income|expense> <cat1,cat2,...>")
	return nil
}

func (c *Console) buildStats(ctx context.Context) (calculator.StatsReport, error) {
	var r calculator.StatsReport
	err := c.registry.WithUser(middleware.GetLogin(ctx), func(u *models.User) error {
		r = c.ledger.Stats(u)
		return nil
	})
	if err != nil {
		return r, c.userGone(ctx, err)
	}
	return r, nil
}

// userGone handles a session whose user is no longer in the registry.
func (c *Console) userGone(ctx context.Context, err error) error {
	c.session.Logout()
	fmt.Fprintln(c.out, middleware.MsgLoginRequired)
	return fmt.Errorf("session user %s: %w", middleware.GetLogin(ctx), err)
}

// splitCategories parses "a, b,,c" into [a b c].
func splitCategories(s string) []string {
	var cats []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			cats = append(cats, p)
		}
	}
	return cats
}
