package report

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/pocketledger/internal/calculator"
	"github.com/mmynk/pocketledger/internal/models"
	"github.com/mmynk/pocketledger/internal/money"
)

func sampleUser(t *testing.T) *models.User {
	t.Helper()
	u := models.NewUser("alice", "h")
	_, err := u.Ledger.Append(models.Income, "salary", money.MustParse("1000"), "")
	require.NoError(t, err)
	_, err = u.Ledger.Append(models.Expense, "food", money.MustParse("60"), "")
	require.NoError(t, err)
	_, err = u.Ledger.Append(models.Expense, "Rent", money.MustParse("300.5"), "")
	require.NoError(t, err)
	require.NoError(t, u.Budgets.Set("food", money.MustParse("50")))
	require.NoError(t, u.Budgets.Set("fun", money.Zero))
	return u
}

func TestWriteStats(t *testing.T) {
	t.Run("populated", func(t *testing.T) {
		var buf bytes.Buffer
		WriteStats(&buf, calculator.BuildStats(sampleUser(t)))

		want := strings.Join([]string{
			"Total income: 1000",
			"Income by categories:",
			"  salary: 1000",
			"Total expense: 360.5",
			"Expense by categories:",
			"  Rent: 300.5",
			"  food: 60",
			"Budgets by categories:",
			"  food: limit=50, remaining=-10",
			"  fun: limit=0, remaining=0",
			"",
		}, "\n")
		assert.Equal(t, want, buf.String())
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		WriteStats(&buf, calculator.BuildStats(models.NewUser("bob", "h")))

		want := strings.Join([]string{
			"Total income: 0",
			"Income by categories:",
			"  (empty)",
			"Total expense: 0",
			"Expense by categories:",
			"  (empty)",
			"Budgets by categories:",
			"  (no budgets set)",
			"",
		}, "\n")
		assert.Equal(t, want, buf.String())
	})
}

func TestWriteKind(t *testing.T) {
	r := calculator.BuildStats(sampleUser(t))

	var buf bytes.Buffer
	WriteKind(&buf, r, models.Expense)
	assert.Equal(t, "Expense by categories:\n  Rent: 300.5\n  food: 60\n", buf.String())

	buf.Reset()
	WriteKind(&buf, calculator.BuildStats(models.NewUser("bob", "h")), models.Income)
	assert.Equal(t, "Income by categories:\n  (empty)\n", buf.String())
}

func TestWriteCategorySum(t *testing.T) {
	u := sampleUser(t)

	var buf bytes.Buffer
	WriteCategorySum(&buf, calculator.SumByCategories(u, models.Expense, []string{"food", "travel"}))
	assert.Equal(t, "Sum (expense) for [food, travel] = 60\nWARNING: categories not found: [travel]\n", buf.String())

	buf.Reset()
	WriteCategorySum(&buf, calculator.SumByCategories(u, models.Income, []string{"salary"}))
	assert.Equal(t, "Sum (income) for [salary] = 1000\n", buf.String())
}

func fixedOutput(console io.Writer, mode Mode, path string) *Output {
	o := NewOutput(console, mode, path)
	o.now = func() time.Time { return time.Date(2026, 3, 1, 9, 5, 7, 123_000_000, time.UTC) }
	return o
}

func hello(w io.Writer) { io.WriteString(w, "hello\n") }

const framedHello = "================================\n" +
	"Stats at 2026-03-01T09:05:07.123\n" +
	"--------------------------------\n" +
	"hello\n" +
	"\n"

func TestOutputConsole(t *testing.T) {
	var console bytes.Buffer
	o := fixedOutput(&console, ModeConsole, "")

	o.Emit(hello)
	assert.Equal(t, framedHello, console.String())
	assert.Equal(t, "console", o.Describe())
}

func TestOutputFileAppends(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "stats.txt")
	o := fixedOutput(&console, ModeConsole, "")
	assert.Equal(t, path, o.UseFile(path))
	assert.Equal(t, "file "+path, o.Describe())

	o.Emit(hello)
	o.Emit(hello)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, framedHello+framedHello, string(data))
	assert.Empty(t, console.String())

	o.UseConsole()
	o.Emit(hello)
	assert.Equal(t, framedHello, console.String())
}

func TestOutputFileFallback(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "missing", "stats.txt")
	o := fixedOutput(&console, ModeFile, path)

	o.Emit(hello)

	out := console.String()
	assert.True(t, strings.HasPrefix(out, "ERROR: cannot write stats to file: "+path+"\nReason: "))
	assert.Contains(t, out, "Stats will be printed to console instead.\n"+framedHello)

	// The mode is kept; the next emit tries the file again.
	assert.Equal(t, "file "+path, o.Describe())
}

func TestUseFileDefaultPath(t *testing.T) {
	o := NewOutput(io.Discard, ModeConsole, "")
	assert.Equal(t, DefaultStatsFile, o.UseFile(""))
	assert.Equal(t, "file stats.txt", o.Describe())
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("file")
	require.NoError(t, err)
	assert.Equal(t, ModeFile, m)

	_, err = ParseMode("printer")
	assert.Error(t, err)
}
