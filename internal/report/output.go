package report

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// DefaultStatsFile is where file mode appends when no path is given.
const DefaultStatsFile = "stats.txt"

// Mode selects where stats go.
type Mode string

const (
	ModeConsole Mode = "console"
	ModeFile    Mode = "file"
)

// ParseMode accepts "console" or "file".
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeConsole, ModeFile:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown stats output mode: %q", s)
	}
}

// Output routes framed stats blocks to the console or appends them to a
// file. Only stats go through Output; command feedback is always written to
// the console.
type Output struct {
	console io.Writer
	now     func() time.Time

	mu   sync.Mutex
	mode Mode
	path string
}

// NewOutput creates an Output that starts in mode. An empty path means
// DefaultStatsFile.
func NewOutput(console io.Writer, mode Mode, path string) *Output {
	if path == "" {
		path = DefaultStatsFile
	}
	if mode == "" {
		mode = ModeConsole
	}
	return &Output{console: console, now: time.Now, mode: mode, path: path}
}

// UseConsole switches stats to the console.
func (o *Output) UseConsole() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.mode = ModeConsole
}

// UseFile switches stats to append to path, or DefaultStatsFile when path is
// empty.
func (o *Output) UseFile(path string) string {
	if path == "" {
		path = DefaultStatsFile
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.mode = ModeFile
	o.path = path
	return path
}

// Describe returns "console" or "file <path>".
func (o *Output) Describe() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.mode == ModeFile {
		return "file " + o.path
	}
	return "console"
}

// Emit renders one framed stats block. In file mode the block is appended to
// the file; if that fails an error notice is printed and the block goes to the
// console instead.
func (o *Output) Emit(body func(io.Writer)) {
	o.mu.Lock()
	mode, path := o.mode, o.path
	o.mu.Unlock()

	var buf bytes.Buffer
	writeFramed(&buf, o.now().Format(TimestampLayout), body)

	if mode == ModeFile {
		err := appendFile(path, buf.Bytes())
		if err == nil {
			return
		}
		slog.Warn("Failed to write stats file", "path", path, "error", err)
		fmt.Fprintf(o.console, "ERROR: cannot write stats to file: %s\n", path)
		fmt.Fprintf(o.console, "Reason: %v\n", err)
		fmt.Fprintln(o.console, "Stats will be printed to console instead.")
	}

	o.console.Write(buf.Bytes())
}

func appendFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
