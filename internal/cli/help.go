package cli

import (
	"fmt"
	"io"
)

func writeHelp(w io.Writer, statsFile string) {
	fmt.Fprintln(w, "Auth:")
	fmt.Fprintln(w, "  register <login> <password>")
	fmt.Fprintln(w, "  login <login> <password>")
	fmt.Fprintln(w, "  logout")
	fmt.Fprintln(w, "  whoami")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Finance (login required):")
	fmt.Fprintln(w, "  income <category> <amount> [comment...]")
	fmt.Fprintln(w, "  expense <category> <amount> [comment...]")
	fmt.Fprintln(w, "  budget <category> <limit>")
	fmt.Fprintln(w, "  stats")
	fmt.Fprintln(w, "  stats income")
	fmt.Fprintln(w, "  stats expense")
	fmt.Fprintln(w, "  stats categories <income|expense> <cat1,cat2,...>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Stats output (ONLY affects stats):")
	fmt.Fprintln(w, "  statsout                Show current stats output")
	fmt.Fprintln(w, "  statsout console        Print stats to console")
	fmt.Fprintf(w, "  statsout file [path]    Append stats to file (default: %s)\n", statsFile)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Other:")
	fmt.Fprintln(w, "  help")
	fmt.Fprintln(w, "  exit")
}
