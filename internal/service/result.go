package service

import "strings"

// ResultKind tags the outcome of a ledger command.
type ResultKind int

const (
	// ResultOK is a plain success.
	ResultOK ResultKind = iota
	// ResultWarn is a success that carries advisory warnings.
	ResultWarn
	// ResultErr is a rejected command; nothing was changed.
	ResultErr
)

func (k ResultKind) String() string {
	switch k {
	case ResultOK:
		return "ok"
	case ResultWarn:
		return "warn"
	case ResultErr:
		return "error"
	default:
		return "unknown"
	}
}

// Result is what every write operation returns. Callers switch on Kind.
type Result struct {
	Kind     ResultKind
	Message  string
	Warnings []string
	Err      error // set only for ResultErr
}

// OK builds a plain success.
func OK(msg string) Result {
	return Result{Kind: ResultOK, Message: msg}
}

// Warn builds a success with warnings. With no warnings it degrades to OK.
func Warn(msg string, warnings ...string) Result {
	if len(warnings) == 0 {
		return OK(msg)
	}
	return Result{Kind: ResultWarn, Message: msg, Warnings: warnings}
}

// Fail builds an error result whose message is the error text.
func Fail(err error) Result {
	return Result{Kind: ResultErr, Message: err.Error(), Err: err}
}

// Succeeded reports whether the command was applied.
func (r Result) Succeeded() bool {
	return r.Kind != ResultErr
}

// String renders the message followed by one warning per line.
func (r Result) String() string {
	if len(r.Warnings) == 0 {
		return r.Message
	}
	return r.Message + "\n" + strings.Join(r.Warnings, "\n")
}
