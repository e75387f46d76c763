package models

// User-facing validation reasons.
const (
	ReasonEmptyCategory   = "Category must be non-empty."
	ReasonAmountNotNumber = "Amount must be a number."
	ReasonAmountNotPos    = "Amount must be > 0."
	ReasonNegativeLimit   = "Budget limit must be >= 0."
)

// ValidationError reports bad user input. Reason is shown to the user
// verbatim.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalid(reason string) error {
	return &ValidationError{Reason: reason}
}
