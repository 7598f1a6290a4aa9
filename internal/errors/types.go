package errors

import (
	"errors"
	"fmt"
)

// ErrInterrupted signals that the user cancelled a blocking read (Ctrl+C).
// It is an intentional early exit, not a failure.
var ErrInterrupted = errors.New("input interrupted")

// SelectionError reports a category entry that could not be resolved to a
// token, such as an out-of-range numeric index. The user is asked again.
type SelectionError struct {
	Input  string
	Reason string
}

func (e *SelectionError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("invalid selection: %s", e.Reason)
	}
	return fmt.Sprintf("invalid selection %q: %s", e.Input, e.Reason)
}

// NewSelectionError builds a SelectionError.
func NewSelectionError(input, reason string) *SelectionError {
	return &SelectionError{Input: input, Reason: reason}
}

// IsInterrupted checks if err is, or wraps, ErrInterrupted.
func IsInterrupted(err error) bool {
	return errors.Is(err, ErrInterrupted)
}

// IsSelection checks if err is, or wraps, a SelectionError.
func IsSelection(err error) bool {
	var selErr *SelectionError
	return errors.As(err, &selErr)
}
