package launcher

import (
	"errors"
	"fmt"
)

// ErrInvalidCommand is returned when the selector is missing or unknown.
var ErrInvalidCommand = errors.New("invalid command")

// InvalidCommandError carries the offending selector.
type InvalidCommandError struct {
	Token string
}

func (e *InvalidCommandError) Error() string {
	return fmt.Sprintf("invalid command: %q", e.Token)
}

func (e *InvalidCommandError) Unwrap() error {
	return ErrInvalidCommand
}
