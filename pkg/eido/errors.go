package eido

import (
	"errors"
	"fmt"
)

// ErrInvalidResponse is returned when the EIDO agent answers with a success
// status but a body that is not the expected JSON.
var ErrInvalidResponse = errors.New("invalid response from EIDO agent")

// StatusError is a non-2xx answer from the EIDO agent.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("EIDO agent returned status %d: %s", e.StatusCode, e.Body)
}

// TransportError is a network-level failure talking to the EIDO agent.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
