package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSubmitInFlight is returned when a form submission is attempted
	// while a previous one is still running.
	ErrSubmitInFlight = errors.New("a submission is already in flight")

	// ErrMenuClosed is returned when an action is selected on a menu
	// that has not been opened.
	ErrMenuClosed = errors.New("action menu is not open")

	// ErrJobNotFound is returned when the jobs API reports 404 for an ID.
	ErrJobNotFound = errors.New("job not found")
)

// TransportError is any failure talking to the jobs API: a network error
// or a non-2xx response. Status is zero when the request never got a
// response.
type TransportError struct {
	Op     string // "list", "create", "get", "update", "patch", "delete"
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("jobs api: %s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("jobs api: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
