package punch

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownType   = errors.New("unknown punch type")
	ErrUnknownMethod = errors.New("unknown recording method")
)

// TransitionError reports a punch type that is not a legal successor of the
// employee's current day state. Recoverable: the caller may retry with a
// corrected type.
type TransitionError struct {
	State     DayState
	Requested string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("punch type %q not allowed in state %q", e.Requested, e.State)
}

// LocationError reports missing or malformed geolocation. Recoverable: the
// caller decides whether to block or to retry with coordinates.
type LocationError struct {
	Reason string
}

func (e *LocationError) Error() string {
	return "geolocation: " + e.Reason
}

// PersistenceError wraps a storage failure during NSR allocation or the punch
// write. Fatal for the single operation; the caller may retry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
