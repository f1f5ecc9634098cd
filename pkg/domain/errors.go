package domain

import (
	"errors"
	"fmt"
)

// ErrNoControl is returned when a query needs the solver control while it is checked out
// or was lost by an aborted query. A session in this state cannot recover.
var ErrNoControl = errors.New("no control object")

// ErrInvalidInput is returned for malformed caller input, such as removing an unknown argument.
var ErrInvalidInput = errors.New("invalid input")

// EngineError wraps a failure reported by the solving engine.
type EngineError struct {
	Op  string
	Err error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("engine error during %s: %v", e.Op, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// NewEngineError wraps err, returning nil for a nil err.
func NewEngineError(op string, err error) error {
	if err == nil {
		return nil
	}
	var ee *EngineError
	if errors.As(err, &ee) {
		return err
	}
	return &EngineError{Op: op, Err: err}
}

// IsNoControl reports whether err signals a lost or busy control.
func IsNoControl(err error) bool {
	return errors.Is(err, ErrNoControl)
}

// IsEngineError reports whether err originates from the solving engine.
func IsEngineError(err error) bool {
	var ee *EngineError
	return errors.As(err, &ee)
}
