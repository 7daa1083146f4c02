package core

import (
	"errors"
	"fmt"
)

// ErrReleased is returned when a handler is invoked after Release.
var ErrReleased = errors.New("core: handler released")

// StepError is the unified error a pipeline reports for a failed step. It
// wraps whatever the concrete agent returned, so callers can still reach
// the collaborator's own error with errors.Is / errors.As.
type StepError struct {
	// Index is the position of the step in its pipeline (-1 when unknown).
	Index int
	// Step is the display name of the failing agent.
	Step string
	Err  error
}

func (e *StepError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("step %s: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// FailedStep extracts the outermost StepError from err's chain.
func FailedStep(err error) (*StepError, bool) {
	var se *StepError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
