package assistant

import (
	"errors"
	"fmt"
)

var (
	// ErrNoChoices is returned when the model answers with no candidate.
	ErrNoChoices = errors.New("assistant: no response choices found")
	// ErrNoLegalMove is returned when ChessChat exhausted its attempts
	// without producing a legal move.
	ErrNoLegalMove = errors.New("assistant: no legal move found")
	// ErrEngineTimeout is returned when a move search exceeds its budget.
	ErrEngineTimeout = errors.New("assistant: engine timed out")
)

// ModelError wraps a failure of the chat-completion collaborator.
type ModelError struct {
	Provider string
	Model    string
	Err      error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("%s model %s: %v", e.Provider, e.Model, e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }

// EngineError wraps a failure of the move-search collaborator.
type EngineError struct {
	Op  string
	Err error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("engine %s: %v", e.Op, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }
