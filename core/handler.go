package core

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Handler is a type-erased pipeline entry owning exactly one agent.
//
// The wrapped agent is only reachable through Invoke and Release; dispatch
// is fixed when the handler is built. Handlers are not safe for concurrent
// Invoke calls: a pipeline runs its entries one at a time.
type Handler[R Record] struct {
	name   string
	invoke func(ctx context.Context, record R) error
	agent  Agent[R]

	mu     sync.Mutex
	once   sync.Once
	relErr error
}

// NewHandler boxes a into a Handler. Agents implementing RefAgent are
// driven through HandleRef, all others through Handle.
func NewHandler[R Record](a Agent[R]) *Handler[R] {
	h := &Handler[R]{name: agentName(a), agent: a}
	if ra, ok := a.(RefAgent[R]); ok {
		h.invoke = ra.HandleRef
	} else {
		h.invoke = a.Handle
	}
	return h
}

// Name returns the display name of the wrapped agent.
func (h *Handler[R]) Name() string { return h.name }

// Invoke runs the wrapped agent against record. A failure is returned as a
// *StepError naming the step; Index is filled in by the owning pipeline.
func (h *Handler[R]) Invoke(ctx context.Context, record R) error {
	h.mu.Lock()
	invoke := h.invoke
	h.mu.Unlock()
	if invoke == nil {
		return &StepError{Index: -1, Step: h.name, Err: ErrReleased}
	}
	if err := invoke(ctx, record); err != nil {
		return &StepError{Index: -1, Step: h.name, Err: err}
	}
	return nil
}

// Release destroys the wrapped agent. It closes the agent when it
// implements io.Closer. Release runs the close exactly once; later calls
// return the first result.
func (h *Handler[R]) Release() error {
	h.once.Do(func() {
		h.mu.Lock()
		a := h.agent
		h.agent = nil
		h.invoke = nil
		h.mu.Unlock()

		if c, ok := a.(io.Closer); ok {
			if err := c.Close(); err != nil {
				h.relErr = fmt.Errorf("release %s: %w", h.name, err)
			}
		}
	})
	return h.relErr
}

// agentName resolves a display name for a.
func agentName(a any) string {
	if n, ok := a.(Named); ok {
		if name := n.Name(); name != "" {
			return name
		}
	}
	return fmt.Sprintf("%T", a)
}
