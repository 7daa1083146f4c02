package agent

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/autogen/core"
)

// RecoverFunc inspects the error of a decorated agent. It returns either a
// substitute agent to run against the same record, or an error that
// replaces the original one. Returning (nil, nil) swallows the failure.
type RecoverFunc[R core.Record] func(ctx context.Context, err error) (core.Agent[R], error)

// RecoverIs substitutes fallback when the failure matches target and
// re-raises every other error unchanged.
func RecoverIs[R core.Record](target error, fallback core.Agent[R]) RecoverFunc[R] {
	return func(_ context.Context, err error) (core.Agent[R], error) {
		if errors.Is(err, target) {
			return fallback, nil
		}
		return nil, err
	}
}

// CatchAgent decorates one agent with a recovery function.
type CatchAgent[R core.Record] struct {
	agent   core.Agent[R]
	onError RecoverFunc[R]
}

// Catch wraps a so that its failures are handed to f.
func Catch[R core.Record](a core.Agent[R], f RecoverFunc[R]) *CatchAgent[R] {
	return &CatchAgent[R]{agent: a, onError: f}
}

// Name implements core.Named.
func (c *CatchAgent[R]) Name() string { return "catch(" + nameOf(c.agent) + ")" }

// Handle runs the decorated agent and, on failure, the substitute chosen by
// the recovery function.
func (c *CatchAgent[R]) Handle(ctx context.Context, record R) error {
	err := c.agent.Handle(ctx, record)
	if err == nil {
		return nil
	}
	return recoverWith(ctx, c.onError, record, err, false)
}

// Close releases the decorated agent.
func (c *CatchAgent[R]) Close() error { return closeAgent(c.agent) }

// RefCatch is the shared-access form of Catch. The decorated agent runs
// through HandleRef, so the combinator is itself a core.RefAgent.
type RefCatch[R core.Record] struct {
	agent   core.RefAgent[R]
	onError RecoverFunc[R]
}

// CatchRef wraps a shared agent so that its failures are handed to f. f
// must be safe to call concurrently when the combinator is shared.
func CatchRef[R core.Record](a core.RefAgent[R], f RecoverFunc[R]) *RefCatch[R] {
	return &RefCatch[R]{agent: a, onError: f}
}

// Name implements core.Named.
func (c *RefCatch[R]) Name() string { return "catch(" + nameOf(c.agent) + ")" }

// Handle implements core.Agent.
func (c *RefCatch[R]) Handle(ctx context.Context, record R) error {
	return c.HandleRef(ctx, record)
}

// HandleRef implements core.RefAgent. A substitute that is itself a
// core.RefAgent also runs through HandleRef.
func (c *RefCatch[R]) HandleRef(ctx context.Context, record R) error {
	err := c.agent.HandleRef(ctx, record)
	if err == nil {
		return nil
	}
	return recoverWith(ctx, c.onError, record, err, true)
}

// Close releases the decorated agent.
func (c *RefCatch[R]) Close() error { return closeAgent(c.agent) }

func recoverWith[R core.Record](ctx context.Context, f RecoverFunc[R], record R, cause error, shared bool) error {
	substitute, err := f(ctx, cause)
	if err != nil {
		return err
	}
	if substitute == nil {
		return nil
	}
	run := substitute.Handle
	if ra, ok := substitute.(core.RefAgent[R]); ok && shared {
		run = ra.HandleRef
	}
	if err := run(ctx, record); err != nil {
		return fmt.Errorf("catch fallback %s: %w", nameOf(substitute), err)
	}
	return nil
}

func nameOf(a any) string {
	if n, ok := a.(core.Named); ok && n.Name() != "" {
		return n.Name()
	}
	return fmt.Sprintf("%T", a)
}

func closeAgent(a any) error {
	if c, ok := a.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Describe implements core.Describer.
func (c *CatchAgent[R]) Describe() core.Step {
	return core.Step{Name: c.Name(), Kind: "catch", Children: []core.Step{describe(c.agent)}}
}

// Describe implements core.Describer.
func (c *RefCatch[R]) Describe() core.Step {
	return core.Step{Name: c.Name(), Kind: "catch", Children: []core.Step{describe(c.agent)}}
}

func describe(a any) core.Step {
	if d, ok := a.(core.Describer); ok {
		return d.Describe()
	}
	return core.Step{Name: nameOf(a), Kind: "agent"}
}
