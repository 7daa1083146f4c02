package core

import "context"

// Agent defines the unit of work every pipeline step must implement.
//
// Handle is given exclusive access to the record for the duration of the
// call. It may block on I/O (network, subprocess) and should honor ctx.
// Any mutation must go through the record's Push. On failure the record may
// already hold part of the step's output; pipelines do not roll it back.
type Agent[R Record] interface {
	Handle(ctx context.Context, record R) error
}

// RefAgent is an Agent that can run through a shared reference.
//
// HandleRef never mutates the agent itself, so a single value may be used
// by several pipelines (or goroutines driving independent records) at
// once. Implementations satisfy Handle by delegating to HandleRef.
type RefAgent[R Record] interface {
	Agent[R]
	HandleRef(ctx context.Context, record R) error
}

// Named is implemented by agents that expose a display name used in logs,
// errors and pipeline descriptions.
type Named interface {
	Name() string
}

// Shared adapts a RefAgent so only its HandleRef is ever invoked.
func Shared[R Record](a RefAgent[R]) Agent[R] {
	return sharedAgent[R]{agent: a}
}

type sharedAgent[R Record] struct {
	agent RefAgent[R]
}

func (s sharedAgent[R]) Handle(ctx context.Context, record R) error {
	return s.agent.HandleRef(ctx, record)
}

func (s sharedAgent[R]) HandleRef(ctx context.Context, record R) error {
	return s.agent.HandleRef(ctx, record)
}

func (s sharedAgent[R]) Name() string { return agentName(s.agent) }

// AgentFunc adapts an ordinary function into an Agent.
type AgentFunc[R Record] func(ctx context.Context, record R) error

// Handle calls f(ctx, record).
func (f AgentFunc[R]) Handle(ctx context.Context, record R) error {
	return f(ctx, record)
}

// Text is a constant prompt. Run as an agent it pushes itself verbatim as a
// user message, letting static prompts be mixed into any pipeline.
type Text[R Record] string

// Handle implements Agent.
func (t Text[R]) Handle(ctx context.Context, record R) error {
	return t.HandleRef(ctx, record)
}

// HandleRef implements RefAgent.
func (t Text[R]) HandleRef(_ context.Context, record R) error {
	return record.Push(RoleUser, string(t))
}

// Name implements Named.
func (t Text[R]) Name() string { return "text" }
