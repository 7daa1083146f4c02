package agent

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/autogen/core"
	"github.com/hupe1980/autogen/logging"
)

// ConversationOptions configures a Conversation.
type ConversationOptions struct {
	// Name identifies the pipeline in logs and when nested in another one.
	Name string
	// Logger receives run and step diagnostics (defaults to NoOpLogger).
	Logger logging.Logger
}

// Conversation coordinates the execution of type-erased agents in sequence.
//
// Agents are appended at build time and executed in append order against a
// single record. The first failing step aborts the run; steps already
// applied are not rolled back. A Conversation is itself a core.Agent, so it
// can be nested inside another pipeline or a While loop.
type Conversation[R core.Record] struct {
	opts     ConversationOptions
	handlers []*core.Handler[R]
}

// NewConversation creates an empty pipeline.
func NewConversation[R core.Record](optFns ...func(o *ConversationOptions)) *Conversation[R] {
	opts := ConversationOptions{
		Name:   "conversation",
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	opts.Logger = logging.OrNoOp(opts.Logger)
	return &Conversation[R]{opts: opts}
}

// Name implements core.Named.
func (c *Conversation[R]) Name() string { return c.opts.Name }

// Agent appends a to the pipeline and returns c for chaining. Appending
// while a run is in progress gives no ordering guarantee for that run.
func (c *Conversation[R]) Agent(a core.Agent[R]) *Conversation[R] {
	c.handlers = append(c.handlers, core.NewHandler(a))
	return c
}

// Say appends a constant user prompt.
func (c *Conversation[R]) Say(text string) *Conversation[R] {
	return c.Agent(core.Text[R](text))
}

// While opens a loop whose body is built on the returned builder. Call End
// on it to append the loop as a single step and return to c.
func (c *Conversation[R]) While(predicate func(R) bool, opts ...WhileOption) *WhileBuilder[R] {
	body := NewConversation[R](func(o *ConversationOptions) {
		o.Name = c.opts.Name + "/while"
		o.Logger = c.opts.Logger
	})
	opts = append([]WhileOption{WithLogger(c.opts.Logger)}, opts...)
	return &WhileBuilder[R]{parent: c, loop: NewWhile(predicate, body, opts...)}
}

// Len returns the number of steps.
func (c *Conversation[R]) Len() int { return len(c.handlers) }

// Steps returns the display names of the steps in execution order.
func (c *Conversation[R]) Steps() []string {
	names := make([]string, len(c.handlers))
	for i, h := range c.handlers {
		names[i] = h.Name()
	}
	return names
}

// PlayWith executes every step once against record, stopping at the first
// failure. The returned error is a *core.StepError locating the step. A
// context cancelled between steps is reported against the step that did
// not run.
func (c *Conversation[R]) PlayWith(ctx context.Context, record R) error {
	runID := uuid.NewString()
	logger := logging.With(c.opts.Logger, "conversation", c.opts.Name, "run_id", runID)
	start := time.Now()

	logger.Debug("conversation started", "steps", len(c.handlers))

	for i, h := range c.handlers {
		if err := ctx.Err(); err != nil {
			logger.Warn("conversation cancelled", "index", i, "step", h.Name(), "error", err)
			return &core.StepError{Index: i, Step: h.Name(), Err: err}
		}

		stepStart := time.Now()
		if err := h.Invoke(ctx, record); err != nil {
			if se, ok := err.(*core.StepError); ok {
				se.Index = i
			}
			logger.Error("conversation step failed", "index", i, "step", h.Name(), "duration", time.Since(stepStart), "error", err)
			return err
		}
		logger.Debug("conversation step completed", "index", i, "step", h.Name(), "duration", time.Since(stepStart))
	}

	logger.Debug("conversation completed", "steps", len(c.handlers), "duration", time.Since(start))
	return nil
}

// Handle implements core.Agent so pipelines nest.
func (c *Conversation[R]) Handle(ctx context.Context, record R) error {
	return c.PlayWith(ctx, record)
}

// Close releases every step in order. It is safe to call more than once.
func (c *Conversation[R]) Close() error {
	var errs []error
	for _, h := range c.handlers {
		if err := h.Release(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Play runs c once against a freshly constructed zero-value record and
// returns that record on success.
func Play[T any, R interface {
	*T
	core.Record
}](ctx context.Context, c *Conversation[R]) (R, error) {
	record := R(new(T))
	if err := c.PlayWith(ctx, record); err != nil {
		var zero R
		return zero, err
	}
	return record, nil
}

// Describe implements core.Describer.
func (c *Conversation[R]) Describe() core.Step {
	step := core.Step{Name: c.opts.Name, Kind: "sequence"}
	for _, h := range c.handlers {
		step.Children = append(step.Children, h.Describe())
	}
	return step
}
