package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/autogen/core"
	"github.com/hupe1980/autogen/logging"
)

// While repeats a nested Conversation while a predicate over the record
// holds.
//
// The predicate is evaluated before every iteration, including the first,
// so a predicate that is false up front means the body never runs. The
// loop stops at the first false evaluation or the first error from the
// body. Without WithMaxIterations a predicate that never turns false loops
// forever; bounding it is the caller's job.
type While[R core.Record] struct {
	predicate func(R) bool
	body      *Conversation[R]
	maxIters  int           // 0 means unbounded
	interval  time.Duration // delay between iterations
	logger    logging.Logger
}

// WhileOption defines a configuration function for customizing While behavior.
type WhileOption func(*whileConfig)

type whileConfig struct {
	maxIters int
	interval time.Duration
	logger   logging.Logger
}

// WithMaxIterations sets the round budget of the loop. Once n iterations
// have run the loop returns without error even if the predicate still
// holds. Zero (the default) leaves the loop unbounded.
func WithMaxIterations(n int) WhileOption {
	return func(c *whileConfig) { c.maxIters = n }
}

// WithInterval sets the delay between iterations. The wait is abandoned
// when the context is cancelled.
func WithInterval(d time.Duration) WhileOption {
	return func(c *whileConfig) { c.interval = d }
}

// WithLogger sets the logger used for iteration diagnostics.
func WithLogger(l logging.Logger) WhileOption {
	return func(c *whileConfig) { c.logger = l }
}

// NewWhile builds a loop running body while predicate holds.
func NewWhile[R core.Record](predicate func(R) bool, body *Conversation[R], opts ...WhileOption) *While[R] {
	cfg := whileConfig{logger: logging.NoOpLogger{}}
	for _, o := range opts {
		o(&cfg)
	}
	return &While[R]{
		predicate: predicate,
		body:      body,
		maxIters:  cfg.maxIters,
		interval:  cfg.interval,
		logger:    logging.OrNoOp(cfg.logger),
	}
}

// Name implements core.Named.
func (w *While[R]) Name() string { return "while(" + w.body.Name() + ")" }

// Body returns the nested pipeline.
func (w *While[R]) Body() *Conversation[R] { return w.body }

// Handle implements core.Agent.
func (w *While[R]) Handle(ctx context.Context, record R) error {
	for i := 0; ; i++ {
		if w.maxIters > 0 && i >= w.maxIters {
			w.logger.Warn("while: round budget exhausted", "iterations", i)
			return nil
		}
		if !w.predicate(record) {
			w.logger.Debug("while: predicate false, stopping", "iterations", i)
			return nil
		}

		if i > 0 && w.interval > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(w.interval):
			}
		}

		w.logger.Debug("while: starting iteration", "iteration", i+1)
		if err := w.body.PlayWith(ctx, record); err != nil {
			return fmt.Errorf("while iteration %d: %w", i+1, err)
		}
	}
}

// Close releases the nested pipeline.
func (w *While[R]) Close() error { return w.body.Close() }

// WhileBuilder appends steps into a loop body until End hands control back
// to the parent pipeline.
type WhileBuilder[R core.Record] struct {
	parent *Conversation[R]
	loop   *While[R]
}

// Agent appends a to the loop body.
func (b *WhileBuilder[R]) Agent(a core.Agent[R]) *WhileBuilder[R] {
	b.loop.body.Agent(a)
	return b
}

// Say appends a constant user prompt to the loop body.
func (b *WhileBuilder[R]) Say(text string) *WhileBuilder[R] {
	b.loop.body.Say(text)
	return b
}

// End closes the loop, appends it to the parent as one step and returns
// the parent.
func (b *WhileBuilder[R]) End() *Conversation[R] {
	return b.parent.Agent(b.loop)
}

// Describe implements core.Describer.
func (w *While[R]) Describe() core.Step {
	body := w.body.Describe()
	return core.Step{Name: w.Name(), Kind: "while", Children: body.Children}
}
