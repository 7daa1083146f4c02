package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/hupe1980/autogen/core"
)

// ErrBoom is a generic failure returned by failing doubles.
var ErrBoom = errors.New("testutil: boom")

// Calls counts invocations across doubles and records their order.
type Calls struct {
	mu    sync.Mutex
	order []string
}

// Add records a call of name.
func (c *Calls) Add(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order = append(c.order, name)
}

// Order returns the names in call order.
func (c *Calls) Order() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.order...)
}

// Count returns how many times name was called.
func (c *Calls) Count(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, o := range c.order {
		if o == name {
			n++
		}
	}
	return n
}

// StepAgent pushes Content (when set) as an assistant message and then
// returns Err. Every call is recorded in Calls. Closing increments Closed.
type StepAgent[R core.Record] struct {
	ID      string
	Content string
	Err     error
	Calls   *Calls
	Closed  int
}

// NewStep builds a StepAgent sharing calls.
func NewStep[R core.Record](id string, calls *Calls) *StepAgent[R] {
	return &StepAgent[R]{ID: id, Content: id, Calls: calls}
}

// Name implements core.Named.
func (s *StepAgent[R]) Name() string { return s.ID }

// Handle implements core.Agent.
func (s *StepAgent[R]) Handle(_ context.Context, record R) error {
	if s.Calls != nil {
		s.Calls.Add(s.ID)
	}
	if s.Content != "" {
		if err := record.Push(core.RoleAssistant, s.Content); err != nil {
			return err
		}
	}
	return s.Err
}

// Close implements io.Closer.
func (s *StepAgent[R]) Close() error {
	s.Closed++
	return nil
}

// LogRecord is a core.Record that stores every push and can be told to
// reject content.
type LogRecord struct {
	Entries []core.Message
	// Reject, when set, makes Push fail for matching content.
	Reject func(content string) bool
}

// ErrRejected is returned by LogRecord for rejected content.
var ErrRejected = errors.New("testutil: content rejected")

// Push implements core.Record.
func (r *LogRecord) Push(role core.Role, content string) error {
	if r.Reject != nil && r.Reject(content) {
		return ErrRejected
	}
	r.Entries = append(r.Entries, core.Message{Role: role, Content: content})
	return nil
}

// Contents returns the pushed contents in order.
func (r *LogRecord) Contents() []string {
	out := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		out[i] = e.Content
	}
	return out
}
