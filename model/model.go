package model

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hupe1980/autogen/core"
)

// Request captures the ordered conversation sent to a model.
type Request struct {
	// Model optionally overrides the adapter's configured model identifier.
	Model    string         `json:"model,omitempty"`
	Messages []core.Message `json:"messages"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response carries the candidate messages returned by a model. Choices may
// be empty; callers decide whether that is an error.
type Response struct {
	ID      string         `json:"id"`
	Choices []core.Message `json:"choices"`
	Usage   *TokenUsage    `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface required by agents to drive generation.
type Model interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// ErrScriptExhausted is returned by MockModel when no scripted or canned
// response is available and no fallback is configured.
var ErrScriptExhausted = errors.New("model: mock script exhausted")

type scripted struct {
	choices []string
	err     error
}

// MockModel is a lightweight in‑memory Model useful for tests & examples.
// Scripted replies are consumed in order; once exhausted, canned replies
// keyed by the last message are used, then an echo fallback.
type MockModel struct {
	info Info

	mu        sync.Mutex
	script    []scripted
	responses map[string]string
	requests  []Request
	echo      bool
}

// NewMockModel constructs a MockModel that echoes unmatched prompts.
func NewMockModel(name, provider string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: provider},
		responses: make(map[string]string),
		echo:      true,
	}
}

// AddResponse registers a deterministic canned completion for an input prompt.
func (m *MockModel) AddResponse(prompt, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[prompt] = response
}

// Enqueue appends scripted single-choice replies.
func (m *MockModel) Enqueue(replies ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range replies {
		m.script = append(m.script, scripted{choices: []string{r}})
	}
}

// EnqueueEmpty appends a reply carrying no candidates.
func (m *MockModel) EnqueueEmpty() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, scripted{choices: []string{}})
}

// EnqueueError appends a scripted transport failure.
func (m *MockModel) EnqueueError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, scripted{err: err})
}

// DisableEcho makes unmatched prompts fail with ErrScriptExhausted.
func (m *MockModel) DisableEcho() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.echo = false
}

// Requests returns the requests received so far.
func (m *MockModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}

// Generate implements Model.
func (m *MockModel) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)

	if len(m.script) > 0 {
		next := m.script[0]
		m.script = m.script[1:]
		if next.err != nil {
			return nil, next.err
		}
		resp := &Response{Choices: make([]core.Message, 0, len(next.choices))}
		for _, c := range next.choices {
			resp.Choices = append(resp.Choices, core.AssistantMessage(c))
		}
		return resp, nil
	}

	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("no messages provided")
	}
	last := req.Messages[len(req.Messages)-1].Content
	if full, ok := m.responses[last]; ok {
		return &Response{Choices: []core.Message{core.AssistantMessage(full)}}, nil
	}
	if !m.echo {
		return nil, ErrScriptExhausted
	}
	return &Response{Choices: []core.Message{core.AssistantMessage(fmt.Sprintf("Mock response to: %s", last))}}, nil
}

// Info implements Model interface.
func (m *MockModel) Info() Info { return m.info }
