package assistant

import (
	"context"

	"github.com/hupe1980/autogen/core"
	"github.com/hupe1980/autogen/logging"
	"github.com/hupe1980/autogen/model"
	"github.com/hupe1980/autogen/record"
)

// ChatOptions configures a Chat agent.
type ChatOptions struct {
	// Model overrides the model identifier configured on the adapter.
	Model  string
	Logger logging.Logger
}

// Chat sends the whole transcript to a chat model and appends the first
// candidate reply. It keeps no per-call state and is safe to share.
type Chat struct {
	model model.Model
	opts  ChatOptions
}

var _ core.RefAgent[*record.ChatRecord] = (*Chat)(nil)

// NewChat creates a Chat agent backed by m.
func NewChat(m model.Model, optFns ...func(o *ChatOptions)) *Chat {
	opts := ChatOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	opts.Logger = logging.OrNoOp(opts.Logger)
	return &Chat{model: m, opts: opts}
}

// Name implements core.Named.
func (c *Chat) Name() string { return "chat:" + c.modelName() }

// Chess derives a ChessChat agent talking to the same model.
func (c *Chat) Chess(optFns ...func(o *ChessChatOptions)) *ChessChat {
	return NewChessChat(c.model, append([]func(o *ChessChatOptions){func(o *ChessChatOptions) {
		o.Model = c.opts.Model
		o.Logger = c.opts.Logger
	}}, optFns...)...)
}

// Handle implements core.Agent.
func (c *Chat) Handle(ctx context.Context, rec *record.ChatRecord) error {
	return c.HandleRef(ctx, rec)
}

// HandleRef implements core.RefAgent.
func (c *Chat) HandleRef(ctx context.Context, rec *record.ChatRecord) error {
	msg, err := complete(ctx, c.model, model.Request{Model: c.opts.Model, Messages: rec.Messages()})
	if err != nil {
		return err
	}
	c.opts.Logger.Debug("chat reply received", "model", c.modelName(), "length", len(msg.Content))
	return core.PushMessage(rec, msg)
}

func (c *Chat) modelName() string {
	if c.opts.Model != "" {
		return c.opts.Model
	}
	return c.model.Info().Name
}

// complete runs one generation and returns its first candidate.
func complete(ctx context.Context, m model.Model, req model.Request) (core.Message, error) {
	info := m.Info()
	name := info.Name
	if req.Model != "" {
		name = req.Model
	}
	resp, err := m.Generate(ctx, req)
	if err != nil {
		return core.Message{}, &ModelError{Provider: info.Provider, Model: name, Err: err}
	}
	if len(resp.Choices) == 0 {
		return core.Message{}, &ModelError{Provider: info.Provider, Model: name, Err: ErrNoChoices}
	}
	msg := resp.Choices[0]
	if msg.Role == "" {
		msg.Role = core.RoleAssistant
	}
	return msg, nil
}
