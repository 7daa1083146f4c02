// Package openai provides an implementation of model.Model using the OpenAI
// Chat Completions API. It adapts autogen's role-tagged messages into the
// SDK's message format and every returned choice back into core.Message.
package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/autogen/core"
	"github.com/hupe1980/autogen/logging"
	"github.com/hupe1980/autogen/model"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Options configure the OpenAI model adapter.
// Fields mirror a subset of Chat Completion parameters intentionally kept
// minimal; extend via functional options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
	// Choices is the number of candidates requested (n).
	Choices int64
	APIKey  string
	Logger  logging.Logger
}

// Model wraps the OpenAI Chat Completions API behind the generic model.Model interface.
type Model struct {
	client *openai.Client
	opts   Options
}

func defaultOptions() Options {
	return Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 1024,
		Choices:             1,
		Logger:              logging.NoOpLogger{},
	}
}

// NewModel creates a new OpenAI model using the official client. The API
// key defaults to the OPENAI_API_KEY environment variable.
func NewModel(optFns ...func(o *Options)) *Model {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := openai.NewClient(clientOpts...)
	return newModel(&client, opts)
}

// NewModelFromClient creates a new OpenAI model from an existing client
func NewModelFromClient(client *openai.Client, optFns ...func(o *Options)) *Model {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return newModel(client, opts)
}

func newModel(client *openai.Client, opts Options) *Model {
	opts.Logger = logging.OrNoOp(opts.Logger)
	return &Model{client: client, opts: opts}
}

// Generate implements model.Model.
func (m *Model) Generate(ctx context.Context, req model.Request) (*model.Response, error) {
	params := m.buildParams(req)
	start := time.Now()

	resp, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		logging.LogLLMCall(m.opts.Logger, params.Model, 0, time.Since(start), err)
		return nil, fmt.Errorf("openai api error: %w", err)
	}

	out := &model.Response{
		ID:      resp.ID,
		Choices: make([]core.Message, 0, len(resp.Choices)),
		Usage: &model.TokenUsage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}
	for _, ch := range resp.Choices {
		out.Choices = append(out.Choices, core.AssistantMessage(ch.Message.Content))
	}
	logging.LogLLMCall(m.opts.Logger, params.Model, out.Usage.TotalTokens, time.Since(start), nil)
	return out, nil
}

// buildMessages converts role-tagged messages into OpenAI chat messages.
// Unknown roles are sent as user messages.
func buildMessages(msgs []core.Message) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, msg := range msgs {
		switch msg.Role {
		case core.RoleSystem:
			messages = append(messages, openai.SystemMessage(msg.Content))
		case core.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}
	return messages
}

// buildParams assembles the OpenAI request parameters.
func (m *Model) buildParams(req model.Request) openai.ChatCompletionNewParams {
	name := m.opts.Model
	if req.Model != "" {
		name = req.Model
	}
	params := openai.ChatCompletionNewParams{
		Messages:            buildMessages(req.Messages),
		Model:               name,
		Temperature:         openai.Float(m.opts.Temperature),
		MaxCompletionTokens: openai.Int(m.opts.MaxCompletionTokens),
	}
	if m.opts.Choices > 1 {
		params.N = openai.Int(m.opts.Choices)
	}
	return params
}

// Info returns metadata describing this OpenAI model implementation.
func (m *Model) Info() model.Info {
	return model.Info{
		Name:     m.opts.Model,
		Provider: "openai",
	}
}
