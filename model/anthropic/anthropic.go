// Package anthropic provides a model wrapper for the Anthropic Claude API.
package anthropic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/hupe1980/autogen/core"
	"github.com/hupe1980/autogen/logging"
	"github.com/hupe1980/autogen/model"
)

// Options configures the Anthropic model adapter (temperature, model id,
// max tokens, API key). Extend via functional options to preserve stability.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
	Logger      logging.Logger
}

// Model wraps the Anthropic Messages API behind the generic model.Model interface.
type Model struct {
	client *anthropic.Client
	opts   Options
}

func defaultOptions() Options {
	return Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   1024,
		Logger:      logging.NoOpLogger{},
	}
}

// NewModel creates a new Anthropic model using the official client. The
// API key defaults to the ANTHROPIC_API_KEY environment variable.
func NewModel(optFns ...func(o *Options)) *Model {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}

	client := anthropic.NewClient(clientOpts...)
	opts.Logger = logging.OrNoOp(opts.Logger)

	return &Model{
		client: &client,
		opts:   opts,
	}
}

// NewModelFromClient creates a new Anthropic model from an existing client
func NewModelFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Model {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	opts.Logger = logging.OrNoOp(opts.Logger)

	return &Model{
		client: client,
		opts:   opts,
	}
}

// Generate implements model.Model. The Messages API yields a single
// candidate; its text blocks are concatenated into one message.
func (m *Model) Generate(ctx context.Context, req model.Request) (*model.Response, error) {
	name := m.opts.Model
	if req.Model != "" {
		name = anthropic.Model(req.Model)
	}

	params := anthropic.MessageNewParams{
		Model:       name,
		Messages:    buildMessages(req.Messages),
		MaxTokens:   m.opts.MaxTokens,
		Temperature: anthropic.Float(m.opts.Temperature),
	}
	if systemBlocks := extractSystemMessage(req.Messages); len(systemBlocks) > 0 {
		params.System = systemBlocks
	}

	start := time.Now()
	resp, err := m.client.Messages.New(ctx, params)
	if err != nil {
		logging.LogLLMCall(m.opts.Logger, string(name), 0, time.Since(start), err)
		return nil, fmt.Errorf("anthropic api error: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.AsText().Text)
		}
	}

	out := &model.Response{
		ID: resp.ID,
		Usage: &model.TokenUsage{
			PromptTokens:     int(resp.Usage.InputTokens),
			CompletionTokens: int(resp.Usage.OutputTokens),
			TotalTokens:      int(resp.Usage.InputTokens + resp.Usage.OutputTokens),
		},
	}
	if text.Len() > 0 {
		out.Choices = []core.Message{core.AssistantMessage(text.String())}
	}
	logging.LogLLMCall(m.opts.Logger, string(name), out.Usage.TotalTokens, time.Since(start), nil)
	return out, nil
}

// leadingUserTurn opens a conversation that would otherwise start with an
// assistant turn or be empty; the Messages API requires a user turn first.
const leadingUserTurn = "Continue."

// buildMessages converts role-tagged messages to Anthropic message format.
// System messages are sent separately; unknown roles are treated as user.
func buildMessages(msgs []core.Message) []anthropic.MessageParam {
	var messages []anthropic.MessageParam
	for _, msg := range msgs {
		if msg.Role == core.RoleSystem || msg.Content == "" {
			continue
		}
		block := anthropic.NewTextBlock(msg.Content)
		if msg.Role == core.RoleAssistant {
			messages = append(messages, anthropic.NewAssistantMessage(block))
			continue
		}
		messages = append(messages, anthropic.NewUserMessage(block))
	}
	if len(messages) == 0 || messages[0].Role != anthropic.MessageParamRoleUser {
		lead := anthropic.NewUserMessage(anthropic.NewTextBlock(leadingUserTurn))
		messages = append([]anthropic.MessageParam{lead}, messages...)
	}
	return messages
}

// extractSystemMessage extracts system message blocks
func extractSystemMessage(msgs []core.Message) []anthropic.TextBlockParam {
	var systemBlocks []anthropic.TextBlockParam
	for _, msg := range msgs {
		if msg.Role == core.RoleSystem && msg.Content != "" {
			systemBlocks = append(systemBlocks, anthropic.TextBlockParam{Text: msg.Content})
		}
	}
	return systemBlocks
}

// Info returns metadata describing this Anthropic model implementation.
func (m *Model) Info() model.Info {
	return model.Info{
		Name:     string(m.opts.Model),
		Provider: "anthropic",
	}
}
