// Package autogen provides ready-made pipelines on top of the agent,
// assistant and record packages. Most applications either use these
// constructors directly or copy them as a starting point:
//  1. NewChatSession for a single prompt answered by a chat model
//  2. NewChessMatch for a UCI engine playing a chat model, with the engine
//     stepping in whenever the model cannot name a legal move
//
// Both return an *agent.Conversation; run it with PlayWith (or agent.Play)
// and release it with Close.
package autogen

import (
	"context"
	"errors"
	"time"

	"github.com/hupe1980/autogen/agent"
	"github.com/hupe1980/autogen/assistant"
	"github.com/hupe1980/autogen/core"
	"github.com/hupe1980/autogen/logging"
	"github.com/hupe1980/autogen/model"
	"github.com/hupe1980/autogen/record"
)

// DefaultInstruction is the system prompt used by NewChatSession.
const DefaultInstruction = "You are a helpful assistant. Keep responses concise and friendly."

// ChatSessionOptions configures NewChatSession.
type ChatSessionOptions struct {
	// Instruction is pushed as a system message before the prompt. An
	// empty instruction is skipped.
	Instruction string
	Logger      logging.Logger
}

// NewChatSession builds the pipeline [instruction, prompt, chat model].
func NewChatSession(prompt string, m model.Model, optFns ...func(o *ChatSessionOptions)) *agent.Conversation[*record.ChatRecord] {
	opts := ChatSessionOptions{Instruction: DefaultInstruction, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	opts.Logger = logging.OrNoOp(opts.Logger)

	conv := agent.NewConversation[*record.ChatRecord](func(o *agent.ConversationOptions) {
		o.Name = "chat"
		o.Logger = opts.Logger
	})
	if opts.Instruction != "" {
		conv.Agent(instruction(opts.Instruction))
	}
	return conv.
		Say(prompt).
		Agent(assistant.NewChat(m, func(o *assistant.ChatOptions) { o.Logger = opts.Logger }))
}

// instruction pushes a fixed system message.
type instruction string

func (s instruction) Handle(ctx context.Context, rec *record.ChatRecord) error {
	return s.HandleRef(ctx, rec)
}

func (s instruction) HandleRef(_ context.Context, rec *record.ChatRecord) error {
	return rec.Push(core.RoleSystem, string(s))
}

func (instruction) Name() string { return "instruction" }

// ChessMatchOptions configures NewChessMatch.
type ChessMatchOptions struct {
	// Rounds bounds the number of loop iterations (one engine move and one
	// model move each). Zero means no bound.
	Rounds int
	// MaxTries bounds the moves requested from the model per turn.
	MaxTries int
	// MoveTime is the engine search budget per move.
	MoveTime time.Duration
	// RememberIllegal keeps rejected model moves across turns.
	RememberIllegal bool
	Logger          logging.Logger
}

// NewChessMatch builds a loop that runs until the game has an outcome.
// Each round searcher moves for one side and m for the other; a model turn
// ending in ErrNoLegalMove or an unparsable reply is handed back to the
// engine.
func NewChessMatch(searcher assistant.MoveSearcher, m model.Model, optFns ...func(o *ChessMatchOptions)) *agent.Conversation[*record.ChessRecord] {
	opts := ChessMatchOptions{
		Rounds:   200,
		MaxTries: 5,
		MoveTime: time.Second,
		Logger:   logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	opts.Logger = logging.OrNoOp(opts.Logger)

	engine := func(name string) *assistant.Engine {
		return assistant.NewEngine(searcher, func(o *assistant.EngineOptions) {
			o.Name = name
			o.MoveTime = opts.MoveTime
			o.Logger = opts.Logger
		})
	}
	chat := assistant.NewChessChat(m, func(o *assistant.ChessChatOptions) {
		o.MaxTries = opts.MaxTries
		o.RememberIllegal = opts.RememberIllegal
		o.Logger = opts.Logger
	})

	return agent.NewConversation[*record.ChessRecord](func(o *agent.ConversationOptions) {
		o.Name = "chess"
		o.Logger = opts.Logger
	}).
		While(func(g *record.ChessRecord) bool { return !g.Done() },
			agent.WithMaxIterations(opts.Rounds),
			agent.WithLogger(opts.Logger)).
		Agent(engine("engine")).
		Agent(agent.Catch[*record.ChessRecord](chat, EngineFallback(engine("fallback"), opts.Logger))).
		End()
}

// EngineFallback recovers chess turns that produced no usable move by
// running fallback instead. Any other error is returned unchanged.
func EngineFallback(fallback core.Agent[*record.ChessRecord], logger logging.Logger) agent.RecoverFunc[*record.ChessRecord] {
	logger = logging.OrNoOp(logger)
	return func(_ context.Context, err error) (core.Agent[*record.ChessRecord], error) {
		if errors.Is(err, assistant.ErrNoLegalMove) || errors.Is(err, record.ErrInvalidMove) {
			logger.Info("model gave up, engine moves instead", "error", err)
			return fallback, nil
		}
		return nil, err
	}
}
