package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/hupe1980/autogen/core"
	"github.com/hupe1980/autogen/logging"
	"github.com/hupe1980/autogen/model"
	"github.com/hupe1980/autogen/record"
	"github.com/notnil/chess"
)

// ChessChatOptions configures a ChessChat agent.
type ChessChatOptions struct {
	// Model overrides the model identifier configured on the adapter.
	Model string
	// MaxTries bounds the number of moves requested per turn.
	MaxTries int
	// RememberIllegal keeps rejected moves across turns instead of
	// starting every turn with an empty list.
	RememberIllegal bool
	Logger          logging.Logger
}

// ChessChat asks a chat model for the next move of a game. The move
// history is replayed as alternating user/assistant messages (the model's
// own side as assistant), followed by a system prompt carrying the FEN and
// any moves already rejected this turn. Illegal replies are retried up to
// MaxTries; an unparsable reply is returned as the record's *MoveError.
type ChessChat struct {
	model model.Model
	opts  ChessChatOptions

	mu      sync.Mutex
	illegal []string // only used with RememberIllegal
}

var _ core.RefAgent[*record.ChessRecord] = (*ChessChat)(nil)

// NewChessChat creates a ChessChat agent backed by m. MaxTries defaults to 5.
func NewChessChat(m model.Model, optFns ...func(o *ChessChatOptions)) *ChessChat {
	opts := ChessChatOptions{MaxTries: 5, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxTries < 1 {
		opts.MaxTries = 1
	}
	opts.Logger = logging.OrNoOp(opts.Logger)
	return &ChessChat{model: m, opts: opts}
}

// Name implements core.Named.
func (c *ChessChat) Name() string {
	if c.opts.Model != "" {
		return "chess-chat:" + c.opts.Model
	}
	return "chess-chat:" + c.model.Info().Name
}

// Handle implements core.Agent.
func (c *ChessChat) Handle(ctx context.Context, rec *record.ChessRecord) error {
	return c.HandleRef(ctx, rec)
}

// HandleRef implements core.RefAgent. A finished game is left untouched.
func (c *ChessChat) HandleRef(ctx context.Context, rec *record.ChessRecord) error {
	if rec.Done() {
		c.opts.Logger.Debug("chess chat: game over, skipping", "outcome", string(rec.Outcome()))
		return nil
	}

	history := historyMessages(rec.Moves())
	illegal := c.knownIllegal()

	for try := 1; try <= c.opts.MaxTries; try++ {
		msgs := make([]core.Message, 0, len(history)+1)
		msgs = append(msgs, history...)
		msgs = append(msgs, core.SystemMessage(systemPrompt(rec.FEN(), illegal)))

		reply, err := complete(ctx, c.model, model.Request{Model: c.opts.Model, Messages: msgs})
		if err != nil {
			return err
		}

		move := NormalizeMove(reply.Content)
		err = core.PushMessage(rec, core.AssistantMessage(move))
		if err == nil {
			c.opts.Logger.Debug("chess chat: move accepted", "move", move, "try", try)
			return nil
		}
		if !errors.Is(err, record.ErrIllegalMove) {
			return err
		}

		c.opts.Logger.Info("chess chat: illegal move", "move", move, "try", try, "max_tries", c.opts.MaxTries)
		illegal = append(illegal, move)
		c.rememberIllegal(move)
	}

	return fmt.Errorf("%w after %d tries", ErrNoLegalMove, c.opts.MaxTries)
}

func (c *ChessChat) knownIllegal() []string {
	if !c.opts.RememberIllegal {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.illegal...)
}

func (c *ChessChat) rememberIllegal(move string) {
	if !c.opts.RememberIllegal {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.illegal = append(c.illegal, move)
}

// historyMessages renders played moves so that the side to move sees its
// own earlier moves as assistant messages.
func historyMessages(moves []string) []core.Message {
	msgs := make([]core.Message, len(moves))
	n := len(moves)
	for i, m := range moves {
		role := core.RoleUser
		if i%2 == n%2 {
			role = core.RoleAssistant
		}
		msgs[i] = core.Message{Role: role, Content: m}
	}
	return msgs
}

func systemPrompt(fen string, illegal []string) string {
	var known string
	if len(illegal) > 0 {
		known = fmt.Sprintf(" and knowing (%s) are illegal moves", strings.Join(illegal, ", "))
	}
	return fmt.Sprintf("You're a chess engine. Respond only with the next move to play, based on the previous moves%s, using the UCI format. The current state of the board is %s (using FEN notation).", known, fen)
}

// NormalizeMove extracts a UCI move candidate from a free-form reply: the
// last whitespace separated token, without trailing punctuation.
func NormalizeMove(reply string) string {
	s := strings.TrimRightFunc(strings.TrimSpace(reply), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if fields := strings.Fields(s); len(fields) > 0 {
		s = fields[len(fields)-1]
	}
	return strings.TrimLeftFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// sideName returns "white" or "black".
func sideName(c chess.Color) string {
	if c == chess.White {
		return "white"
	}
	return "black"
}
