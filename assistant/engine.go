package assistant

import (
	"context"
	"io"
	"time"

	"github.com/hupe1980/autogen/core"
	"github.com/hupe1980/autogen/logging"
	"github.com/hupe1980/autogen/record"
	"github.com/notnil/chess"
)

// MoveSearcher computes the best move for a position within a time budget.
// The move is returned in UCI notation.
type MoveSearcher interface {
	BestMove(ctx context.Context, pos *chess.Position, budget time.Duration) (string, error)
}

// EngineOptions configures an Engine agent.
type EngineOptions struct {
	// Name is the display name of the agent.
	Name string
	// MoveTime is the search budget per move.
	MoveTime time.Duration
	Logger   logging.Logger
}

// Engine plays the move chosen by a MoveSearcher. The searcher usually
// owns a subprocess, so Engine requires exclusive access and is not a
// core.RefAgent.
type Engine struct {
	searcher MoveSearcher
	opts     EngineOptions
}

var _ core.Agent[*record.ChessRecord] = (*Engine)(nil)

// NewEngine creates an Engine agent. MoveTime defaults to one second.
func NewEngine(searcher MoveSearcher, optFns ...func(o *EngineOptions)) *Engine {
	opts := EngineOptions{
		Name:     "engine",
		MoveTime: time.Second,
		Logger:   logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	opts.Logger = logging.OrNoOp(opts.Logger)
	return &Engine{searcher: searcher, opts: opts}
}

// Name implements core.Named.
func (e *Engine) Name() string { return e.opts.Name }

// Handle implements core.Agent. A finished game is left untouched.
func (e *Engine) Handle(ctx context.Context, rec *record.ChessRecord) error {
	if rec.Done() {
		e.opts.Logger.Debug("engine: game over, skipping", "outcome", string(rec.Outcome()))
		return nil
	}

	start := time.Now()
	move, err := e.searcher.BestMove(ctx, rec.Position(), e.opts.MoveTime)
	if err != nil {
		return err
	}
	e.opts.Logger.Debug("engine: best move", "move", move, "side", sideName(rec.SideToMove()), "duration", time.Since(start))
	return rec.Push(core.RoleAssistant, move)
}

// Close releases the searcher when it holds resources.
func (e *Engine) Close() error {
	if c, ok := e.searcher.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
