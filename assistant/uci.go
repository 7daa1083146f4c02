package assistant

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hupe1980/autogen/logging"
	"github.com/notnil/chess"
	"github.com/notnil/chess/uci"
)

// UCIOptions configures a UCISearcher.
type UCIOptions struct {
	// Grace is added to the move budget before a search is abandoned.
	Grace time.Duration
	// Debug echoes the UCI protocol exchange through the uci package.
	Debug  bool
	Logger logging.Logger
}

// UCISearcher drives a UCI chess engine subprocess (for example
// stockfish). The process is started lazily on the first search and
// restarted after a timeout. It is safe for concurrent use; searches are
// serialized.
type UCISearcher struct {
	path string
	opts UCIOptions

	mu     sync.Mutex
	eng    *uci.Engine
	closed bool
}

var _ MoveSearcher = (*UCISearcher)(nil)

// NewUCISearcher creates a searcher for the engine binary at path.
func NewUCISearcher(path string, optFns ...func(o *UCIOptions)) *UCISearcher {
	opts := UCIOptions{Grace: 2 * time.Second, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	opts.Logger = logging.OrNoOp(opts.Logger)
	return &UCISearcher{path: path, opts: opts}
}

// Start launches the subprocess eagerly so a missing binary is reported
// before the first move.
func (s *UCISearcher) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.engine()
	return err
}

// engine returns the running engine, starting it if needed. Callers hold mu.
func (s *UCISearcher) engine() (*uci.Engine, error) {
	if s.closed {
		return nil, &EngineError{Op: "start", Err: errors.New("searcher closed")}
	}
	if s.eng != nil {
		return s.eng, nil
	}

	var engOpts []func(e *uci.Engine)
	if s.opts.Debug {
		engOpts = append(engOpts, uci.Debug)
	}
	eng, err := uci.New(s.path, engOpts...)
	if err != nil {
		return nil, &EngineError{Op: "start", Err: err}
	}
	if err := eng.Run(uci.CmdUCI, uci.CmdIsReady, uci.CmdUCINewGame); err != nil {
		_ = eng.Close()
		return nil, &EngineError{Op: "handshake", Err: err}
	}
	s.opts.Logger.Info("uci engine started", "path", s.path)
	s.eng = eng
	return eng, nil
}

type searchResult struct {
	move string
	err  error
}

// BestMove implements MoveSearcher. The search is abandoned once budget
// plus Grace has elapsed; the subprocess is then killed and ErrEngineTimeout
// returned.
func (s *UCISearcher) BestMove(ctx context.Context, pos *chess.Position, budget time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	eng, err := s.engine()
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, budget+s.opts.Grace)
	defer cancel()

	done := make(chan searchResult, 1)
	go func() {
		if err := eng.Run(uci.CmdPosition{Position: pos}, uci.CmdGo{MoveTime: budget}); err != nil {
			done <- searchResult{err: &EngineError{Op: "search", Err: err}}
			return
		}
		best := eng.SearchResults().BestMove
		if best == nil {
			done <- searchResult{err: &EngineError{Op: "search", Err: errors.New("no best move reported")}}
			return
		}
		done <- searchResult{move: best.String()}
	}()

	select {
	case res := <-done:
		return res.move, res.err
	case <-ctx.Done():
		s.opts.Logger.Warn("uci engine search abandoned", "budget", budget, "error", ctx.Err())
		_ = eng.Close()
		s.eng = nil
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", &EngineError{Op: "search", Err: ErrEngineTimeout}
		}
		return "", &EngineError{Op: "search", Err: ctx.Err()}
	}
}

// Close terminates the subprocess. It is safe to call more than once.
func (s *UCISearcher) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.eng == nil {
		return nil
	}
	err := s.eng.Close()
	s.eng = nil
	if err != nil {
		return &EngineError{Op: "close", Err: err}
	}
	return nil
}
