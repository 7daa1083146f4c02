package record

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/autogen/core"
	"github.com/notnil/chess"
)

var (
	// ErrInvalidMove indicates content that does not parse as a UCI move.
	ErrInvalidMove = errors.New("record: invalid move")
	// ErrIllegalMove indicates a well-formed move that is not legal in the
	// current position.
	ErrIllegalMove = errors.New("record: illegal move")
)

// MoveError describes a move rejected by a ChessRecord.
type MoveError struct {
	Move string
	Err  error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Move)
}

func (e *MoveError) Unwrap() error { return e.Err }

// ChessRecord is a chess game used as pipeline state. Pushed content is
// parsed as a UCI move (for example "e2e4" or "e7e8q") and applied only if
// legal. The zero value is a game at the standard starting position.
type ChessRecord struct {
	game *chess.Game
}

// NewChessRecord creates a game, forwarding options such as chess.FEN.
func NewChessRecord(opts ...func(*chess.Game)) *ChessRecord {
	return &ChessRecord{game: chess.NewGame(opts...)}
}

func (r *ChessRecord) ensure() *chess.Game {
	if r.game == nil {
		r.game = chess.NewGame()
	}
	return r.game
}

// Push implements core.Record. The role is ignored; both sides of the game
// share one move history.
func (r *ChessRecord) Push(_ core.Role, content string) error {
	g := r.ensure()
	text := strings.ToLower(strings.TrimSpace(content))

	mv, err := chess.UCINotation{}.Decode(g.Position(), text)
	if err != nil {
		return &MoveError{Move: text, Err: fmt.Errorf("%w: %v", ErrInvalidMove, err)}
	}
	if g.Outcome() != chess.NoOutcome {
		return &MoveError{Move: text, Err: fmt.Errorf("%w: game is over", ErrIllegalMove)}
	}
	if err := g.Move(mv); err != nil {
		return &MoveError{Move: text, Err: ErrIllegalMove}
	}
	return nil
}

// Game returns the underlying game.
func (r *ChessRecord) Game() *chess.Game { return r.ensure() }

// Replace swaps the underlying game, e.g. to resume from a saved position.
func (r *ChessRecord) Replace(g *chess.Game) { r.game = g }

// Position returns the current position.
func (r *ChessRecord) Position() *chess.Position { return r.ensure().Position() }

// FEN returns the current position in Forsyth-Edwards notation.
func (r *ChessRecord) FEN() string { return r.Position().String() }

// SideToMove returns the color to move.
func (r *ChessRecord) SideToMove() chess.Color { return r.Position().Turn() }

// Moves returns the played moves in UCI notation.
func (r *ChessRecord) Moves() []string {
	moves := r.ensure().Moves()
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}

// Outcome returns the game result, chess.NoOutcome while it is running.
func (r *ChessRecord) Outcome() chess.Outcome { return r.ensure().Outcome() }

// Method returns how the game ended.
func (r *ChessRecord) Method() chess.Method { return r.ensure().Method() }

// Done reports whether the game has a definite result.
func (r *ChessRecord) Done() bool { return r.Outcome() != chess.NoOutcome }
