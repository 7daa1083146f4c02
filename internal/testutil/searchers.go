package testutil

import (
	"context"
	"errors"
	"time"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/mock"
)

// MockSearcher is a testify mock satisfying assistant.MoveSearcher.
type MockSearcher struct {
	mock.Mock
}

// BestMove implements assistant.MoveSearcher.
func (m *MockSearcher) BestMove(ctx context.Context, pos *chess.Position, budget time.Duration) (string, error) {
	args := m.Called(ctx, pos, budget)
	return args.String(0), args.Error(1)
}

// ErrNoMoves is returned by FirstLegalSearcher for positions without legal moves.
var ErrNoMoves = errors.New("testutil: no legal moves")

// FirstLegalSearcher deterministically plays the first legal move of every
// position. It stands in for a real engine in end-to-end tests.
type FirstLegalSearcher struct {
	Searches int
}

// BestMove implements assistant.MoveSearcher.
func (s *FirstLegalSearcher) BestMove(_ context.Context, pos *chess.Position, _ time.Duration) (string, error) {
	s.Searches++
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return "", ErrNoMoves
	}
	return moves[0].String(), nil
}
