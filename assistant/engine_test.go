package assistant

import (
	"context"
	"testing"
	"time"

	"github.com/hupe1980/autogen/core"
	"github.com/hupe1980/autogen/internal/testutil"
	"github.com/hupe1980/autogen/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEngine_PushesBestMove(t *testing.T) {
	searcher := &testutil.MockSearcher{}
	searcher.On("BestMove", mock.Anything, mock.Anything, 250*time.Millisecond).Return("e2e4", nil).Once()

	rec := record.NewChessRecord()
	eng := NewEngine(searcher, func(o *EngineOptions) { o.MoveTime = 250 * time.Millisecond })

	require.NoError(t, eng.Handle(context.Background(), rec))

	assert.Equal(t, []string{"e2e4"}, rec.Moves())
	searcher.AssertExpectations(t)
}

func TestEngine_SearchFailure(t *testing.T) {
	searcher := &testutil.MockSearcher{}
	timeout := &EngineError{Op: "search", Err: ErrEngineTimeout}
	searcher.On("BestMove", mock.Anything, mock.Anything, time.Second).Return("", timeout)

	rec := record.NewChessRecord()
	err := NewEngine(searcher).Handle(context.Background(), rec)

	require.ErrorIs(t, err, ErrEngineTimeout)
	var ee *EngineError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "search", ee.Op)
	assert.Empty(t, rec.Moves())
}

func TestEngine_IllegalSuggestionRejected(t *testing.T) {
	searcher := &testutil.MockSearcher{}
	searcher.On("BestMove", mock.Anything, mock.Anything, mock.Anything).Return("e2e5", nil)

	rec := record.NewChessRecord()
	err := NewEngine(searcher).Handle(context.Background(), rec)

	assert.ErrorIs(t, err, record.ErrIllegalMove)
	assert.Empty(t, rec.Moves())
}

func TestEngine_SkipsFinishedGame(t *testing.T) {
	searcher := &testutil.MockSearcher{}
	rec := record.NewChessRecord()
	for _, mv := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		require.NoError(t, rec.Push(core.RoleAssistant, mv))
	}

	require.NoError(t, NewEngine(searcher).Handle(context.Background(), rec))
	searcher.AssertNotCalled(t, "BestMove", mock.Anything, mock.Anything, mock.Anything)
}

func TestEngine_CloseIgnoresPlainSearcher(t *testing.T) {
	assert.NoError(t, NewEngine(&testutil.FirstLegalSearcher{}).Close())
}

func TestUCISearcher_MissingBinary(t *testing.T) {
	s := NewUCISearcher("/nonexistent/stockfish")

	err := s.Start()

	var ee *EngineError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "start", ee.Op)
	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}

func TestUCISearcher_ClosedRefusesSearch(t *testing.T) {
	s := NewUCISearcher("/nonexistent/stockfish")
	require.NoError(t, s.Close())

	_, err := s.BestMove(context.Background(), record.NewChessRecord().Position(), time.Millisecond)
	assert.Error(t, err)
}
