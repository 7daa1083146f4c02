package autogen

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/autogen/assistant"
	"github.com/hupe1980/autogen/core"
	"github.com/hupe1980/autogen/internal/testutil"
	"github.com/hupe1980/autogen/model"
	"github.com/hupe1980/autogen/record"
)

func TestNewChatSession(t *testing.T) {
	m := model.NewMockModel("mock-1", "mock")
	conv := NewChatSession("ping", m)
	defer conv.Close()

	assert.Equal(t, []string{"instruction", "text", "chat:mock-1"}, conv.Steps())

	rec := record.NewChatRecord()
	require.NoError(t, conv.PlayWith(context.Background(), rec))

	assert.Equal(t, []core.Message{
		core.SystemMessage(DefaultInstruction),
		core.UserMessage("ping"),
		core.AssistantMessage("Mock response to: ping"),
	}, rec.Messages())
}

func TestNewChatSession_NoInstruction(t *testing.T) {
	m := model.NewMockModel("mock-1", "mock")
	conv := NewChatSession("ping", m, func(o *ChatSessionOptions) { o.Instruction = "" })

	rec := record.NewChatRecord()
	require.NoError(t, conv.PlayWith(context.Background(), rec))
	assert.Equal(t, 2, rec.Len())
}

func TestNewChessMatch_FallsBackToEngine(t *testing.T) {
	searcher := &testutil.FirstLegalSearcher{}
	m := model.NewMockModel("mock-1", "mock")

	conv := NewChessMatch(searcher, m, func(o *ChessMatchOptions) {
		o.Rounds = 3
		o.MaxTries = 1
		o.MoveTime = time.Millisecond
	})
	defer conv.Close()

	rec := record.NewChessRecord()
	require.NoError(t, conv.PlayWith(context.Background(), rec))

	// Three rounds of an engine move and a recovered chat turn.
	assert.Len(t, rec.Moves(), 6)
	assert.Equal(t, 6, searcher.Searches)
	assert.Len(t, m.Requests(), 3)
}

func TestNewChessMatch_ModelErrorStops(t *testing.T) {
	down := errors.New("down")
	m := model.NewMockModel("mock-1", "mock")
	m.EnqueueError(down)

	conv := NewChessMatch(&testutil.FirstLegalSearcher{}, m)
	rec := record.NewChessRecord()

	err := conv.PlayWith(context.Background(), rec)
	require.ErrorIs(t, err, down)
	assert.Len(t, rec.Moves(), 1)
}

func TestEngineFallback(t *testing.T) {
	fallback := assistant.NewEngine(&testutil.FirstLegalSearcher{})
	rf := EngineFallback(fallback, nil)

	a, err := rf(context.Background(), assistant.ErrNoLegalMove)
	require.NoError(t, err)
	assert.Same(t, fallback, a)

	a, err = rf(context.Background(), &record.MoveError{Move: "xx", Err: record.ErrInvalidMove})
	require.NoError(t, err)
	assert.Same(t, fallback, a)

	down := errors.New("down")
	a, err = rf(context.Background(), down)
	assert.Nil(t, a)
	assert.Same(t, down, err)
}
