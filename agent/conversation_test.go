package agent

import (
	"context"
	"testing"

	"github.com/hupe1980/autogen/core"
	"github.com/hupe1980/autogen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rec = *testutil.LogRecord

func TestConversation_RunsInAppendOrder(t *testing.T) {
	calls := &testutil.Calls{}
	conv := NewConversation[rec]().
		Agent(testutil.NewStep[rec]("a", calls)).
		Agent(testutil.NewStep[rec]("b", calls)).
		Agent(testutil.NewStep[rec]("c", calls))

	r := &testutil.LogRecord{}
	require.NoError(t, conv.PlayWith(context.Background(), r))

	assert.Equal(t, []string{"a", "b", "c"}, calls.Order())
	assert.Equal(t, []string{"a", "b", "c"}, r.Contents())
	assert.Equal(t, []string{"a", "b", "c"}, conv.Steps())
	assert.Equal(t, 3, conv.Len())
}

func TestConversation_FailFast(t *testing.T) {
	tests := []struct {
		name     string
		failAt   int
		expected []string
	}{
		{name: "first step fails", failAt: 0, expected: []string{"s0"}},
		{name: "middle step fails", failAt: 2, expected: []string{"s0", "s1", "s2"}},
		{name: "last step fails", failAt: 4, expected: []string{"s0", "s1", "s2", "s3", "s4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := &testutil.Calls{}
			conv := NewConversation[rec]()
			for i := 0; i < 5; i++ {
				step := testutil.NewStep[rec]("s"+string(rune('0'+i)), calls)
				if i == tt.failAt {
					step.Err = testutil.ErrBoom
				}
				conv.Agent(step)
			}

			err := conv.PlayWith(context.Background(), &testutil.LogRecord{})

			require.Error(t, err)
			assert.ErrorIs(t, err, testutil.ErrBoom)
			assert.Equal(t, tt.expected, calls.Order())

			se, ok := core.FailedStep(err)
			require.True(t, ok)
			assert.Equal(t, tt.failAt, se.Index)
			assert.Equal(t, tt.expected[len(tt.expected)-1], se.Step)
		})
	}
}

func TestConversation_NoRollbackOnFailure(t *testing.T) {
	calls := &testutil.Calls{}
	failing := testutil.NewStep[rec]("bad", calls)
	failing.Err = testutil.ErrBoom

	r := &testutil.LogRecord{}
	err := NewConversation[rec]().
		Agent(testutil.NewStep[rec]("good", calls)).
		Agent(failing).
		PlayWith(context.Background(), r)

	require.ErrorIs(t, err, testutil.ErrBoom)
	assert.Equal(t, []string{"good", "bad"}, r.Contents())
}

func TestConversation_Say(t *testing.T) {
	r := &testutil.LogRecord{}
	require.NoError(t, NewConversation[rec]().Say("hello").PlayWith(context.Background(), r))

	require.Len(t, r.Entries, 1)
	assert.Equal(t, core.UserMessage("hello"), r.Entries[0])
}

func TestConversation_RecordRejectionFailsStep(t *testing.T) {
	r := &testutil.LogRecord{Reject: func(c string) bool { return c == "bad" }}

	err := NewConversation[rec]().Say("ok").Say("bad").Say("never").PlayWith(context.Background(), r)

	require.ErrorIs(t, err, testutil.ErrRejected)
	assert.Equal(t, []string{"ok"}, r.Contents())
}

func TestConversation_CancelledContext(t *testing.T) {
	calls := &testutil.Calls{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewConversation[rec]().Agent(testutil.NewStep[rec]("a", calls)).PlayWith(ctx, &testutil.LogRecord{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, calls.Order())

	se, ok := core.FailedStep(err)
	require.True(t, ok)
	assert.Equal(t, 0, se.Index)
	assert.Equal(t, "a", se.Step)
}

func TestConversation_CloseReleasesOnce(t *testing.T) {
	a := testutil.NewStep[rec]("a", nil)
	b := testutil.NewStep[rec]("b", nil)
	conv := NewConversation[rec]().Agent(a).Agent(b)

	require.NoError(t, conv.Close())
	require.NoError(t, conv.Close())

	assert.Equal(t, 1, a.Closed)
	assert.Equal(t, 1, b.Closed)
	assert.ErrorIs(t, conv.PlayWith(context.Background(), &testutil.LogRecord{}), core.ErrReleased)
}

func TestConversation_Nested(t *testing.T) {
	calls := &testutil.Calls{}
	inner := NewConversation[rec](func(o *ConversationOptions) { o.Name = "inner" }).
		Agent(testutil.NewStep[rec]("i1", calls)).
		Agent(testutil.NewStep[rec]("i2", calls))

	r := &testutil.LogRecord{}
	require.NoError(t, NewConversation[rec]().
		Agent(testutil.NewStep[rec]("o1", calls)).
		Agent(inner).
		Agent(testutil.NewStep[rec]("o2", calls)).
		PlayWith(context.Background(), r))

	assert.Equal(t, []string{"o1", "i1", "i2", "o2"}, calls.Order())
}

func TestPlay_ReturnsFreshRecord(t *testing.T) {
	conv := NewConversation[rec]().Say("one").Say("two")

	r, err := Play(context.Background(), conv)

	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, r.Contents())
}

func TestPlay_ReturnsError(t *testing.T) {
	bad := testutil.NewStep[rec]("bad", nil)
	bad.Err = testutil.ErrBoom

	r, err := Play(context.Background(), NewConversation[rec]().Agent(bad))

	assert.ErrorIs(t, err, testutil.ErrBoom)
	assert.Nil(t, r)
}

func TestConversation_Describe(t *testing.T) {
	conv := NewConversation[rec]().Say("hi")
	conv.While(func(rec) bool { return false }).
		Agent(Catch[rec](testutil.NewStep[rec]("primary", nil), RecoverIs[rec](testutil.ErrBoom, testutil.NewStep[rec]("fallback", nil)))).
		End()

	plan := conv.Describe()

	require.Len(t, plan.Children, 2)
	assert.Equal(t, "agent", plan.Children[0].Kind)
	assert.Equal(t, "while", plan.Children[1].Kind)
	require.Len(t, plan.Children[1].Children, 1)
	assert.Equal(t, "catch(primary)", plan.Children[1].Children[0].Name)
}
