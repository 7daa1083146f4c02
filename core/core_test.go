package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceRecord struct {
	msgs   []Message
	reject bool
}

func (r *sliceRecord) Push(role Role, content string) error {
	if r.reject {
		return errors.New("rejected")
	}
	r.msgs = append(r.msgs, Message{Role: role, Content: content})
	return nil
}

type pusherRecord struct {
	sliceRecord
	direct int
}

func (r *pusherRecord) PushMessage(msg Message) error {
	r.direct++
	return r.Push(msg.Role, msg.Content)
}

type closingAgent struct {
	calls  int
	closed int
	err    error
}

func (a *closingAgent) Handle(_ context.Context, r *sliceRecord) error {
	a.calls++
	return a.err
}

func (a *closingAgent) Close() error {
	a.closed++
	return nil
}

type refAgent struct {
	handle, ref int
}

func (a *refAgent) Handle(_ context.Context, _ *sliceRecord) error {
	a.handle++
	return nil
}

func (a *refAgent) HandleRef(_ context.Context, _ *sliceRecord) error {
	a.ref++
	return nil
}

func (a *refAgent) Name() string { return "ref" }

func TestText_PushesUserMessage(t *testing.T) {
	rec := &sliceRecord{}

	err := Text[*sliceRecord]("Tell me about yourself").Handle(context.Background(), rec)

	require.NoError(t, err)
	require.Len(t, rec.msgs, 1)
	assert.Equal(t, UserMessage("Tell me about yourself"), rec.msgs[0])
}

func TestPushMessage(t *testing.T) {
	t.Run("routes to push", func(t *testing.T) {
		rec := &sliceRecord{}
		require.NoError(t, PushMessage(rec, AssistantMessage("hi")))
		assert.Equal(t, []Message{AssistantMessage("hi")}, rec.msgs)
	})

	t.Run("prefers message pusher", func(t *testing.T) {
		rec := &pusherRecord{}
		require.NoError(t, PushMessage(rec, SystemMessage("rules")))
		assert.Equal(t, 1, rec.direct)
		assert.Equal(t, []Message{SystemMessage("rules")}, rec.msgs)
	})

	t.Run("propagates rejection", func(t *testing.T) {
		rec := &sliceRecord{reject: true}
		assert.Error(t, PushMessage(rec, UserMessage("x")))
		assert.Empty(t, rec.msgs)
	})
}

func TestHandler_InvokeWrapsError(t *testing.T) {
	boom := errors.New("boom")
	a := &closingAgent{err: boom}
	h := NewHandler[*sliceRecord](a)

	err := h.Invoke(context.Background(), &sliceRecord{})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	se, ok := FailedStep(err)
	require.True(t, ok)
	assert.Equal(t, "*core.closingAgent", se.Step)
	assert.Equal(t, 1, a.calls)
}

func TestHandler_PrefersHandleRef(t *testing.T) {
	a := &refAgent{}
	h := NewHandler[*sliceRecord](a)

	require.NoError(t, h.Invoke(context.Background(), &sliceRecord{}))

	assert.Equal(t, 1, a.ref)
	assert.Equal(t, 0, a.handle)
	assert.Equal(t, "ref", h.Name())
}

func TestHandler_ReleaseOnce(t *testing.T) {
	a := &closingAgent{}
	h := NewHandler[*sliceRecord](a)

	require.NoError(t, h.Release())
	require.NoError(t, h.Release())

	assert.Equal(t, 1, a.closed)
	assert.Equal(t, 0, a.calls)

	err := h.Invoke(context.Background(), &sliceRecord{})
	assert.ErrorIs(t, err, ErrReleased)
	assert.Equal(t, 0, a.calls)
}

func TestShared_OnlyCallsHandleRef(t *testing.T) {
	a := &refAgent{}
	s := Shared[*sliceRecord](a)

	require.NoError(t, s.Handle(context.Background(), &sliceRecord{}))

	assert.Equal(t, 1, a.ref)
	assert.Equal(t, 0, a.handle)
}

func TestAgentFunc(t *testing.T) {
	rec := &sliceRecord{}
	f := AgentFunc[*sliceRecord](func(_ context.Context, r *sliceRecord) error {
		return r.Push(RoleAssistant, "done")
	})

	require.NoError(t, NewHandler[*sliceRecord](f).Invoke(context.Background(), rec))
	assert.Equal(t, []Message{AssistantMessage("done")}, rec.msgs)
}

func TestStepError_Message(t *testing.T) {
	err := &StepError{Index: 2, Step: "chat", Err: errors.New("down")}
	assert.Equal(t, "step 2 (chat): down", err.Error())

	err.Index = -1
	assert.Equal(t, "step chat: down", err.Error())
}
