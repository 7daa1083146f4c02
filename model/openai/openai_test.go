package openai

import (
	"testing"

	"github.com/hupe1980/autogen/core"
	"github.com/hupe1980/autogen/model"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessages(t *testing.T) {
	msgs := buildMessages([]core.Message{
		core.SystemMessage("rules"),
		core.UserMessage("hi"),
		core.AssistantMessage("hello"),
		{Role: "tool", Content: "ignored role"},
	})

	require.Len(t, msgs, 4)
	assert.NotNil(t, msgs[0].OfSystem)
	assert.NotNil(t, msgs[1].OfUser)
	assert.NotNil(t, msgs[2].OfAssistant)
	assert.NotNil(t, msgs[3].OfUser)
}

func TestBuildParams(t *testing.T) {
	client := openai.NewClient(option.WithAPIKey("test"))
	m := NewModelFromClient(&client, func(o *Options) {
		o.Model = "gpt-test"
		o.Choices = 3
	})

	params := m.buildParams(model.Request{Messages: []core.Message{core.UserMessage("hi")}})
	assert.Equal(t, "gpt-test", params.Model)
	assert.Len(t, params.Messages, 1)

	params = m.buildParams(model.Request{Model: "override"})
	assert.Equal(t, "override", params.Model)

	assert.Equal(t, model.Info{Name: "gpt-test", Provider: "openai"}, m.Info())
}
