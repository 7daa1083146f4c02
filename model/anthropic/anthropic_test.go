package anthropic

import (
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/hupe1980/autogen/core"
	"github.com/hupe1980/autogen/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessages(t *testing.T) {
	in := []core.Message{
		core.SystemMessage("rules"),
		core.UserMessage("hi"),
		core.AssistantMessage("hello"),
		core.UserMessage(""),
	}

	msgs := buildMessages(in)
	require.Len(t, msgs, 2)
	assert.Equal(t, anthropic.MessageParamRoleUser, msgs[0].Role)
	assert.Equal(t, anthropic.MessageParamRoleAssistant, msgs[1].Role)

	sys := extractSystemMessage(in)
	require.Len(t, sys, 1)
	assert.Equal(t, "rules", sys[0].Text)
}

func TestInfo(t *testing.T) {
	m := NewModel(func(o *Options) {
		o.APIKey = "test"
		o.Model = "claude-test"
	})
	assert.Equal(t, model.Info{Name: "claude-test", Provider: "anthropic"}, m.Info())
}

func TestBuildMessages_LeadingUserTurn(t *testing.T) {
	tests := []struct {
		name  string
		in    []core.Message
		roles []anthropic.MessageParamRole
	}{
		{
			name:  "only system",
			in:    []core.Message{core.SystemMessage("fen")},
			roles: []anthropic.MessageParamRole{anthropic.MessageParamRoleUser},
		},
		{
			name: "assistant first",
			in: []core.Message{
				core.AssistantMessage("e2e4"),
				core.UserMessage("e7e5"),
				core.SystemMessage("fen"),
			},
			roles: []anthropic.MessageParamRole{
				anthropic.MessageParamRoleUser,
				anthropic.MessageParamRoleAssistant,
				anthropic.MessageParamRoleUser,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs := buildMessages(tt.in)
			require.Len(t, msgs, len(tt.roles))
			for i, role := range tt.roles {
				assert.Equal(t, role, msgs[i].Role)
			}
			require.NotNil(t, msgs[0].Content[0].OfText)
			assert.Equal(t, leadingUserTurn, msgs[0].Content[0].OfText.Text)
		})
	}
}
