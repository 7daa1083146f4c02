package core

// Role tags the author of a message pushed onto a Record.
type Role string

const (
	// RoleSystem marks instructions framing the conversation.
	RoleSystem Role = "system"
	// RoleUser marks caller or prompt authored content.
	RoleUser Role = "user"
	// RoleAssistant marks model or engine authored content.
	RoleAssistant Role = "assistant"
)

// Message is a role-tagged unit of textual content.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// SystemMessage builds a system role message.
func SystemMessage(content string) Message { return Message{Role: RoleSystem, Content: content} }

// UserMessage builds a user role message.
func UserMessage(content string) Message { return Message{Role: RoleUser, Content: content} }

// AssistantMessage builds an assistant role message.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// Record is the mutable state threaded through a pipeline run.
//
// Push is the only mutation entry point agents are allowed to use. It may
// reject content (for example an illegal move) and must leave the Record
// unchanged when it does. Push performs no I/O.
type Record interface {
	Push(role Role, content string) error
}

// MessagePusher is implemented by records that accept pre-built messages
// directly instead of routing them through Push.
type MessagePusher interface {
	PushMessage(msg Message) error
}

// PushMessage appends msg to r, preferring r's own PushMessage when it
// implements MessagePusher.
func PushMessage(r Record, msg Message) error {
	if mp, ok := r.(MessagePusher); ok {
		return mp.PushMessage(msg)
	}
	return r.Push(msg.Role, msg.Content)
}
