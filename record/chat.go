package record

import "github.com/hupe1980/autogen/core"

// ChatRecord is an ordered log of role-tagged messages. Push always
// accepts. The zero value is an empty transcript ready for use.
type ChatRecord struct {
	messages []core.Message
}

// NewChatRecord creates a transcript seeded with msgs.
func NewChatRecord(msgs ...core.Message) *ChatRecord {
	return &ChatRecord{messages: append([]core.Message(nil), msgs...)}
}

// Push implements core.Record.
func (r *ChatRecord) Push(role core.Role, content string) error {
	r.messages = append(r.messages, core.Message{Role: role, Content: content})
	return nil
}

// PushMessage implements core.MessagePusher.
func (r *ChatRecord) PushMessage(msg core.Message) error {
	r.messages = append(r.messages, msg)
	return nil
}

// Messages returns a copy of the transcript.
func (r *ChatRecord) Messages() []core.Message {
	return append([]core.Message(nil), r.messages...)
}

// Len returns the number of messages.
func (r *ChatRecord) Len() int { return len(r.messages) }

// Last returns the most recent message, if any.
func (r *ChatRecord) Last() (core.Message, bool) {
	if len(r.messages) == 0 {
		return core.Message{}, false
	}
	return r.messages[len(r.messages)-1], true
}
