package chat

// Transcript is the append-only conversation history for one process run.
// Messages are never mutated or removed once appended; windowing happens
// only when a request is assembled, never on the transcript itself.
type Transcript struct {
	messages []Message
}

func NewTranscript() *Transcript {
	return &Transcript{}
}

func (t *Transcript) Append(role, content string) {
	t.messages = append(t.messages, Message{Role: role, Content: content})
}

// Messages returns a copy so callers cannot mutate history in place.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

func (t *Transcript) Len() int {
	return len(t.messages)
}
