package chat

// Assemble builds the final request message list: system prompt first,
// then the (possibly compressed) history.
func Assemble(system string, history []Message) []Message {
	messages := make([]Message, 0, 1+len(history))
	if system != "" {
		messages = append(messages, Message{Role: RoleSystem, Content: system})
	}
	messages = append(messages, history...)
	return messages
}
