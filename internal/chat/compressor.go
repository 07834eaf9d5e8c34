package chat

// Compressor keeps only the last MaxMessages messages when building a
// request. The transcript itself stays complete.
type Compressor struct {
	MaxMessages int
}

// Compress truncates messages to the most recent MaxMessages entries.
func (c Compressor) Compress(messages []Message) []Message {
	if c.MaxMessages <= 0 || len(messages) <= c.MaxMessages {
		return messages
	}
	return messages[len(messages)-c.MaxMessages:]
}
