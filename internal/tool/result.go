package tool

// Result is the bifurcated output envelope for tool execution.
// ForModel re-enters the conversation as tool output; ForUser is the short
// line shown in the terminal.
type Result struct {
	OK             bool
	ForModel       string
	ForUser        string
	TruncatedLines bool
	TruncatedBytes bool
}
