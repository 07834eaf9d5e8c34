package ui

import (
	"fmt"
	"io"
)

// Printer writes styled output for the interactive session.
type Printer struct {
	W     io.Writer
	Width int
}

func NewPrinter(w io.Writer, width int) *Printer {
	if width <= 0 {
		width = defaultWidth
	}
	return &Printer{W: w, Width: width}
}

// Assistant renders a final model reply as Markdown.
func (p *Printer) Assistant(content string) {
	fmt.Fprintln(p.W, AssistantStyle.Render(RenderMarkdown(content, p.Width)))
}

// ToolResult prints the user-facing summary of one tool execution.
func (p *Printer) ToolResult(summary string, truncated bool) {
	line := ToolStyle.Render("• " + TruncatePreview(summary, p.Width-2))
	if truncated {
		line += " " + DimStyle.Render("(output truncated)")
	}
	fmt.Fprintln(p.W, line)
}

// Error prints a failure that ends the current turn.
func (p *Printer) Error(err error) {
	fmt.Fprintln(p.W, ErrorStyle.Render("error: "+err.Error()))
}

// Prompt prints the input marker without a trailing newline.
func (p *Printer) Prompt() {
	fmt.Fprint(p.W, PromptStyle.Render("> "))
}
