package ui

import (
	"strings"

	markdown "github.com/MichaelMure/go-term-markdown"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"
	"github.com/mattn/go-runewidth"
)

const defaultWidth = 100

// RenderMarkdown renders model prose as terminal Markdown. Autolink is
// disabled so plain URLs stay plain and the terminal can handle them.
func RenderMarkdown(content string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	ext := markdown.Extensions() &^ parser.Autolink
	p := parser.NewWithExtensions(ext)
	r := markdown.NewRenderer(width, 0)
	doc := p.Parse([]byte(content))
	return strings.TrimRight(string(gomarkdown.Render(doc, r)), "\n")
}

// TruncatePreview clips a one-line preview to the given display width,
// measured in terminal cells so wide runes count double.
func TruncatePreview(s string, width int) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}
