package ui

import "github.com/charmbracelet/lipgloss"

var (
	dimColor     = lipgloss.Color("7")
	accentColor  = lipgloss.Color("12")
	successColor = lipgloss.Color("10")
	dangerColor  = lipgloss.Color("9")
	toolColor    = lipgloss.Color("11")

	// PromptStyle renders the input prompt marker.
	PromptStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	// AssistantStyle renders model prose.
	AssistantStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	// ToolStyle renders one-line tool summaries.
	ToolStyle = lipgloss.NewStyle().
			Foreground(toolColor)

	// ErrorStyle renders failures shown to the user.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(dangerColor).
			Bold(true)

	// DimStyle renders secondary detail such as truncation notices.
	DimStyle = lipgloss.NewStyle().
			Foreground(dimColor)
)
