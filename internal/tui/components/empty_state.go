// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/wablast/wablast/internal/tui/styles"
)

// EmptyState represents an empty state message with optional suggestions.
type EmptyState struct {
	// Icon is an optional icon to display (e.g., "📭", "📄").
	Icon string
	// Title is the main empty state message.
	Title string
	// Subtitle is an optional secondary message.
	Subtitle string
	// Suggestions are actionable keys or commands the user can run.
	Suggestions []Suggestion
}

// Suggestion represents a suggested action with description.
type Suggestion struct {
	// Command is the key or CLI command (e.g., "n", "wablast sample").
	Command string
	// Description explains what the action does.
	Description string
}

// Render renders the empty state with the given styles.
func (e EmptyState) Render(styleSet styles.Styles) string {
	var lines []string

	titleLine := e.Title
	if e.Icon != "" {
		titleLine = e.Icon + "  " + titleLine
	}
	lines = append(lines, styleSet.Muted.Render(titleLine))

	if e.Subtitle != "" {
		lines = append(lines, styleSet.Muted.Render(e.Subtitle))
	}

	if len(e.Suggestions) > 0 {
		lines = append(lines, "")
		lines = append(lines, styleSet.Text.Render("Get started:"))
		for _, s := range e.Suggestions {
			cmdLine := fmt.Sprintf("  %s", styleSet.Accent.Render(s.Command))
			if s.Description != "" {
				cmdLine += styleSet.Muted.Render(fmt.Sprintf("  # %s", s.Description))
			}
			lines = append(lines, cmdLine)
		}
	}

	return strings.Join(lines, "\n")
}

// RenderCompact renders a compact single-line empty state.
func (e EmptyState) RenderCompact(styleSet styles.Styles) string {
	line := e.Title
	if e.Icon != "" {
		line = e.Icon + " " + line
	}
	if len(e.Suggestions) > 0 {
		line += fmt.Sprintf(" Try: %s", e.Suggestions[0].Command)
	}
	return styleSet.Muted.Render(line)
}

// Common empty states for reuse across views.

// EmptyTemplates returns an empty state for when no templates are stored.
func EmptyTemplates() EmptyState {
	return EmptyState{
		Icon:     "📄",
		Title:    "No templates yet",
		Subtitle: "Templates are messages with {field} placeholders.",
		Suggestions: []Suggestion{
			{Command: "n", Description: "write a new template"},
			{Command: "wablast templates add", Description: "add one from the command line"},
		},
	}
}

// EmptyRecipients returns an empty state for when no spreadsheet is loaded.
func EmptyRecipients() EmptyState {
	return EmptyState{
		Icon:     "📭",
		Title:    "No recipients loaded",
		Subtitle: "Load a spreadsheet with a numero column and one row per recipient.",
		Suggestions: []Suggestion{
			{Command: "l", Description: "load a .xlsx or .csv file"},
			{Command: "wablast sample", Description: "write an example spreadsheet"},
		},
	}
}

// EmptyPreview returns an empty state for when nothing can be previewed yet.
func EmptyPreview() EmptyState {
	return EmptyState{
		Icon:     "🔍",
		Title:    "Nothing to preview",
		Subtitle: "Select a template and load recipients first.",
	}
}
