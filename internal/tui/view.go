package tui

import (
	"fmt"
	"strings"

	"github.com/wablast/wablast/internal/tui/components"
)

func (m model) View() string {
	if m.width > 0 && m.height > 0 {
		if m.width < minWidth || m.height < minHeight {
			return fmt.Sprintf("%s\n", joinLines(m.smallViewLines()))
		}
	}

	lines := []string{
		m.styles.Title.Render("wablast"),
		m.styles.Muted.Render(m.navLine()),
		"",
	}

	lines = append(lines, m.viewLines()...)

	if m.input != inputNone {
		lines = append(lines, "", m.inputLine())
	}
	if m.statusMsg != "" {
		lines = append(lines, "", m.styles.Success.Render(m.statusMsg))
	}
	if m.errMsg != "" {
		lines = append(lines, "", m.styles.Error.Render(m.errMsg))
	}

	lines = append(lines, "", m.styles.Muted.Render(m.helpLine()))

	return fmt.Sprintf("%s\n", joinLines(lines))
}

func (m model) smallViewLines() []string {
	message := fmt.Sprintf("Terminal too small (%dx%d).", m.width, m.height)
	hint := fmt.Sprintf("Resize to at least %dx%d.", minWidth, minHeight)

	return []string{
		m.styles.Warning.Render(message),
		m.styles.Muted.Render(hint),
		m.styles.Muted.Render("Press q to quit."),
	}
}

func (m model) navLine() string {
	labels := []string{"1 Templates", "2 Recipients", "3 Send"}
	current := int(m.view)
	for i, label := range labels {
		if i == current {
			labels[i] = m.styles.Focus.Render("[" + label + "]")
		} else {
			labels[i] = " " + label + " "
		}
	}
	return strings.Join(labels, "  ")
}

func (m model) viewLines() []string {
	switch m.view {
	case viewRecipients:
		panel := components.RecipientsPanel{Table: m.opts.Session.Table}
		return strings.Split(panel.Render(m.styles), "\n")
	case viewSend:
		return m.sendViewLines()
	default:
		return m.templatesViewLines()
	}
}

func (m model) templatesViewLines() []string {
	selected := ""
	if m.opts.Session.Selected != nil {
		selected = m.opts.Session.Selected.Name
	}
	list := components.TemplateList{
		Templates: m.opts.Session.Templates,
		Cursor:    m.cursor,
		Selected:  selected,
	}
	lines := strings.Split(list.Render(m.styles), "\n")

	if m.preview != "" {
		lines = append(lines, "", m.styles.Accent.Render("Preview (first recipient):"))
		for _, previewLine := range strings.Split(m.preview, "\n") {
			lines = append(lines, m.styles.Text.Render("  "+previewLine))
		}
	}
	return lines
}

func (m model) sendViewLines() []string {
	session := m.opts.Session

	templateLine := "Template: none selected"
	if session.Selected != nil {
		templateLine = fmt.Sprintf("Template: %s", session.Selected.Name)
	}
	recipientsLine := "Recipients: none loaded"
	if session.Table != nil && session.Table.Len() > 0 {
		recipientsLine = fmt.Sprintf("Recipients: %d (%s)", session.Table.Len(), session.Table.Path)
	}

	lines := []string{
		m.styles.Text.Render(templateLine),
		m.styles.Text.Render(recipientsLine),
		"",
		components.RenderBatchStateBadge(m.styles, m.status),
	}

	if m.status == components.BatchStateSending && !m.sendStart.IsZero() {
		elapsed := m.now.Sub(m.sendStart).Round(elapsedResolution)
		lines = append(lines, m.styles.Muted.Render(fmt.Sprintf("Elapsed: %s", elapsed)))
	}

	return lines
}

func (m model) inputLine() string {
	prompt := map[inputKind]string{
		inputNewName:     "New template name",
		inputNewContent:  "Template content",
		inputEditName:    "Template name",
		inputEditContent: "Template content",
		inputPath:        "Spreadsheet path",
	}[m.input]

	return m.styles.Focus.Render(fmt.Sprintf("%s: %s█", prompt, m.inputBuffer))
}

func (m model) helpLine() string {
	if m.input != inputNone {
		return "enter confirm | esc cancel"
	}
	switch m.view {
	case viewRecipients:
		return "l load file | 1/2/3 views | tab next | q quit"
	case viewSend:
		return "enter send | 1/2/3 views | tab next | q quit"
	default:
		return "enter select | n new | e edit | d delete | p preview | 1/2/3 views | q quit"
	}
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	out := lines[0]
	for _, line := range lines[1:] {
		out += "\n" + line
	}
	return out
}
