package components

import (
	"fmt"
	"strings"

	"github.com/wablast/wablast/internal/models"
	"github.com/wablast/wablast/internal/tui/styles"
)

const contentPreviewMax = 48

// TemplateList renders the stored templates with a cursor and the current
// selection marked.
type TemplateList struct {
	Templates []*models.Template
	Cursor    int
	Selected  string
}

// Render returns the list, one template per line.
func (l TemplateList) Render(styleSet styles.Styles) string {
	if len(l.Templates) == 0 {
		return EmptyTemplates().Render(styleSet)
	}

	lines := make([]string, 0, len(l.Templates))
	for i, tmpl := range l.Templates {
		marker := " "
		if tmpl.Name == l.Selected {
			marker = "*"
		}

		line := fmt.Sprintf("%s %-20s %s", marker, tmpl.Name, contentPreview(tmpl.Content))
		if i == l.Cursor {
			line = styleSet.Focus.Render("> " + line)
		} else {
			line = styleSet.Text.Render("  " + line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func contentPreview(content string) string {
	flat := strings.Join(strings.Fields(content), " ")
	if len(flat) > contentPreviewMax {
		return flat[:contentPreviewMax-3] + "..."
	}
	return flat
}
