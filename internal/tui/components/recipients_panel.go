package components

import (
	"fmt"
	"strings"

	"github.com/wablast/wablast/internal/spreadsheet"
	"github.com/wablast/wablast/internal/tui/styles"
)

const maxPreviewRows = 5

// RecipientsPanel summarizes the loaded recipient table.
type RecipientsPanel struct {
	Table *spreadsheet.Table
}

// Render returns the file name, the column list and the first rows.
func (p RecipientsPanel) Render(styleSet styles.Styles) string {
	if p.Table == nil || p.Table.Len() == 0 {
		return EmptyRecipients().Render(styleSet)
	}

	lines := []string{
		styleSet.Text.Render(fmt.Sprintf("File: %s", p.Table.Path)),
		styleSet.Text.Render(fmt.Sprintf("Recipients: %d", p.Table.Len())),
		styleSet.Muted.Render(fmt.Sprintf("Columns: %s", strings.Join(p.Table.Headers, ", "))),
		"",
	}

	shown := p.Table.Len()
	if shown > maxPreviewRows {
		shown = maxPreviewRows
	}
	for i := 0; i < shown; i++ {
		row := p.Table.Row(i)
		lines = append(lines, styleSet.Muted.Render(fmt.Sprintf("  %d. %s", i+1, row[spreadsheet.PhoneColumn])))
	}
	if p.Table.Len() > shown {
		lines = append(lines, styleSet.Muted.Render(fmt.Sprintf("  ... and %d more", p.Table.Len()-shown)))
	}

	return strings.Join(lines, "\n")
}
