package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/wablast/wablast/internal/tui/styles"
)

// BatchState describes where the current batch is in its lifecycle.
type BatchState string

const (
	BatchStateIdle       BatchState = "idle"
	BatchStateSending    BatchState = "sending"
	BatchStateDone       BatchState = "done"
	BatchStateFailed     BatchState = "failed"
	BatchStateLoginWait  BatchState = "login"
	BatchStateFormatting BatchState = "formatting"
)

// RenderBatchStateBadge renders a batch state with icon and color.
func RenderBatchStateBadge(styleSet styles.Styles, state BatchState) string {
	icon, label, style := stateDescriptor(styleSet, state)
	return style.Render(fmt.Sprintf("%s %s", icon, label))
}

func stateDescriptor(styleSet styles.Styles, state BatchState) (string, string, lipgloss.Style) {
	switch state {
	case BatchStateSending:
		return ">", "Sending", styleSet.StatusSending
	case BatchStateDone:
		return "OK", "Done", styleSet.StatusDone
	case BatchStateFailed:
		return "ERR", "Failed", styleSet.StatusFailed
	case BatchStateLoginWait:
		return "QR", "Scan QR code", styleSet.Warning
	case BatchStateFormatting:
		return "~", "Formatting", styleSet.Info
	default:
		return "-", "Idle", styleSet.StatusIdle
	}
}
