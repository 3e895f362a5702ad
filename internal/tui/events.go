package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wablast/wablast/internal/campaign"
	"github.com/wablast/wablast/internal/whatsapp"
)

// Transport can check the login state and send messages.
type Transport interface {
	whatsapp.Sender
	whatsapp.Checker
}

type tickMsg time.Time

// refreshedMsg reports the result of reloading the template list.
type refreshedMsg struct {
	err error
}

// tableLoadedMsg reports the result of loading a spreadsheet.
type tableLoadedMsg struct {
	path string
	err  error
}

// templateSavedMsg reports the result of a template create/update/delete.
type templateSavedMsg struct {
	err error
}

// previewMsg carries the rendered first-row preview.
type previewMsg struct {
	rendered string
	err      error
}

// sendDoneMsg reports the outcome of a batch send.
type sendDoneMsg struct {
	result *campaign.Result
	err    error
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func refreshCmd(ctx context.Context, session *campaign.Session) tea.Cmd {
	return func() tea.Msg {
		return refreshedMsg{err: session.Refresh(ctx)}
	}
}

func loadTableCmd(session *campaign.Session, path string) tea.Cmd {
	return func() tea.Msg {
		return tableLoadedMsg{path: path, err: session.LoadTable(path)}
	}
}

func saveTemplateCmd(ctx context.Context, session *campaign.Session, name, content string) tea.Cmd {
	return func() tea.Msg {
		return templateSavedMsg{err: session.SaveTemplate(ctx, name, content)}
	}
}

func updateTemplateCmd(ctx context.Context, session *campaign.Session, name, content string) tea.Cmd {
	return func() tea.Msg {
		return templateSavedMsg{err: session.UpdateSelected(ctx, name, content)}
	}
}

func deleteTemplateCmd(ctx context.Context, session *campaign.Session) tea.Cmd {
	return func() tea.Msg {
		return templateSavedMsg{err: session.DeleteSelected(ctx)}
	}
}

func previewCmd(session *campaign.Session) tea.Cmd {
	return func() tea.Msg {
		rendered, err := session.Preview()
		return previewMsg{rendered: rendered, err: err}
	}
}

func sendCmd(ctx context.Context, opts Options, session *campaign.Session) tea.Cmd {
	return func() tea.Msg {
		if session.Selected == nil {
			return sendDoneMsg{err: campaign.ErrNoTemplateSelected}
		}

		transport, closeTransport, err := opts.NewTransport(ctx)
		if err != nil {
			return sendDoneMsg{err: err}
		}
		defer closeTransport()

		runnerOpts := []campaign.RunnerOption{}
		if opts.Ledger != nil {
			runnerOpts = append(runnerOpts, campaign.WithLedger(opts.Ledger))
		}
		runner := campaign.NewRunner(transport, transport, runnerOpts...)

		result, err := runner.Run(ctx, session.Table, session.Selected.Content)
		return sendDoneMsg{result: result, err: err}
	}
}
