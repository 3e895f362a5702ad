// Package tui implements the wablast terminal user interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wablast/wablast/internal/campaign"
	"github.com/wablast/wablast/internal/db"
	"github.com/wablast/wablast/internal/message"
	"github.com/wablast/wablast/internal/models"
	"github.com/wablast/wablast/internal/spreadsheet"
	"github.com/wablast/wablast/internal/tui/components"
	"github.com/wablast/wablast/internal/tui/styles"
	"github.com/wablast/wablast/internal/whatsapp"
)

// Options wires the TUI to the rest of the application.
type Options struct {
	// Session holds templates and the loaded recipient table.
	Session *campaign.Session

	// Ledger records batch events, optional.
	Ledger *db.EventRepository

	// NewTransport builds the sender used for a batch. The returned func
	// releases it.
	NewTransport func(ctx context.Context) (Transport, func(), error)

	// InitialFile is a spreadsheet to load on startup, optional.
	InitialFile string
}

// Run launches the wablast TUI program.
func Run(ctx context.Context, opts Options) error {
	program := tea.NewProgram(initialModel(ctx, opts), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

const (
	minWidth          = 60
	minHeight         = 15
	elapsedResolution = time.Second
)

type viewID int

const (
	viewTemplates viewID = iota
	viewRecipients
	viewSend
)

func nextView(current viewID) viewID {
	switch current {
	case viewTemplates:
		return viewRecipients
	case viewRecipients:
		return viewSend
	default:
		return viewTemplates
	}
}

type inputKind int

const (
	inputNone inputKind = iota
	inputNewName
	inputNewContent
	inputEditName
	inputEditContent
	inputPath
)

type model struct {
	ctx  context.Context
	opts Options

	width  int
	height int
	styles styles.Styles

	view   viewID
	cursor int

	input       inputKind
	inputBuffer string
	pendingName string

	preview   string
	status    components.BatchState
	statusMsg string
	errMsg    string

	sendStart time.Time
	now       time.Time
}

func initialModel(ctx context.Context, opts Options) model {
	return model{
		ctx:    ctx,
		opts:   opts,
		styles: styles.DefaultStyles(),
		view:   viewTemplates,
		status: components.BatchStateIdle,
		now:    time.Now(),
	}
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(), refreshCmd(m.ctx, m.opts.Session)}
	if m.opts.InitialFile != "" {
		cmds = append(cmds, loadTableCmd(m.opts.Session, m.opts.InitialFile))
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.input != inputNone {
			return m.updateInput(msg)
		}
		return m.updateNormal(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		m.now = time.Time(msg)
		return m, tickCmd()

	case refreshedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		}
		m.clampCursor()

	case tableLoadedMsg:
		if msg.err != nil {
			m.errMsg = loadErrorLine(msg.err)
		} else {
			m.errMsg = ""
			m.statusMsg = fmt.Sprintf("Loaded %d recipients from %s", m.opts.Session.Table.Len(), msg.path)
		}

	case templateSavedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, db.ErrTemplateNameExists) {
				m.errMsg = "That template name is already in use, choose another."
			} else {
				m.errMsg = msg.err.Error()
			}
			return m, nil
		}
		m.errMsg = ""
		return m, refreshCmd(m.ctx, m.opts.Session)

	case previewMsg:
		if msg.err != nil {
			m.preview = ""
			m.errMsg = previewErrorLine(msg.err)
		} else {
			m.errMsg = ""
			m.preview = msg.rendered
		}

	case sendDoneMsg:
		return m.finishSend(msg), nil
	}

	return m, nil
}

func (m model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.preview != "" || m.errMsg != "" {
			m.preview = ""
			m.errMsg = ""
			return m, nil
		}
		return m, tea.Quit
	case "1":
		m.view = viewTemplates
	case "2":
		m.view = viewRecipients
	case "3":
		m.view = viewSend
	case "tab":
		m.view = nextView(m.view)
	}

	switch m.view {
	case viewTemplates:
		return m.updateTemplatesView(msg)
	case viewRecipients:
		if msg.String() == "l" {
			return m.startInput(inputPath, ""), nil
		}
	case viewSend:
		if msg.String() == "enter" || msg.String() == "s" {
			return m.startSend()
		}
	}
	return m, nil
}

func (m model) updateTemplatesView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	session := m.opts.Session

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(session.Templates)-1 {
			m.cursor++
		}
	case "enter":
		if tmpl := m.cursorTemplate(); tmpl != nil {
			if err := session.Select(tmpl.Name); err != nil {
				m.errMsg = err.Error()
			} else {
				m.errMsg = ""
				m.statusMsg = fmt.Sprintf("Template %q selected", tmpl.Name)
			}
		}
	case "n":
		return m.startInput(inputNewName, ""), nil
	case "e":
		if session.Selected != nil {
			return m.startInput(inputEditName, session.Selected.Name), nil
		}
		m.errMsg = "Select a template to edit first."
	case "d":
		if session.Selected != nil {
			return m, deleteTemplateCmd(m.ctx, session)
		}
		m.errMsg = "Select a template to delete first."
	case "p":
		if session.Selected != nil {
			return m, previewCmd(session)
		}
		m.errMsg = "Select a template to preview first."
	}
	return m, nil
}

func (m model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input = inputNone
		m.inputBuffer = ""
		m.pendingName = ""
		return m, nil
	case "enter":
		return m.submitInput()
	case "backspace":
		if len(m.inputBuffer) > 0 {
			runes := []rune(m.inputBuffer)
			m.inputBuffer = string(runes[:len(runes)-1])
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyRunes:
		m.inputBuffer += string(msg.Runes)
	case tea.KeySpace:
		m.inputBuffer += " "
	}
	return m, nil
}

func (m model) submitInput() (tea.Model, tea.Cmd) {
	session := m.opts.Session
	value := m.inputBuffer

	switch m.input {
	case inputNewName:
		m.pendingName = value
		return m.startInput(inputNewContent, ""), nil
	case inputNewContent:
		name := m.pendingName
		m.input = inputNone
		m.inputBuffer = ""
		m.pendingName = ""
		return m, saveTemplateCmd(m.ctx, session, name, value)
	case inputEditName:
		m.pendingName = value
		content := ""
		if session.Selected != nil {
			content = session.Selected.Content
		}
		return m.startInput(inputEditContent, content), nil
	case inputEditContent:
		name := m.pendingName
		m.input = inputNone
		m.inputBuffer = ""
		m.pendingName = ""
		return m, updateTemplateCmd(m.ctx, session, name, value)
	case inputPath:
		m.input = inputNone
		m.inputBuffer = ""
		return m, loadTableCmd(session, value)
	}

	m.input = inputNone
	return m, nil
}

func (m model) startInput(kind inputKind, initial string) model {
	m.input = kind
	m.inputBuffer = initial
	return m
}

func (m model) startSend() (tea.Model, tea.Cmd) {
	if m.status == components.BatchStateSending {
		return m, nil
	}
	session := m.opts.Session
	if session.Selected == nil {
		m.errMsg = "Select a template before sending."
		return m, nil
	}
	if session.Table == nil || session.Table.Len() == 0 {
		m.errMsg = "Load a recipient spreadsheet before sending."
		return m, nil
	}

	m.status = components.BatchStateSending
	m.statusMsg = ""
	m.errMsg = ""
	m.sendStart = m.now
	return m, sendCmd(m.ctx, m.opts, session)
}

func (m model) finishSend(msg sendDoneMsg) model {
	if msg.err == nil {
		m.status = components.BatchStateDone
		m.statusMsg = fmt.Sprintf("Messages sent successfully. [%d]", msg.result.Sent)
		return m
	}

	m.status = components.BatchStateFailed
	if errors.Is(msg.err, whatsapp.ErrNotLoggedIn) {
		m.status = components.BatchStateLoginWait
		m.errMsg = "Not logged in. Open WhatsApp Web, scan the QR code, then retry."
		return m
	}

	var sendErr *campaign.SendError
	if errors.As(msg.err, &sendErr) {
		m.errMsg = fmt.Sprintf("Error with message to %s; %d of %d sent.",
			sendErr.Phone, msg.result.Sent, msg.result.Total)
		return m
	}

	m.errMsg = previewErrorLine(msg.err)
	return m
}

func (m *model) clampCursor() {
	count := len(m.opts.Session.Templates)
	if count == 0 {
		m.cursor = 0
	} else if m.cursor >= count {
		m.cursor = count - 1
	}
}

func (m model) cursorTemplate() *models.Template {
	templates := m.opts.Session.Templates
	if m.cursor < 0 || m.cursor >= len(templates) {
		return nil
	}
	return templates[m.cursor]
}

func loadErrorLine(err error) string {
	switch {
	case errors.Is(err, spreadsheet.ErrMissingPhoneColumn):
		return fmt.Sprintf("The spreadsheet needs a %q column with one phone per row.", spreadsheet.PhoneColumn)
	case errors.Is(err, spreadsheet.ErrEmptyFile):
		return "The spreadsheet has no data rows."
	case errors.Is(err, spreadsheet.ErrUnsupportedFormat):
		return "Unsupported file type, use .xlsx or .csv."
	default:
		return err.Error()
	}
}

func previewErrorLine(err error) string {
	var fieldErr *message.FieldNotFoundError
	switch {
	case errors.Is(err, message.ErrEmptyTemplate):
		return "The template is empty, write a message first."
	case errors.Is(err, message.ErrEmptyTable):
		return "No recipients loaded, upload a spreadsheet first."
	case errors.As(err, &fieldErr):
		return fmt.Sprintf("Unknown placeholder field %q: add the column or fix the template.", fieldErr.Field)
	default:
		return err.Error()
	}
}
