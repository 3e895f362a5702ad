package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wablast/wablast/internal/campaign"
	"github.com/wablast/wablast/internal/db"
)

func testModel(t *testing.T) model {
	t.Helper()

	database, err := db.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := database.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	session := campaign.NewSession(db.NewTemplateRepository(database))
	return initialModel(context.Background(), Options{Session: session})
}

func TestViewSwitching(t *testing.T) {
	m := testModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	m = next.(model)
	if m.view != viewRecipients {
		t.Fatalf("view = %d, want viewRecipients", m.view)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(model)
	if m.view != viewSend {
		t.Fatalf("view = %d, want viewSend", m.view)
	}
}

func TestSmallViewWarning(t *testing.T) {
	m := testModel(t)
	m.width = 40
	m.height = 10

	out := m.View()
	if !strings.Contains(out, "Terminal too small") {
		t.Errorf("expected small-terminal warning, got: %s", out)
	}
}

func TestDuplicateTemplateNameShowsFriendlyError(t *testing.T) {
	m := testModel(t)

	next, _ := m.Update(templateSavedMsg{err: db.ErrTemplateNameExists})
	m = next.(model)
	if !strings.Contains(m.errMsg, "already in use") {
		t.Errorf("errMsg = %q, want duplicate-name hint", m.errMsg)
	}
}

func TestSendRequiresSelectionAndRecipients(t *testing.T) {
	m := testModel(t)
	m.view = viewSend

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)
	if cmd != nil {
		t.Fatalf("expected no send command without a selected template")
	}
	if !strings.Contains(m.errMsg, "template") {
		t.Errorf("errMsg = %q, want template hint", m.errMsg)
	}
}

func TestNewTemplateInputFlow(t *testing.T) {
	m := testModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	m = next.(model)
	if m.input != inputNewName {
		t.Fatalf("input = %d, want inputNewName", m.input)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("welcome")})
	m = next.(model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)
	if m.input != inputNewContent {
		t.Fatalf("input = %d, want inputNewContent after name", m.input)
	}
	if m.pendingName != "welcome" {
		t.Fatalf("pendingName = %q, want welcome", m.pendingName)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Hi {nombre}")})
	m = next.(model)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)
	if m.input != inputNone {
		t.Fatalf("input = %d, want inputNone after submit", m.input)
	}
	if cmd == nil {
		t.Fatal("expected a save command after content submit")
	}

	if msg, ok := cmd().(templateSavedMsg); !ok {
		t.Fatalf("expected templateSavedMsg, got %T", cmd())
	} else if msg.err != nil {
		t.Fatalf("save error = %v", msg.err)
	}
}
