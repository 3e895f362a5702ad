package campaign

import (
	"context"
	"errors"
	"testing"

	"github.com/wablast/wablast/internal/db"
	"github.com/wablast/wablast/internal/message"
	"github.com/wablast/wablast/internal/spreadsheet"
)

func setupSession(t *testing.T) *Session {
	t.Helper()
	database, err := db.OpenInMemory()
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := database.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return NewSession(db.NewTemplateRepository(database))
}

func TestSession_SaveAndSelect(t *testing.T) {
	session := setupSession(t)
	ctx := context.Background()

	if err := session.SaveTemplate(ctx, "saludo", "Hola {nombre}"); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}

	if session.Selected == nil || session.Selected.Name != "saludo" {
		t.Fatalf("expected new template selected, got %+v", session.Selected)
	}
	if len(session.Templates) != 1 {
		t.Errorf("expected 1 cached template, got %d", len(session.Templates))
	}
}

func TestSession_DuplicateNameSurfaced(t *testing.T) {
	session := setupSession(t)
	ctx := context.Background()

	if err := session.SaveTemplate(ctx, "saludo", "a"); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}

	err := session.SaveTemplate(ctx, "saludo", "b")
	if !errors.Is(err, db.ErrTemplateNameExists) {
		t.Errorf("expected ErrTemplateNameExists, got %v", err)
	}
}

func TestSession_UpdateSelected(t *testing.T) {
	session := setupSession(t)
	ctx := context.Background()

	if err := session.SaveTemplate(ctx, "saludo", "v1"); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}
	if err := session.UpdateSelected(ctx, "saludo-v2", "v2"); err != nil {
		t.Fatalf("UpdateSelected failed: %v", err)
	}

	if session.Selected == nil || session.Selected.Name != "saludo-v2" {
		t.Fatalf("selection not updated: %+v", session.Selected)
	}
	if session.Selected.Content != "v2" {
		t.Errorf("content = %q, want %q", session.Selected.Content, "v2")
	}
}

func TestSession_DeleteSelectedClearsSelection(t *testing.T) {
	session := setupSession(t)
	ctx := context.Background()

	if err := session.SaveTemplate(ctx, "saludo", "x"); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}
	if err := session.DeleteSelected(ctx); err != nil {
		t.Fatalf("DeleteSelected failed: %v", err)
	}

	if session.Selected != nil {
		t.Errorf("expected cleared selection, got %+v", session.Selected)
	}
	if len(session.Templates) != 0 {
		t.Errorf("expected empty template list, got %d", len(session.Templates))
	}
}

func TestSession_PreviewUsesFirstRow(t *testing.T) {
	session := setupSession(t)
	ctx := context.Background()

	if err := session.SaveTemplate(ctx, "saludo", "Hola {nombre}"); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}
	session.Table = spreadsheet.New(
		[]string{"numero", "nombre"},
		[]message.Record{
			{"numero": "111", "nombre": "Ana"},
			{"numero": "222", "nombre": "Luis"},
		},
	)

	preview, err := session.Preview()
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if preview != "Hola Ana" {
		t.Errorf("Preview() = %q, want %q", preview, "Hola Ana")
	}
}

func TestSession_PreviewWithoutData(t *testing.T) {
	session := setupSession(t)
	ctx := context.Background()

	if err := session.SaveTemplate(ctx, "saludo", "Hola {nombre}"); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}

	if _, err := session.Preview(); !errors.Is(err, message.ErrEmptyTable) {
		t.Errorf("expected ErrEmptyTable, got %v", err)
	}
}

func TestSession_PreviewWithoutSelection(t *testing.T) {
	session := setupSession(t)

	if _, err := session.Preview(); !errors.Is(err, ErrNoTemplateSelected) {
		t.Errorf("expected ErrNoTemplateSelected, got %v", err)
	}
}
