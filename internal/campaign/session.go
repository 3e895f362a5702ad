// Package campaign coordinates recipient tables, templates and the batch
// send loop.
package campaign

import (
	"context"
	"errors"
	"fmt"

	"github.com/wablast/wablast/internal/db"
	"github.com/wablast/wablast/internal/message"
	"github.com/wablast/wablast/internal/models"
	"github.com/wablast/wablast/internal/spreadsheet"
)

// ErrNoTemplateSelected indicates an operation that needs a template ran
// before one was chosen.
var ErrNoTemplateSelected = errors.New("no template selected")

// Session holds the state of one editing session: the loaded recipient
// table, the known templates and the current selection. It is owned by the
// UI program and passed explicitly to handlers; its lifetime matches the
// application window.
type Session struct {
	templates *db.TemplateRepository

	// Table is the currently loaded recipient table, nil until a
	// spreadsheet is uploaded.
	Table *spreadsheet.Table

	// Templates is the cached template list, refreshed after every CRUD
	// operation.
	Templates []*models.Template

	// Selected is the template currently being edited/previewed/sent.
	Selected *models.Template
}

// NewSession creates a session backed by the given template store.
func NewSession(templates *db.TemplateRepository) *Session {
	return &Session{templates: templates}
}

// LoadTable loads a recipient spreadsheet into the session.
func (s *Session) LoadTable(path string) error {
	table, err := spreadsheet.Load(path)
	if err != nil {
		return err
	}
	s.Table = table
	return nil
}

// Refresh reloads the template list from the store. The current selection
// is kept when its name still exists, cleared otherwise.
func (s *Session) Refresh(ctx context.Context) error {
	templates, err := s.templates.List(ctx)
	if err != nil {
		return err
	}
	s.Templates = templates

	if s.Selected != nil {
		s.Selected = s.findByName(s.Selected.Name)
	}
	return nil
}

// Select makes the named template current.
func (s *Session) Select(name string) error {
	tmpl := s.findByName(name)
	if tmpl == nil {
		return fmt.Errorf("template %q not found", name)
	}
	s.Selected = tmpl
	return nil
}

// SaveTemplate stores a new template and selects it. Returns
// db.ErrTemplateNameExists when the name is taken.
func (s *Session) SaveTemplate(ctx context.Context, name, content string) error {
	tmpl := &models.Template{Name: name, Content: content}
	if err := s.templates.Create(ctx, tmpl); err != nil {
		return err
	}
	if err := s.Refresh(ctx); err != nil {
		return err
	}
	s.Selected = s.findByName(name)
	return nil
}

// UpdateSelected updates the current template's name and content.
func (s *Session) UpdateSelected(ctx context.Context, name, content string) error {
	if s.Selected == nil {
		return ErrNoTemplateSelected
	}

	updated := &models.Template{ID: s.Selected.ID, Name: name, Content: content}
	if err := s.templates.Update(ctx, updated); err != nil {
		return err
	}
	if err := s.Refresh(ctx); err != nil {
		return err
	}
	s.Selected = s.findByName(name)
	return nil
}

// DeleteSelected removes the current template and clears the selection.
func (s *Session) DeleteSelected(ctx context.Context) error {
	if s.Selected == nil {
		return ErrNoTemplateSelected
	}

	if err := s.templates.Delete(ctx, s.Selected.ID); err != nil {
		return err
	}
	s.Selected = nil
	return s.Refresh(ctx)
}

// Preview formats the selected template against the first table row.
func (s *Session) Preview() (string, error) {
	if s.Selected == nil {
		return "", ErrNoTemplateSelected
	}
	// A nil *Table must not reach the interface conversion: the typed nil
	// would pass FormatPreview's nil check and Len would panic.
	if s.Table == nil {
		return "", message.ErrEmptyTable
	}
	return message.FormatPreview(s.Selected.Content, s.Table)
}

func (s *Session) findByName(name string) *models.Template {
	for _, tmpl := range s.Templates {
		if tmpl.Name == name {
			return tmpl
		}
	}
	return nil
}
