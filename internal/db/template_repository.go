package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/wablast/wablast/internal/models"
)

// Template repository errors.
var (
	ErrTemplateNotFound   = errors.New("template not found")
	ErrTemplateNameExists = errors.New("template name already exists")
	ErrInvalidTemplate    = errors.New("invalid template")
)

// TemplateRepository handles message template persistence.
type TemplateRepository struct {
	db *DB
}

// NewTemplateRepository creates a new TemplateRepository.
func NewTemplateRepository(db *DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// Create inserts a new template. Returns ErrTemplateNameExists when another
// template already uses the name.
func (r *TemplateRepository) Create(ctx context.Context, tmpl *models.Template) error {
	if !tmpl.Validate() {
		return ErrInvalidTemplate
	}

	now := time.Now().UTC()
	if tmpl.CreatedAt.IsZero() {
		tmpl.CreatedAt = now
	}
	tmpl.UpdatedAt = now

	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM templates WHERE name = ?`, tmpl.Name).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check template name: %w", err)
	}
	if exists > 0 {
		return ErrTemplateNameExists
	}

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO templates (name, content, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`,
		tmpl.Name,
		tmpl.Content,
		tmpl.CreatedAt.Format(time.RFC3339),
		tmpl.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert template: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get template id: %w", err)
	}
	tmpl.ID = id

	return nil
}

// Get retrieves a template by ID.
func (r *TemplateRepository) Get(ctx context.Context, id int64) (*models.Template, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, content, created_at, updated_at
		FROM templates WHERE id = ?
	`, id)
	return scanTemplate(row)
}

// GetByName retrieves a template by name.
func (r *TemplateRepository) GetByName(ctx context.Context, name string) (*models.Template, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, content, created_at, updated_at
		FROM templates WHERE name = ?
	`, name)
	return scanTemplate(row)
}

// List retrieves all templates ordered by name.
func (r *TemplateRepository) List(ctx context.Context) ([]*models.Template, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, content, created_at, updated_at
		FROM templates ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var templates []*models.Template
	for rows.Next() {
		var tmpl models.Template
		var createdAt, updatedAt string
		if err := rows.Scan(&tmpl.ID, &tmpl.Name, &tmpl.Content, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		tmpl.CreatedAt, tmpl.UpdatedAt = parseTimes(createdAt, updatedAt)
		templates = append(templates, &tmpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating templates: %w", err)
	}

	return templates, nil
}

// Update modifies an existing template by ID. The name stays unique across
// the other templates.
func (r *TemplateRepository) Update(ctx context.Context, tmpl *models.Template) error {
	if !tmpl.Validate() {
		return ErrInvalidTemplate
	}

	var exists int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM templates WHERE name = ? AND id != ?`, tmpl.Name, tmpl.ID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check template name: %w", err)
	}
	if exists > 0 {
		return ErrTemplateNameExists
	}

	tmpl.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, `
		UPDATE templates SET name = ?, content = ?, updated_at = ? WHERE id = ?
	`,
		tmpl.Name,
		tmpl.Content,
		tmpl.UpdatedAt.Format(time.RFC3339),
		tmpl.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

// Delete removes a template by ID.
func (r *TemplateRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func scanTemplate(row *sql.Row) (*models.Template, error) {
	var tmpl models.Template
	var createdAt, updatedAt string

	err := row.Scan(&tmpl.ID, &tmpl.Name, &tmpl.Content, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to scan template: %w", err)
	}

	tmpl.CreatedAt, tmpl.UpdatedAt = parseTimes(createdAt, updatedAt)
	return &tmpl, nil
}

func parseTimes(createdAt, updatedAt string) (time.Time, time.Time) {
	created, _ := time.Parse(time.RFC3339, createdAt)
	updated, _ := time.Parse(time.RFC3339, updatedAt)
	return created, updated
}
