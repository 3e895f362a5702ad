package models

import (
	"strings"
	"time"
)

// Template is a named, stored message text containing placeholder tokens.
type Template struct {
	// ID is the database identifier.
	ID int64 `json:"id"`

	// Name uniquely identifies the template.
	Name string `json:"name"`

	// Content is the message text with `{field}` placeholder tokens.
	Content string `json:"content"`

	// CreatedAt is when the template was first saved.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the template was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate reports whether the template can be persisted.
func (t *Template) Validate() bool {
	return strings.TrimSpace(t.Name) != ""
}
