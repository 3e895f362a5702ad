// Package message implements placeholder extraction and template formatting
// for recipient messages.
package message

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Formatting errors.
var (
	// ErrEmptyTemplate indicates the template string is empty or absent.
	ErrEmptyTemplate = errors.New("template is empty")

	// ErrEmptyTable indicates no recipient data was loaded.
	ErrEmptyTable = errors.New("no recipient data loaded")
)

// FieldNotFoundError indicates a placeholder references a field that does
// not exist in the recipient record.
type FieldNotFoundError struct {
	Field string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("unknown placeholder field: %s", e.Field)
}

// Record is a single recipient row, mapping field names to values.
type Record map[string]string

// Table is the minimal tabular source needed for preview formatting.
type Table interface {
	// Len returns the number of recipient rows.
	Len() int

	// Row returns the record at the given index.
	Row(i int) Record
}

var placeholderPattern = regexp.MustCompile(`\{([^}]+)\}`)

// Placeholders returns the placeholder names found in the template, left to
// right, duplicates preserved. Names are trimmed of surrounding whitespace.
// A `}` always closes the nearest preceding `{`; there is no escaping.
func Placeholders(template string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(template, -1)
	names := make([]string, 0, len(matches))
	for _, match := range matches {
		names = append(names, strings.TrimSpace(match[1]))
	}
	return names
}

// Format substitutes every placeholder token in the template with the value
// of the matching field in rec.
//
// Substitution runs over the evolving result string: if a resolved value
// itself contains a token that is still pending, the later pass replaces it
// too. Callers that need literal braces in values must avoid token-shaped
// text; this matches the historical behavior of the tool.
func Format(template string, rec Record) (string, error) {
	if template == "" {
		return "", ErrEmptyTemplate
	}

	result := template
	for _, name := range Placeholders(template) {
		value, ok := rec[name]
		if !ok {
			return "", &FieldNotFoundError{Field: name}
		}
		result = strings.ReplaceAll(result, "{"+name+"}", value)
	}
	return result, nil
}

// FormatPreview formats the template against the first row of the table.
// This is the preview-mode contract: only one representative row is shown,
// so row 0 is used regardless of table size.
func FormatPreview(template string, table Table) (string, error) {
	if table == nil || table.Len() == 0 {
		return "", ErrEmptyTable
	}
	return Format(template, table.Row(0))
}
