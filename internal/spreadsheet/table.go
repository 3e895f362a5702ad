// Package spreadsheet loads recipient tables from xlsx and csv files.
package spreadsheet

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/wablast/wablast/internal/message"
)

// PhoneColumn is the required column holding the recipient phone number.
// Values are kept as text to preserve leading zeros and formatting.
const PhoneColumn = "numero"

// Load errors.
var (
	ErrEmptyFile          = errors.New("spreadsheet file is empty")
	ErrMissingPhoneColumn = errors.New("spreadsheet is missing the numero column")
	ErrUnsupportedFormat  = errors.New("unsupported spreadsheet format")
)

// Table holds the recipient rows loaded from a spreadsheet.
// The first file row is the header; every following row becomes one record.
type Table struct {
	// Path is the file the table was loaded from.
	Path string

	// Headers are the column names in file order.
	Headers []string

	records []message.Record
}

// New builds a table from already-parsed records. Used by tests and by
// callers that assemble rows programmatically.
func New(headers []string, records []message.Record) *Table {
	return &Table{Headers: headers, records: records}
}

// Len returns the number of recipient rows. Safe on a nil table, so a nil
// *Table passed through the message.Table interface reads as empty instead
// of panicking.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// Row returns the record at the given index.
func (t *Table) Row(i int) message.Record {
	return t.records[i]
}

// Records returns all recipient rows in table order.
func (t *Table) Records() []message.Record {
	return t.records
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	for _, header := range t.Headers {
		if header == name {
			return true
		}
	}
	return false
}

// Load reads a recipient table from the given file, choosing the parser by
// extension (.xlsx or .csv).
func Load(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return LoadXLSX(path)
	case ".csv":
		return LoadCSV(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// buildTable converts raw rows (header first) into a Table.
func buildTable(path string, rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.TrimSpace(header)
	}

	table := &Table{Path: path, Headers: headers}
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		record := make(message.Record, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			value := ""
			if i < len(row) {
				value = strings.TrimSpace(row[i])
			}
			record[header] = value
		}
		table.records = append(table.records, record)
	}

	if !table.HasColumn(PhoneColumn) {
		return nil, ErrMissingPhoneColumn
	}
	return table, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
