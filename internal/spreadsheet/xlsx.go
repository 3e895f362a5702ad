package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads a recipient table from the first sheet of an xlsx workbook.
// Cells are read as displayed text, so numbers stored as text (such as phone
// numbers with leading zeros) keep their original form.
func LoadXLSX(path string) (*Table, error) {
	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return buildTable(path, rows)
}
