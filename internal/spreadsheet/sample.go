package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// sampleRows is the content of the downloadable sample workbook. The numero
// column is written as text so spreadsheet apps do not strip leading digits.
var sampleRows = [][]string{
	{PhoneColumn, "nombre", "codigo"},
	{"+5491122334455", "Ana", "A-100"},
	{"+5491166778899", "Luis", "B-200"},
}

// WriteSample writes the sample recipient workbook to the given path. Users
// download it as a starting point for their own recipient lists.
func WriteSample(path string) error {
	workbook := excelize.NewFile()
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)
	textStyle, err := workbook.NewStyle(&excelize.Style{NumFmt: 49}) // 49 = text format
	if err != nil {
		return fmt.Errorf("failed to create text style: %w", err)
	}
	if err := workbook.SetColStyle(sheet, "A", textStyle); err != nil {
		return fmt.Errorf("failed to set numero column style: %w", err)
	}

	for i, row := range sampleRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := workbook.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write sample row %d: %w", i+1, err)
		}
	}

	if err := workbook.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save sample workbook: %w", err)
	}
	return nil
}
