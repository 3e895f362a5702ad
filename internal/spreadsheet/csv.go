package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"os"
)

// LoadCSV reads a recipient table from a csv file. The first row is the
// header. All cells are read as text.
func LoadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv file: %w", err)
	}

	return buildTable(path, rows)
}
