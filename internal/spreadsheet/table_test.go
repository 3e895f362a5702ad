package spreadsheet

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/wablast/wablast/internal/message"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipients.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestLoadCSV_ParsesRows(t *testing.T) {
	path := writeTempCSV(t, "numero,nombre,codigo\n0054911223344,Ana,A-100\n0054911667788,Luis,B-200\n")

	table, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}

	if table.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Len())
	}
	if got := table.Row(0)["numero"]; got != "0054911223344" {
		t.Errorf("numero = %q, want leading zeros preserved", got)
	}
	if got := table.Row(1)["nombre"]; got != "Luis" {
		t.Errorf("nombre = %q, want %q", got, "Luis")
	}
}

func TestLoadCSV_SkipsBlankRows(t *testing.T) {
	path := writeTempCSV(t, "numero,nombre\n111,Ana\n,\n222,Luis\n")

	table, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	if table.Len() != 2 {
		t.Errorf("expected blank row skipped, got %d rows", table.Len())
	}
}

func TestLoadCSV_ShortRowFillsEmpty(t *testing.T) {
	path := writeTempCSV(t, "numero,nombre,codigo\n111,Ana\n")

	table, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	if got := table.Row(0)["codigo"]; got != "" {
		t.Errorf("codigo = %q, want empty for short row", got)
	}
}

func TestLoadCSV_MissingPhoneColumn(t *testing.T) {
	path := writeTempCSV(t, "nombre,codigo\nAna,A-100\n")

	if _, err := LoadCSV(path); !errors.Is(err, ErrMissingPhoneColumn) {
		t.Errorf("LoadCSV error = %v, want ErrMissingPhoneColumn", err)
	}
}

func TestLoadCSV_EmptyFile(t *testing.T) {
	path := writeTempCSV(t, "")

	if _, err := LoadCSV(path); !errors.Is(err, ErrEmptyFile) {
		t.Errorf("LoadCSV error = %v, want ErrEmptyFile", err)
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	if _, err := Load("recipients.ods"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Load error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestWriteSample_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.xlsx")
	if err := WriteSample(path); err != nil {
		t.Fatalf("WriteSample failed: %v", err)
	}

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !table.HasColumn(PhoneColumn) {
		t.Error("sample workbook is missing the numero column")
	}
	if table.Len() != 2 {
		t.Errorf("expected 2 sample rows, got %d", table.Len())
	}
	if got := table.Row(0)["numero"]; got != "+5491122334455" {
		t.Errorf("numero = %q, want %q", got, "+5491122334455")
	}
}

func TestNilTableReadsEmpty(t *testing.T) {
	var table *Table

	if table.Len() != 0 {
		t.Fatalf("nil table Len() = %d, want 0", table.Len())
	}

	// A nil *Table handed to the formatter through the interface must come
	// back as an empty-table error, not a panic.
	if _, err := message.FormatPreview("Hola {nombre}", table); !errors.Is(err, message.ErrEmptyTable) {
		t.Errorf("expected ErrEmptyTable, got %v", err)
	}
}
