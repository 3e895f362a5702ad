package templates

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "welcome.yaml")

	yaml := `name: welcome
description: First contact message
message: |
  Hola {nombre}, tu codigo es {codigo}
`

	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	file, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if file.Name != "welcome" {
		t.Fatalf("expected name welcome, got %q", file.Name)
	}
	if file.Source != path {
		t.Fatalf("expected source %q, got %q", path, file.Source)
	}
	if file.Message == "" {
		t.Fatal("expected message content")
	}
}

func TestLoadFileRejectsMissingFields(t *testing.T) {
	dir := t.TempDir()

	cases := map[string]string{
		"no-name.yaml":    "message: hola\n",
		"no-message.yaml": "name: incomplete\n",
	}

	for name, content := range cases {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write template: %v", err)
		}
		if _, err := LoadFile(path); err == nil {
			t.Errorf("%s: expected error, got nil", name)
		}
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"b.yaml":     "name: beta\nmessage: dos\n",
		"a.yml":      "name: alpha\nmessage: uno\n",
		"ignore.txt": "not a template",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}

	loaded, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(loaded))
	}
	if loaded[0].Name != "alpha" || loaded[1].Name != "beta" {
		t.Fatalf("expected sorted names, got %q, %q", loaded[0].Name, loaded[1].Name)
	}
}

func TestLoadDirMissing(t *testing.T) {
	loaded, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("expected no templates, got %d", len(loaded))
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")

	original := &File{Name: "export", Message: "Hola {nombre}"}
	if err := WriteFile(path, original); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Name != original.Name {
		t.Fatalf("expected name %q, got %q", original.Name, loaded.Name)
	}
	if loaded.Message != original.Message {
		t.Fatalf("expected message %q, got %q", original.Message, loaded.Message)
	}
}
