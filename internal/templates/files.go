// Package templates reads and writes template files used for import and
// export of stored templates.
package templates

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the on-disk representation of a message template.
type File struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Message     string `yaml:"message"`
	Source      string `yaml:"-"` // file path
}

// LoadFile reads a single template file from disk.
func LoadFile(path string) (*File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("template path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", path, err)
	}

	file, err := parseFile(data)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", path, err)
	}
	file.Source = path
	return file, nil
}

// LoadDir loads all template files from a directory, sorted by name.
// A missing directory yields an empty list.
func LoadDir(dir string) ([]*File, error) {
	if strings.TrimSpace(dir) == "" {
		return []*File{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*File{}, nil
		}
		return nil, fmt.Errorf("read templates dir %s: %w", dir, err)
	}

	files := make([]*File, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		file, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// WriteFile writes a template to disk as YAML.
func WriteFile(path string, file *File) error {
	if file == nil {
		return fmt.Errorf("template is required")
	}
	if strings.TrimSpace(file.Name) == "" {
		return fmt.Errorf("template name is required")
	}

	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode template %q: %w", file.Name, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write template %s: %w", path, err)
	}
	return nil
}

func parseFile(data []byte) (*File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	file.Name = strings.TrimSpace(file.Name)
	if file.Name == "" {
		return nil, fmt.Errorf("template name is required")
	}
	file.Description = strings.TrimSpace(file.Description)

	if strings.TrimSpace(file.Message) == "" {
		return nil, fmt.Errorf("template message is required")
	}

	return &file, nil
}
