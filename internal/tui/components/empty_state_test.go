package components

import (
	"strings"
	"testing"

	"github.com/wablast/wablast/internal/tui/styles"
)

func TestEmptyStateRender(t *testing.T) {
	styleSet := styles.DefaultStyles()

	t.Run("basic empty state", func(t *testing.T) {
		es := EmptyState{
			Title: "No items found",
		}
		result := es.Render(styleSet)
		if !strings.Contains(result, "No items found") {
			t.Errorf("Expected title in output, got: %s", result)
		}
	})

	t.Run("empty state with icon", func(t *testing.T) {
		es := EmptyState{
			Icon:  "📭",
			Title: "Empty inbox",
		}
		result := es.Render(styleSet)
		if !strings.Contains(result, "📭") {
			t.Errorf("Expected icon in output, got: %s", result)
		}
		if !strings.Contains(result, "Empty inbox") {
			t.Errorf("Expected title in output, got: %s", result)
		}
	})

	t.Run("empty state with subtitle", func(t *testing.T) {
		es := EmptyState{
			Title:    "No data",
			Subtitle: "Check back later",
		}
		result := es.Render(styleSet)
		if !strings.Contains(result, "Check back later") {
			t.Errorf("Expected subtitle in output, got: %s", result)
		}
	})

	t.Run("empty state with suggestions", func(t *testing.T) {
		es := EmptyState{
			Title: "No templates",
			Suggestions: []Suggestion{
				{Command: "wablast templates add", Description: "add one"},
			},
		}
		result := es.Render(styleSet)
		if !strings.Contains(result, "Get started") {
			t.Errorf("Expected 'Get started' header, got: %s", result)
		}
		if !strings.Contains(result, "wablast templates add") {
			t.Errorf("Expected command in output, got: %s", result)
		}
	})
}

func TestEmptyStateRenderCompact(t *testing.T) {
	styleSet := styles.DefaultStyles()

	es := EmptyState{
		Title: "Empty",
		Suggestions: []Suggestion{
			{Command: "load file"},
		},
	}
	result := es.RenderCompact(styleSet)
	if !strings.Contains(result, "Try: load file") {
		t.Errorf("Expected suggestion hint in compact output, got: %s", result)
	}
}

func TestPrebuiltEmptyStates(t *testing.T) {
	styleSet := styles.DefaultStyles()

	tests := []struct {
		name     string
		es       EmptyState
		expected []string
	}{
		{
			name:     "EmptyTemplates",
			es:       EmptyTemplates(),
			expected: []string{"No templates", "wablast templates add"},
		},
		{
			name:     "EmptyRecipients",
			es:       EmptyRecipients(),
			expected: []string{"No recipients", "wablast sample"},
		},
		{
			name:     "EmptyPreview",
			es:       EmptyPreview(),
			expected: []string{"Nothing to preview"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.es.Render(styleSet)
			for _, exp := range tt.expected {
				if !strings.Contains(result, exp) {
					t.Errorf("Expected %q in %s output, got: %s", exp, tt.name, result)
				}
			}
		})
	}
}
