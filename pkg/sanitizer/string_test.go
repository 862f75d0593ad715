package sanitizer

import (
	"reflect"
	"testing"
)

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"only spaces", "   ", ""},
		{"leading and trailing spaces", "  parking  ", "parking"},
		{"collapses inner whitespace", "late   checkout", "late checkout"},
		{"tabs and newlines", "pool\t\naccess", "pool access"},
		{"already normalized", "breakfast", "breakfast"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			if got != tt.expected {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeExtraName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "Parking", "parking"},
		{"trims and lowercases", "  Late Checkout ", "late checkout"},
		{"idempotent", "late checkout", "late checkout"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeExtraName(tt.input)
			if got != tt.expected {
				t.Errorf("NormalizeExtraName(%q) = %q, want %q", tt.input, got, tt.expected)
			}

			// Idempotency: normalizing twice must not change the result.
			if NormalizeExtraName(got) != got {
				t.Errorf("NormalizeExtraName is not idempotent for %q", tt.input)
			}
		})
	}
}

func TestNormalizeExtraNames(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "drops empties and duplicates",
			input:    []string{" Parking ", "parking", "", "  ", "Breakfast"},
			expected: []string{"parking", "breakfast"},
		},
		{
			name:     "preserves order",
			input:    []string{"b", "a", "c"},
			expected: []string{"b", "a", "c"},
		},
		{
			name:     "nil input",
			input:    nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeExtraNames(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("NormalizeExtraNames(%v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
