package core

import (
	"testing"
)

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "file with BOM",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte("work_year;salary")...),
			expected: "work_year;salary",
		},
		{
			name:     "file without BOM",
			input:    []byte("work_year;salary"),
			expected: "work_year;salary",
		},
		{
			name:     "empty file",
			input:    []byte{},
			expected: "",
		},
		{
			name:     "only BOM",
			input:    []byte{0xEF, 0xBB, 0xBF},
			expected: "",
		},
		{
			name:     "partial BOM is repaired, not stripped",
			input:    []byte{0xEF, 0xBB, 'a'},
			expected: "��a",
		},
		{
			name:     "valid multibyte kept",
			input:    []byte("Zürich;São Paulo"),
			expected: "Zürich;São Paulo",
		},
		{
			name:     "invalid single byte replaced",
			input:    []byte{'h', 'e', 0x80, 'l', 'o'},
			expected: "he�lo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(sanitizeInput(tt.input))
			if got != tt.expected {
				t.Errorf("sanitizeInput() = %q, want %q", got, tt.expected)
			}
		})
	}
}
