package textfilter

import (
	"strings"
	"testing"
)

func TestNameFilter_Normalize(t *testing.T) {
	f := NewNameFilter()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain name kept",
			input:    "Arthur",
			expected: "Arthur",
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "   Arthur   ",
			expected: "Arthur",
		},
		{
			name:     "inner whitespace collapsed",
			input:    "Arthur    Dent",
			expected: "Arthur Dent",
		},
		{
			name:     "lowercase is title-cased",
			input:    "arthur",
			expected: "Arthur",
		},
		{
			name:     "uppercase is title-cased",
			input:    "JOÃO",
			expected: "João",
		},
		{
			name:     "mixed case kept as typed",
			input:    "McCoy",
			expected: "McCoy",
		},
		{
			name:     "accents survive casing",
			input:    "helena vitória",
			expected: "Helena Vitória",
		},
		{
			name:     "control characters stripped",
			input:    "Ar\tthur\x00",
			expected: "Arthur",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "      ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNameFilter_Normalize_Truncates(t *testing.T) {
	f := NewNameFilter()

	long := strings.Repeat("Na", 40) // 80 runes
	got := f.Normalize(long)
	if len([]rune(got)) > MaxNameLength {
		t.Errorf("Expected name capped at %d runes, got %d", MaxNameLength, len([]rune(got)))
	}
	if got == "" {
		t.Error("Expected truncated name to keep printable content")
	}
}
