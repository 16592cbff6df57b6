package utils

import "testing"

func TestParseRUValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *int
	}{
		{"plain number", "22", IntPtr(22)},
		{"ru prefix with space", "RU 22", IntPtr(22)},
		{"ru prefix", "RU22", IntPtr(22)},
		{"u prefix", "U22", IntPtr(22)},
		{"u suffix", "22U", IntPtr(22)},
		{"lowercase", "u7", IntPtr(7)},
		{"padded", "  14  ", IntPtr(14)},
		{"zero", "0", IntPtr(0)},
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
		{"no digits", "top of rack", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRUValue(tt.input)
			if (got == nil) != (tt.expected == nil) {
				t.Fatalf("ParseRUValue(%q) = %v, expected %v", tt.input, FormatIntPtr(got), FormatIntPtr(tt.expected))
			}
			if got != nil && *got != *tt.expected {
				t.Errorf("ParseRUValue(%q) = %d, expected %d", tt.input, *got, *tt.expected)
			}
		})
	}
}

func TestNormalizeString(t *testing.T) {
	if got := NormalizeString("  Rack-01  "); got != "Rack-01" {
		t.Errorf("NormalizeString() = %q", got)
	}
	if got := NormalizeString("   "); got != "" {
		t.Errorf("NormalizeString(blank) = %q, expected empty", got)
	}
}

func TestFormatIntPtr(t *testing.T) {
	if got := FormatIntPtr(nil); got != "" {
		t.Errorf("FormatIntPtr(nil) = %q, expected empty", got)
	}
	if got := FormatIntPtr(IntPtr(42)); got != "42" {
		t.Errorf("FormatIntPtr(42) = %q", got)
	}
}

func TestContains(t *testing.T) {
	slice := []string{"rack", "ru_position", "ru_height"}
	if !Contains(slice, "rack") {
		t.Error("Contains() missed an existing item")
	}
	if Contains(slice, "face") {
		t.Error("Contains() matched a missing item")
	}
	if Contains(nil, "rack") {
		t.Error("Contains(nil) should be false")
	}
}
