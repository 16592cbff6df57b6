package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var digitsRegex = regexp.MustCompile(`\d+`)

// NormalizeString trims whitespace and collapses empty values to "".
func NormalizeString(s string) string {
	return strings.TrimSpace(s)
}

// ParseRUValue extracts an integer rack-unit value from free-form input,
// accepting formats like "22", "RU 22", "RU22", "U22" and "22U".
// Returns nil when no digits are present.
func ParseRUValue(value string) *int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	match := digitsRegex.FindString(value)
	if match == "" {
		return nil
	}

	n, err := strconv.Atoi(match)
	if err != nil {
		return nil
	}
	return &n
}

// IntPtr returns a pointer to the given int. Useful for building rows.
func IntPtr(n int) *int {
	return &n
}

// FormatIntPtr renders an optional int, with empty string for absence.
func FormatIntPtr(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

// Contains checks if a string slice contains a specific string
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
