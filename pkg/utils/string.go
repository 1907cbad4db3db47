// Package utils provides common utility functions.
package utils

import "strings"

// StringHelper provides string utility functions.
type StringHelper struct{}

// NewStringHelper creates a new string helper.
func NewStringHelper() *StringHelper {
	return &StringHelper{}
}

// CleanCell trims a raw CSV cell and strips a leading byte order mark.
func (s *StringHelper) CleanCell(str string) string {
	return strings.TrimSpace(strings.TrimPrefix(str, "\ufeff"))
}

// TruncateString truncates string to max length in runes.
func (s *StringHelper) TruncateString(str string, maxLength int) string {
	runes := []rune(str)
	if len(runes) <= maxLength {
		return str
	}

	return string(runes[:maxLength]) + "..."
}
