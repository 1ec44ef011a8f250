// Package parse holds the text-level parsers used at the spreadsheet
// boundary: cell normalization, sales priority labels, and free-text
// contact extraction.
package parse

import "strings"

// Clean normalizes a raw cell value. It returns the trimmed text and
// true, or "" and false when the cell is blank or one of the placeholder
// tokens spreadsheet exports leave behind ("nan", "none", "null").
func Clean(raw string) (string, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", false
	}
	switch strings.ToLower(text) {
	case "nan", "none", "null":
		return "", false
	}
	return text, true
}

// CleanPtr is Clean with a *string result for optional model fields.
func CleanPtr(raw string) *string {
	text, ok := Clean(raw)
	if !ok {
		return nil
	}
	return &text
}
