package domain

import (
	"strings"
	"unicode"
)

// Query represents a parsed hotel lookup input
type Query struct {
	Raw       string   // Original input, lower-cased and trimmed
	Fragments []string // Space-separated fragments
	// CodeLike is set when the input is a single token that could be a hotel code (e.g. "singi").
	CodeLike bool
}

// ParseQuery parses user input into a structured query
// Examples:
//   - "conrad singapore" -> ["conrad", "singapore"]
//   - "SINGI" -> ["singi"], CodeLike
//   - "hilton   tokyo bay" -> ["hilton", "tokyo", "bay"]
func ParseQuery(input string) *Query {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return &Query{Raw: input}
	}

	q := &Query{
		Raw:       input,
		Fragments: splitAndClean(input, " "),
	}
	q.CodeLike = len(q.Fragments) == 1 && isCodeLike(q.Fragments[0])
	return q
}

// splitAndClean splits a string by separator and returns non-empty parts
func splitAndClean(s, sep string) []string {
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

// NameFragments extracts lower-cased words from a hotel name for matching
// Example: "DoubleTree by Hilton Singapore" -> ["doubletree", "by", "hilton", "singapore"]
func NameFragments(name string) []string {
	return strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// isCodeLike reports whether s looks like a hotel code: 4-7 letters/digits.
func isCodeLike(s string) bool {
	if len(s) < 4 || len(s) > 7 {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// normalizeFragment normalizes a fragment for matching
func normalizeFragment(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
}
