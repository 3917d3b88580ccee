// Package sanitize strips markup-injection fragments from user-supplied
// text before it is used as a lookup key, comparison operand, or stored
// value.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	angleBrackets = regexp.MustCompile(`[<>]`)
	scriptScheme  = regexp.MustCompile(`(?i)javascript:`)
	eventHandler  = regexp.MustCompile(`(?i)on\w+=`)
)

// Clean removes angle brackets, javascript: scheme prefixes, and inline
// event-handler fragments (on<word>=), then trims surrounding whitespace.
// Clean is total: it never fails and always returns a usable string.
func Clean(s string) string {
	s = angleBrackets.ReplaceAllString(s, "")
	s = scriptScheme.ReplaceAllString(s, "")
	s = eventHandler.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Identifier normalizes a login identifier: Clean followed by lowercasing.
// Identifiers are case-insensitive, so every lookup and rate-limit key goes
// through this form.
func Identifier(s string) string {
	return strings.ToLower(Clean(s))
}
