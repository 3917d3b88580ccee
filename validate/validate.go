// Package validate holds the pure input predicates used by registration and
// credential flows: email shape, CNPJ (Brazilian tax id) digit count, and
// password strength.
//
// All checks run on the raw string as provided. Callers are expected to
// sanitize untrusted input first; validation itself never mutates or stores
// anything.
package validate

import "regexp"

// maxEmailLength is the RFC 5321 path limit.
const maxEmailLength = 254

// Conservative local@domain.tld shape. Anything fancier than this is the
// identity store's problem.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var nonDigits = regexp.MustCompile(`\D`)

// Email reports whether s looks like a deliverable address and fits the
// length limit.
func Email(s string) bool {
	return len(s) <= maxEmailLength && emailPattern.MatchString(s)
}

// CNPJ reports whether s contains exactly 14 digits once punctuation and
// any other non-digit characters are stripped. No check-digit arithmetic is
// performed.
func CNPJ(s string) bool {
	return len(nonDigits.ReplaceAllString(s, "")) == 14
}

// StrengthResult lists every password rule the candidate violated, in rule
// order. Valid is true iff Violations is empty.
type StrengthResult struct {
	Valid      bool
	Violations []string
}

const minPasswordLength = 8

// symbols is the fixed punctuation set a password must draw from.
const symbols = `!@#$%^&*(),.?":{}|<>`

// PasswordStrength checks all five rules independently so the caller can
// surface every violation at once, not just the first.
func PasswordStrength(s string) StrengthResult {
	var violations []string

	if len(s) < minPasswordLength {
		violations = append(violations, "password must be at least 8 characters")
	}
	if !containsRange(s, 'A', 'Z') {
		violations = append(violations, "password must contain an uppercase letter")
	}
	if !containsRange(s, 'a', 'z') {
		violations = append(violations, "password must contain a lowercase letter")
	}
	if !containsRange(s, '0', '9') {
		violations = append(violations, "password must contain a digit")
	}
	if !containsAny(s, symbols) {
		violations = append(violations, "password must contain a special character")
	}

	return StrengthResult{Valid: len(violations) == 0, Violations: violations}
}

func containsRange(s string, lo, hi byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= lo && s[i] <= hi {
			return true
		}
	}
	return false
}

func containsAny(s, set string) bool {
	for i := 0; i < len(s); i++ {
		for j := 0; j < len(set); j++ {
			if s[i] == set[j] {
				return true
			}
		}
	}
	return false
}
