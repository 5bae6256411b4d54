package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// bcrypt only considers the first 72 bytes of input.
const maxPasswordLength = 72

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// PasswordPolicy describes the configured minimum-strength rules.
type PasswordPolicy struct {
	MinLength int
}

// DefaultPasswordPolicy mirrors the policy applied at account creation.
var DefaultPasswordPolicy = PasswordPolicy{MinLength: 4}

// IsValidEmail reports whether s looks like a well-formed address:
// a single @ with non-empty local part and a dotted domain.
func IsValidEmail(s string) bool {
	if s == "" {
		return false
	}
	return emailPattern.MatchString(s)
}

// IsValidPassword reports whether s satisfies the policy. Whitespace
// characters are never allowed.
func IsValidPassword(s string, policy PasswordPolicy) bool {
	if s == "" {
		return false
	}
	if len(s) < policy.MinLength || len(s) > maxPasswordLength {
		return false
	}
	for _, r := range s {
		if unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsValidFullName reports whether s is a printable human name:
// letters plus the usual separators (spaces, hyphens, apostrophes, periods).
func IsValidFullName(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
		case r == ' ' || r == '-' || r == '\'' || r == '.':
		default:
			return false
		}
	}
	return true
}
