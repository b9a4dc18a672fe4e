package shared

import (
	"net/mail"
	"strings"
)

func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// NormalizeEmail lower-cases and trims an address, returning false when it
// can't be parsed as a bare address.
func NormalizeEmail(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return "", false
	}
	return s, true
}

// MaskEmail keeps the first three characters of an address for logs.
func MaskEmail(email string) string {
	if len(email) <= 3 {
		return email
	}
	return email[:3] + "***"
}
