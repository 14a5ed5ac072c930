// Package normalize provides helper functions for consistent string normalization
// across the application. Use these helpers instead of scattered strings.ToLower
// and strings.TrimSpace calls to ensure consistent behavior.
package normalize

import "strings"

// Username normalizes a username by trimming whitespace. The stored value
// keeps its original case; use UsernameKey for comparisons.
func Username(s string) string {
	return strings.TrimSpace(s)
}

// UsernameKey returns the canonical comparison key for a username.
func UsernameKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Email normalizes an email address by trimming whitespace and converting to lowercase.
// This is the canonical way to normalize emails before storage or comparison.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Phone normalizes a phone number by trimming whitespace.
func Phone(s string) string {
	return strings.TrimSpace(s)
}

// Name normalizes a name by trimming whitespace.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role normalizes a role value by trimming whitespace and converting to lowercase.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam normalizes a query parameter by trimming whitespace.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
