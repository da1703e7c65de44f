// Package normalize trims and canonicalizes raw input before validation.
package normalize

import (
	"strings"
)

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims and collapses internal whitespace; case is preserved.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Status uppercases and trims a status value ("booked" -> "BOOKED").
func Status(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// QueryParam trims a raw query-string value.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// Tab normalizes a status-tab value. "all" (any case) means no filter and
// becomes "".
func Tab(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "all") {
		return ""
	}
	return Status(s)
}

// Label trims a free-form label such as a level ("Beginner ").
func Label(s string) string {
	return Name(s)
}
