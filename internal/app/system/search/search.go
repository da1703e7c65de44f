// Package search implements the free-text stage of list queries: a term is
// folded once (case and diacritics) and matched as a substring against a
// record's searchable fields.
package search

import (
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
)

// Term is a folded search term. The zero Term matches everything.
type Term struct {
	folded string
}

// NewTerm trims and folds q.
func NewTerm(q string) Term {
	return Term{folded: text.Fold(strings.TrimSpace(q))}
}

// Empty reports whether the term imposes no constraint.
func (t Term) Empty() bool { return t.folded == "" }

// Match reports whether the term is a substring of at least one field.
func (t Term) Match(fields ...string) bool {
	if t.folded == "" {
		return true
	}
	for _, f := range fields {
		if f != "" && strings.Contains(text.Fold(f), t.folded) {
			return true
		}
	}
	return false
}

// LooksLikeEmail reports whether the raw query is probably an address, so
// list views can default to sorting by email instead of name.
func LooksLikeEmail(q string) bool {
	return strings.Contains(q, "@")
}
