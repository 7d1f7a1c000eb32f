package token

import (
	"fmt"

	"github.com/marcioaug/Refazer-sub001/internal/types"
)

// MatcherKind defines how a Matcher compares elements
type MatcherKind int

const (
	// Exact matches one element kind, and its literal text when set.
	Exact MatcherKind = iota + 1
	// Dynamic matches any element of a category.
	Dynamic
)

func (k MatcherKind) String() string {
	switch k {
	case Exact:
		return "Exact"
	case Dynamic:
		return "Dynamic"
	default:
		return "Unknown"
	}
}

// Matcher is an atomic predicate over a single element.
// Matchers are plain values and compare structurally with ==.
type Matcher struct {
	Kind MatcherKind
	// Tag is the element kind for Exact and the category for Dynamic.
	Tag string
	// Value is the literal text an Exact matcher requires. Empty means any.
	Value string
}

// ExactOf builds the Exact matcher that accepts e.
func ExactOf(e types.Element) Matcher {
	return Matcher{Kind: Exact, Tag: e.Kind(), Value: e.Value()}
}

// DynamicOf builds the Dynamic matcher for e's category.
// It reports false when e has no category.
func DynamicOf(e types.Element) (Matcher, bool) {
	if e.Category() == "" {
		return Matcher{}, false
	}
	return Matcher{Kind: Dynamic, Tag: e.Category()}, true
}

// Matches reports whether e satisfies the matcher.
func (m Matcher) Matches(e types.Element) bool {
	if e == nil {
		return false
	}
	switch m.Kind {
	case Exact:
		if e.Kind() != m.Tag {
			return false
		}
		return m.Value == "" || e.Value() == m.Value
	case Dynamic:
		return e.Category() == m.Tag
	default:
		return false
	}
}

func (m Matcher) String() string {
	switch m.Kind {
	case Exact:
		if m.Value == "" {
			return m.Tag
		}
		return fmt.Sprintf("%s(%q)", m.Tag, m.Value)
	case Dynamic:
		return "<" + m.Tag + ">"
	default:
		return "?"
	}
}
