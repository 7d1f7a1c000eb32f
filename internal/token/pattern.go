package token

import (
	"strings"

	"github.com/marcioaug/Refazer-sub001/internal/types"
)

// Pattern is an ordered, immutable sequence of matchers.
// Every matcher consumes exactly one element, so Len is always the
// number of elements a match spans.
type Pattern struct {
	matchers []Matcher
}

// Empty is the pattern with no matchers.
var Empty = Pattern{}

// NewPattern builds a pattern from matchers. The slice is copied.
func NewPattern(ms ...Matcher) Pattern {
	if len(ms) == 0 {
		return Empty
	}
	cp := make([]Matcher, len(ms))
	copy(cp, ms)
	return Pattern{matchers: cp}
}

// ExactPattern builds the all-Exact pattern that accepts seq[start:start+n].
func ExactPattern(seq types.Sequence, start, n int) Pattern {
	ms := make([]Matcher, n)
	for i := range ms {
		ms[i] = ExactOf(seq.At(start + i))
	}
	return Pattern{matchers: ms}
}

// DynamicPattern builds the all-Dynamic pattern for seq[start:start+n].
// It reports false when any element in the window has no category.
func DynamicPattern(seq types.Sequence, start, n int) (Pattern, bool) {
	ms := make([]Matcher, n)
	for i := range ms {
		m, ok := DynamicOf(seq.At(start + i))
		if !ok {
			return Empty, false
		}
		ms[i] = m
	}
	return Pattern{matchers: ms}, true
}

func (p Pattern) Len() int         { return len(p.matchers) }
func (p Pattern) IsEmpty() bool    { return len(p.matchers) == 0 }
func (p Pattern) At(i int) Matcher { return p.matchers[i] }

// Matchers returns a copy of the matcher list.
func (p Pattern) Matchers() []Matcher {
	cp := make([]Matcher, len(p.matchers))
	copy(cp, p.matchers)
	return cp
}

// Concat returns p·q as a single pattern.
func (p Pattern) Concat(q Pattern) Pattern {
	if q.IsEmpty() {
		return p
	}
	if p.IsEmpty() {
		return q
	}
	ms := make([]Matcher, 0, len(p.matchers)+len(q.matchers))
	ms = append(ms, p.matchers...)
	ms = append(ms, q.matchers...)
	return Pattern{matchers: ms}
}

// Equal compares patterns structurally.
func (p Pattern) Equal(q Pattern) bool {
	if len(p.matchers) != len(q.matchers) {
		return false
	}
	for i := range p.matchers {
		if p.matchers[i] != q.matchers[i] {
			return false
		}
	}
	return true
}

// DynamicCount is the number of Dynamic matchers, used to rank patterns
// from most to least specific.
func (p Pattern) DynamicCount() int {
	n := 0
	for _, m := range p.matchers {
		if m.Kind == Dynamic {
			n++
		}
	}
	return n
}

// MatchesAt reports whether p aligns with seq starting at index i.
func (p Pattern) MatchesAt(seq types.Sequence, i int) bool {
	if i < 0 || i+len(p.matchers) > seq.Len() {
		return false
	}
	for j, m := range p.matchers {
		if !m.Matches(seq.At(i + j)) {
			return false
		}
	}
	return true
}

// String renders the pattern deterministically. It doubles as the
// structural cache key.
func (p Pattern) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, m := range p.matchers {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(m.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
