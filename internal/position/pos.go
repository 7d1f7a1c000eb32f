package position

import (
	"fmt"

	"github.com/marcioaug/Refazer-sub001/internal/token"
	"github.com/marcioaug/Refazer-sub001/internal/types"
)

// NotFound is returned whenever a position cannot be resolved.
// It is an expected outcome during search, not an error.
const NotFound = -1

// Pos denotes one boundary index: the place between R1 and R2 in the
// K-th occurrence of R1·R2. K > 0 counts from the start (1-based),
// K < 0 counts from the end.
type Pos struct {
	R1 token.Pattern
	R2 token.Pattern
	K  int
}

// Merge returns the combined pattern R1·R2.
func (p Pos) Merge() token.Pattern { return p.R1.Concat(p.R2) }

// Equal compares positions structurally over (R1, R2, K).
func (p Pos) Equal(q Pos) bool {
	return p.K == q.K && p.R1.Equal(q.R1) && p.R2.Equal(q.R2)
}

// Resolve evaluates p against seq.
func (p Pos) Resolve(seq types.Sequence) int {
	return Resolve(seq, p.R1, p.R2, p.K)
}

// DynamicCount is the number of Dynamic matchers on both sides.
func (p Pos) DynamicCount() int { return p.R1.DynamicCount() + p.R2.DynamicCount() }

func (p Pos) String() string {
	return fmt.Sprintf("Pos(%s, %s, %d)", displayPattern(p.R1), displayPattern(p.R2), p.K)
}

func displayPattern(p token.Pattern) string {
	if p.IsEmpty() {
		return "Empty"
	}
	return p.String()
}

// Resolve returns the boundary index denoted by (r1, r2, k) in seq,
// or NotFound.
func Resolve(seq types.Sequence, r1, r2 token.Pattern, k int) int {
	if seq == nil || k == 0 {
		return NotFound
	}
	return resolveOccurrences(seq, r1, r2, k, token.MatchesConcat(seq, r1, r2))
}

// resolveOccurrences picks the k-th occurrence of r1·r2 out of occs and
// refines the boundary inside it.
func resolveOccurrences(seq types.Sequence, r1, r2 token.Pattern, k int, occs []token.Occurrence) int {
	l := len(occs)
	if l == 0 || k == 0 || (k > 0 && l-k < 0) || (k < 0 && l+k < 0) {
		return NotFound
	}

	var idx int
	if k > 0 {
		idx = k - 1
	} else {
		idx = l + k
	}

	occ := occs[idx]
	return FindBoundary(seq, r1, r2, occ.Start, occ.Window)
}

// FindBoundary locates the split between r1 and r2 inside a window that
// r1·r2 matched at start.
//
// When the last element consumed by r1 also satisfies the first matcher
// of r2, the element is shared by both sides and the boundary moves one
// step left.
func FindBoundary(seq types.Sequence, r1, r2 token.Pattern, start int, window types.Sequence) int {
	if r1.IsEmpty() {
		return start
	}
	if r2.IsEmpty() {
		return start + window.Len()
	}

	occ, ok := token.FirstMatch(window, r1)
	if !ok {
		panic(fmt.Sprintf("position: window at %d matched %s but not its prefix %s", start, r1.Concat(r2), r1))
	}
	prefixLen := occ.End()
	boundary := start + prefixLen

	last := window.At(prefixLen - 1)
	if r2.At(0).Matches(last) {
		boundary--
	}
	return boundary
}

// SubStr denotes the half-open range [P1, P2) of a sequence.
type SubStr struct {
	P1 Pos
	P2 Pos
}

// Equal compares both positions structurally.
func (s SubStr) Equal(o SubStr) bool { return s.P1.Equal(o.P1) && s.P2.Equal(o.P2) }

// DynamicCount is the number of Dynamic matchers in both positions.
func (s SubStr) DynamicCount() int { return s.P1.DynamicCount() + s.P2.DynamicCount() }

// Extract resolves both ends against seq. It reports false when either
// end is NotFound or the ends are out of order.
func (s SubStr) Extract(seq types.Sequence) (types.Region, bool) {
	start := s.P1.Resolve(seq)
	if start == NotFound {
		return types.Region{}, false
	}
	end := s.P2.Resolve(seq)
	if end == NotFound || end < start {
		return types.Region{}, false
	}
	return types.Region{Start: start, Len: end - start}, true
}

func (s SubStr) String() string {
	return fmt.Sprintf("SubStr(%s, %s)", s.P1, s.P2)
}
