package predicate

import (
	"github.com/marcioaug/Refazer-sub001/internal/token"
	"github.com/marcioaug/Refazer-sub001/internal/types"
)

type indicatorKey struct {
	kind    Kind
	pattern string
}

// Indicator checks whether a candidate pattern, under a kind, reproduces
// every example's label. Results are memoized per (kind, pattern), so an
// Indicator must only ever see one example set.
type Indicator struct {
	cache  map[indicatorKey]bool
	hits   int
	misses int
}

func NewIndicator() *Indicator {
	return &Indicator{cache: make(map[indicatorKey]bool)}
}

// Check returns true only if kind.Evaluate agrees with the label of every
// example. It stops at the first disagreement.
func (ind *Indicator) Check(kind Kind, examples []types.Example, candidate token.Pattern) bool {
	key := indicatorKey{kind: kind, pattern: candidate.String()}
	if ok, found := ind.cache[key]; found {
		ind.hits++
		return ok
	}
	ind.misses++

	ok := true
	for _, ex := range examples {
		if kind.Evaluate(ex.Context, candidate) != ex.Label {
			ok = false
			break
		}
	}
	ind.cache[key] = ok
	return ok
}

// Stats reports cache hits and misses.
func (ind *Indicator) Stats() (hits, misses int) { return ind.hits, ind.misses }
