package dag

import (
	"fmt"
	"sort"

	"github.com/marcioaug/Refazer-sub001/internal/position"
	"github.com/marcioaug/Refazer-sub001/internal/token"
	"github.com/marcioaug/Refazer-sub001/internal/types"
)

// DefaultDeviation is the default number of elements considered on each
// side of a boundary.
const DefaultDeviation = 2

// Build constructs the version space of one example. Vertices are the
// boundaries 0..seq.Len(); the positions stored on vertex i are all the
// generated Pos expressions that resolve to i.
func Build(seq types.Sequence, target types.Region, mode Mode, deviation int) (*Dag, error) {
	if seq == nil || !target.Within(seq.Len()) {
		return nil, fmt.Errorf("%w: %s", ErrRegionOutside, target)
	}
	if deviation < 1 {
		deviation = DefaultDeviation
	}

	res := position.NewResolver(seq)
	sets := Generate(res, deviation)

	d := newDag(mode, []*position.Resolver{res})
	for i, set := range sets {
		d.addVertex([]int{i}, set)
	}
	d.Init = target.Start
	d.End = target.End()
	return d, nil
}

// Generate enumerates the candidate positions of a sequence, bucketed by
// the boundary each one resolves to. For every boundary it tries windows
// of up to deviation elements on each side, as all-Exact and all-Dynamic
// patterns, ranked both from the start and from the end.
func Generate(res *position.Resolver, deviation int) []*position.Set {
	seq := res.Sequence()
	n := seq.Len()
	sets := make([]*position.Set, n+1)
	for i := range sets {
		sets[i] = position.NewSet()
	}

	for b := 0; b <= n; b++ {
		for w1 := 0; w1 <= deviation && w1 <= b; w1++ {
			for w2 := 0; w2 <= deviation && b+w2 <= n; w2++ {
				if w1 == 0 && w2 == 0 {
					continue
				}
				for _, r1 := range windows(seq, b-w1, w1) {
					for _, r2 := range windows(seq, b, w2) {
						addRanks(res, sets, r1, r2, b-w1)
					}
				}
			}
		}
	}
	return sets
}

// windows returns the pattern variants covering seq[start:start+n].
func windows(seq types.Sequence, start, n int) []token.Pattern {
	if n == 0 {
		return []token.Pattern{token.Empty}
	}
	out := []token.Pattern{token.ExactPattern(seq, start, n)}
	if dyn, ok := token.DynamicPattern(seq, start, n); ok {
		out = append(out, dyn)
	}
	return out
}

// addRanks adds Pos(r1, r2, k) for the occurrence of r1·r2 that starts at
// start, with k counted from both ends.
func addRanks(res *position.Resolver, sets []*position.Set, r1, r2 token.Pattern, start int) {
	occs := res.Occurrences(r1.Concat(r2))
	idx := sort.Search(len(occs), func(i int) bool { return occs[i].Start >= start })
	if idx == len(occs) || occs[idx].Start != start {
		panic(fmt.Sprintf("dag: window %s at %d has no occurrence", r1.Concat(r2), start))
	}

	l := len(occs)
	for _, k := range []int{idx + 1, idx - l} {
		p := position.Pos{R1: r1, R2: r2, K: k}
		if at := res.Resolve(p); at != position.NotFound {
			sets[at].Add(p)
		}
	}
}
