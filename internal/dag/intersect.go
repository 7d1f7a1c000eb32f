package dag

import (
	"fmt"

	"github.com/marcioaug/Refazer-sub001/internal/position"
)

// Intersect combines per-example dags into one whose expressions are
// valid in every example. Expressions are compared structurally, never by
// the text they extract. Inputs are left untouched.
//
// Vertices of the result are tuples of aligned boundaries, one per source.
// Region dags align only their designated boundaries (Init with Init, End
// with End); sweep dags align every pair of boundaries whose position sets
// still overlap.
func Intersect(dags []*Dag) (*Dag, error) {
	if len(dags) == 0 {
		return nil, ErrNoDags
	}
	mode := dags[0].mode
	for _, d := range dags[1:] {
		if d.mode != mode {
			return nil, fmt.Errorf("%w: %s and %s", ErrModeMismatch, mode, d.mode)
		}
	}

	acc := dags[0].clone()
	for _, d := range dags[1:] {
		acc = intersect2(acc, d)
	}
	return acc, nil
}

func (d *Dag) clone() *Dag {
	out := newDag(d.mode, append([]*position.Resolver(nil), d.sources...))
	for _, v := range d.vertices {
		out.addVertex(append([]int(nil), v.Bounds...), v.Positions)
	}
	out.Init = d.Init
	out.End = d.End
	return out
}

func intersect2(a, b *Dag) *Dag {
	sources := make([]*position.Resolver, 0, len(a.sources)+len(b.sources))
	sources = append(sources, a.sources...)
	sources = append(sources, b.sources...)
	out := newDag(a.mode, sources)

	join := func(u, v *Vertex, positions *position.Set) int {
		bounds := make([]int, 0, len(u.Bounds)+len(v.Bounds))
		bounds = append(bounds, u.Bounds...)
		bounds = append(bounds, v.Bounds...)
		return out.addVertex(bounds, positions)
	}

	// designated boundaries are kept even when nothing survives, so an
	// empty target edge reads as "no generalization" rather than vanishing
	ai, bi := a.vertices[a.Init], b.vertices[b.Init]
	out.Init = join(ai, bi, ai.Positions.Intersect(bi.Positions))
	ae, be := a.vertices[a.End], b.vertices[b.End]
	out.End = join(ae, be, ae.Positions.Intersect(be.Positions))

	if a.mode == Sweep {
		for _, u := range a.vertices {
			if u.Positions.Len() == 0 {
				continue
			}
			for _, v := range b.vertices {
				if v.Positions.Len() == 0 {
					continue
				}
				if both := u.Positions.Intersect(v.Positions); both.Len() > 0 {
					join(u, v, both)
				}
			}
		}
	}
	return out
}

// FilterExpressions re-checks every position against every source and
// drops those that no longer resolve to their vertex's boundary. It
// returns the number of positions removed. Running it again removes
// nothing.
func (d *Dag) FilterExpressions() int {
	removed := 0
	for _, v := range d.vertices {
		if len(v.Bounds) != len(d.sources) {
			panic(fmt.Sprintf("dag: vertex %d has %d bounds for %d sources", v.ID, len(v.Bounds), len(d.sources)))
		}
		before := v.Positions.Len()
		v.Positions = v.Positions.Filter(func(p position.Pos) bool {
			for s, res := range d.sources {
				if res.Resolve(p) != v.Bounds[s] {
					return false
				}
			}
			return true
		})
		removed += before - v.Positions.Len()
	}
	return removed
}
