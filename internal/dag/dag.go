package dag

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/marcioaug/Refazer-sub001/internal/position"
	"github.com/marcioaug/Refazer-sub001/internal/types"
)

var (
	ErrNoDags        = errors.New("dag: nothing to intersect")
	ErrModeMismatch  = errors.New("dag: cannot intersect region and sweep dags")
	ErrRegionOutside = errors.New("dag: region outside of sequence")
)

// Mode selects which boundaries of an example are designated.
type Mode int

const (
	// Region designates only the example's target region.
	Region Mode = iota + 1
	// Sweep designates every boundary, so every vertex pair is a candidate.
	Sweep
)

func (m Mode) String() string {
	switch m {
	case Region:
		return "region"
	case Sweep:
		return "sweep"
	default:
		return "unknown"
	}
}

// Edge is an ordered pair of vertex ids.
type Edge struct {
	From int
	To   int
}

// Vertex is one boundary, aligned across every source example.
// Bounds[s] is the boundary index in source s.
type Vertex struct {
	ID        int
	Bounds    []int
	Positions *position.Set
}

// Dag is the version space of one or more examples. The expressions on
// edge (u, v) are every SubStr(p1, p2) with p1 in u's positions and p2 in
// v's positions; storing the factors keeps intersection exact and small.
type Dag struct {
	mode     Mode
	sources  []*position.Resolver
	vertices []*Vertex
	index    map[string]int

	// Init and End are the vertex ids of the designated target region.
	Init int
	End  int
}

func newDag(mode Mode, sources []*position.Resolver) *Dag {
	return &Dag{
		mode:    mode,
		sources: sources,
		index:   make(map[string]int),
	}
}

// addVertex returns the id for bounds, creating the vertex if needed.
func (d *Dag) addVertex(bounds []int, positions *position.Set) int {
	if len(bounds) != len(d.sources) {
		panic(fmt.Sprintf("dag: vertex with %d bounds in a dag of %d sources", len(bounds), len(d.sources)))
	}
	key := boundsKey(bounds)
	if id, ok := d.index[key]; ok {
		return id
	}
	id := len(d.vertices)
	d.vertices = append(d.vertices, &Vertex{ID: id, Bounds: bounds, Positions: positions})
	d.index[key] = id
	return id
}

func boundsKey(bounds []int) string {
	parts := make([]string, len(bounds))
	for i, b := range bounds {
		parts[i] = strconv.Itoa(b)
	}
	return strings.Join(parts, ",")
}

func (d *Dag) Mode() Mode { return d.mode }

// NumSources is the number of examples this dag generalizes.
func (d *Dag) NumSources() int { return len(d.sources) }

// NumVertices is the number of vertices.
func (d *Dag) NumVertices() int { return len(d.vertices) }

// Vertex returns the vertex with the given id.
func (d *Dag) Vertex(id int) *Vertex { return d.vertices[id] }

// VertexAt finds the vertex for a tuple of per-source boundaries.
func (d *Dag) VertexAt(bounds ...int) (*Vertex, bool) {
	id, ok := d.index[boundsKey(bounds)]
	if !ok {
		return nil, false
	}
	return d.vertices[id], true
}

// Edge returns the expressions on (from, to). A missing edge means no
// generalization is available there; it is not an error.
func (d *Dag) Edge(from, to int) (ExprSet, bool) {
	if from < 0 || to < 0 || from >= len(d.vertices) || to >= len(d.vertices) {
		return ExprSet{}, false
	}
	u, v := d.vertices[from], d.vertices[to]
	if u.Positions.Len() == 0 || v.Positions.Len() == 0 {
		return ExprSet{}, false
	}
	for s := range u.Bounds {
		if u.Bounds[s] > v.Bounds[s] {
			return ExprSet{}, false
		}
	}
	return ExprSet{Starts: u.Positions, Ends: v.Positions}, true
}

// Target returns the expressions on the designated (Init, End) edge.
func (d *Dag) Target() (ExprSet, bool) {
	return d.Edge(d.Init, d.End)
}

// Edges lists every edge in (From, To) order. This is quadratic in the
// number of vertices.
func (d *Dag) Edges() []Edge {
	var out []Edge
	for _, u := range d.vertices {
		for _, v := range d.vertices {
			if _, ok := d.Edge(u.ID, v.ID); ok {
				out = append(out, Edge{From: u.ID, To: v.ID})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// EdgeStarts returns the ids of vertices that open at least one edge.
// Any vertex with positions opens the empty edge (v, v), so these are
// exactly the vertices with a non-empty position set.
func (d *Dag) EdgeStarts() []int {
	var out []int
	for _, v := range d.vertices {
		if v.Positions.Len() > 0 {
			out = append(out, v.ID)
		}
	}
	return out
}

// Sequences returns the source sequences in order.
func (d *Dag) Sequences() []types.Sequence {
	out := make([]types.Sequence, len(d.sources))
	for i, r := range d.sources {
		out[i] = r.Sequence()
	}
	return out
}

// Clear drops the per-run match caches. The version space is untouched.
func (d *Dag) Clear() {
	for _, r := range d.sources {
		r.Clear()
	}
}

// ExprSet is the set of SubStr expressions on one edge, held as the
// product Starts × Ends.
type ExprSet struct {
	Starts *position.Set
	Ends   *position.Set
}

func (s ExprSet) Len() int { return s.Starts.Len() * s.Ends.Len() }

func (s ExprSet) Contains(e position.SubStr) bool {
	return s.Starts.Contains(e.P1) && s.Ends.Contains(e.P2)
}

// All enumerates the product in start-major order.
func (s ExprSet) All() []position.SubStr {
	out := make([]position.SubStr, 0, s.Len())
	for _, p1 := range s.Starts.Items() {
		for _, p2 := range s.Ends.Items() {
			out = append(out, position.SubStr{P1: p1, P2: p2})
		}
	}
	return out
}

// Intersect keeps the expressions present in both sets.
func (s ExprSet) Intersect(o ExprSet) ExprSet {
	return ExprSet{Starts: s.Starts.Intersect(o.Starts), Ends: s.Ends.Intersect(o.Ends)}
}
