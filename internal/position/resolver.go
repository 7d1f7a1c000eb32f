package position

import (
	"github.com/marcioaug/Refazer-sub001/internal/token"
	"github.com/marcioaug/Refazer-sub001/internal/types"
)

// Resolver memoizes pattern occurrences over one sequence.
// A Resolver belongs to a single learning run and is not safe for
// concurrent use.
type Resolver struct {
	seq         types.Sequence
	occurrences map[string][]token.Occurrence
}

func NewResolver(seq types.Sequence) *Resolver {
	return &Resolver{
		seq:         seq,
		occurrences: make(map[string][]token.Occurrence),
	}
}

func (r *Resolver) Sequence() types.Sequence { return r.seq }

// Occurrences returns the cached matches of p.
func (r *Resolver) Occurrences(p token.Pattern) []token.Occurrence {
	key := p.String()
	if occs, ok := r.occurrences[key]; ok {
		return occs
	}
	occs := token.Matches(r.seq, p)
	r.occurrences[key] = occs
	return occs
}

// Resolve is Resolve(seq, p.R1, p.R2, p.K) with cached matching.
func (r *Resolver) Resolve(p Pos) int {
	if r.seq == nil || p.K == 0 {
		return NotFound
	}
	return resolveOccurrences(r.seq, p.R1, p.R2, p.K, r.Occurrences(p.Merge()))
}

// Clear drops every cached match.
func (r *Resolver) Clear() {
	r.occurrences = make(map[string][]token.Occurrence)
}
