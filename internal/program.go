package internal

import (
	"sort"

	"github.com/marcioaug/Refazer-sub001/internal/position"
	"github.com/marcioaug/Refazer-sub001/internal/predicate"
	tt "github.com/marcioaug/Refazer-sub001/internal/types"
)

// Program is the result of learning: the predicates that select matching
// statements and, when region examples were given, the expression that
// extracts the region from a selected statement.
type Program struct {
	Predicates []predicate.Predicate
	Extract    *position.SubStr
}

// Empty reports whether nothing generalized.
func (p *Program) Empty() bool { return p == nil || len(p.Predicates) == 0 }

// Selects applies the best predicate to seq.
func (p *Program) Selects(seq tt.Sequence) bool {
	if p.Empty() {
		return false
	}
	return p.Predicates[0].Evaluate(seq)
}

// ProgramSummary is the printable form of a Program.
type ProgramSummary struct {
	Predicates []string `json:"predicates"`
	Extract    string   `json:"extract,omitempty"`
}

func (p *Program) Summary() ProgramSummary {
	s := ProgramSummary{Predicates: []string{}}
	if p == nil {
		return s
	}
	for _, pred := range p.Predicates {
		s.Predicates = append(s.Predicates, pred.String())
	}
	if p.Extract != nil {
		s.Extract = p.Extract.String()
	}
	return s
}

// bestExtraction picks the most specific expression: positive ranks
// first, then the fewest Dynamic matchers. Ties keep enumeration order.
func bestExtraction(candidates []position.SubStr) *position.SubStr {
	if len(candidates) == 0 {
		return nil
	}
	sorted := append([]position.SubStr(nil), candidates...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ni, nj := negativeRanks(sorted[i]), negativeRanks(sorted[j])
		if ni != nj {
			return ni < nj
		}
		return sorted[i].DynamicCount() < sorted[j].DynamicCount()
	})
	return &sorted[0]
}

func negativeRanks(s position.SubStr) int {
	n := 0
	if s.P1.K < 0 {
		n++
	}
	if s.P2.K < 0 {
		n++
	}
	return n
}
