package predicate

import (
	"fmt"

	"github.com/marcioaug/Refazer-sub001/internal/token"
	"github.com/marcioaug/Refazer-sub001/internal/types"
)

// Kind is the classification a predicate applies to its pattern.
type Kind int

const (
	Contains Kind = iota + 1
	StartsWith
	EndsWith
)

// AllKinds lists every kind in its canonical order.
var AllKinds = []Kind{Contains, StartsWith, EndsWith}

func (k Kind) String() string {
	switch k {
	case Contains:
		return "Contains"
	case StartsWith:
		return "StartsWith"
	case EndsWith:
		return "EndsWith"
	default:
		return "Unknown"
	}
}

// Name is the configuration key of the kind.
func (k Kind) Name() string {
	switch k {
	case Contains:
		return "contains"
	case StartsWith:
		return "starts_with"
	case EndsWith:
		return "ends_with"
	default:
		return "unknown"
	}
}

// ParseKind maps a configuration key back to its kind.
func ParseKind(name string) (Kind, error) {
	for _, k := range AllKinds {
		if k.Name() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown predicate kind %q", name)
}

// Evaluate applies the kind to seq with pattern p. An empty pattern or a
// nil sequence is never satisfied.
func (k Kind) Evaluate(seq types.Sequence, p token.Pattern) bool {
	if seq == nil || p.IsEmpty() {
		return false
	}
	switch k {
	case Contains:
		_, ok := token.FirstMatch(seq, p)
		return ok
	case StartsWith:
		return p.MatchesAt(seq, 0)
	case EndsWith:
		return p.MatchesAt(seq, seq.Len()-p.Len())
	default:
		return false
	}
}
