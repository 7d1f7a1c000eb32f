package predicate

import (
	"fmt"

	"github.com/marcioaug/Refazer-sub001/internal/token"
	"github.com/marcioaug/Refazer-sub001/internal/types"
)

// Predicate is a learned boolean test over a sequence: Kind applied to
// the pattern R1·R2.
type Predicate struct {
	Kind Kind
	R1   token.Pattern
	R2   token.Pattern
}

// Pattern returns R1·R2.
func (p Predicate) Pattern() token.Pattern { return p.R1.Concat(p.R2) }

func (p Predicate) Evaluate(seq types.Sequence) bool {
	return p.Kind.Evaluate(seq, p.Pattern())
}

func (p Predicate) Equal(o Predicate) bool {
	return p.Kind == o.Kind && p.R1.Equal(o.R1) && p.R2.Equal(o.R2)
}

// DynamicCount is the number of Dynamic matchers; lower is more specific.
func (p Predicate) DynamicCount() int { return p.R1.DynamicCount() + p.R2.DynamicCount() }

func (p Predicate) String() string {
	return fmt.Sprintf("%s(%s, %s)", p.Kind, display(p.R1), display(p.R2))
}

func display(p token.Pattern) string {
	if p.IsEmpty() {
		return "Empty"
	}
	return p.String()
}
