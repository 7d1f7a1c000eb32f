package types

import (
	"fmt"
	"go/token"
)

// Element is one leaf of a linearized syntax tree.
type Element interface {
	// Kind is the node type or token kind, e.g. "IDENT" or ";".
	Kind() string
	// Value is the literal text for leaves that carry one, "" otherwise.
	Value() string
	// Category is the broader class the element belongs to, e.g. "Name".
	// An empty category means the element never generalizes.
	Category() string
}

// Sequence is an ordered, 0-indexed, read-only list of elements.
type Sequence interface {
	Len() int
	At(i int) Element
	Subrange(start, n int) Sequence
}

// Slice is the plain slice-backed Sequence.
type Slice []Element

func (s Slice) Len() int         { return len(s) }
func (s Slice) At(i int) Element { return s[i] }
func (s Slice) Subrange(start, n int) Sequence {
	return s[start : start+n : start+n]
}

// Elements copies any sequence into a Slice.
func Elements(seq Sequence) Slice {
	if s, ok := seq.(Slice); ok {
		return s
	}
	out := make(Slice, seq.Len())
	for i := range out {
		out[i] = seq.At(i)
	}
	return out
}

// Leaf is a minimal Element for sequences built by hand.
type Leaf struct {
	Type  string
	Text  string
	Class string
}

func (l Leaf) Kind() string     { return l.Type }
func (l Leaf) Value() string    { return l.Text }
func (l Leaf) Category() string { return l.Class }

// Kinds builds a sequence of bare leaves, one per kind.
func Kinds(kinds ...string) Slice {
	out := make(Slice, len(kinds))
	for i, k := range kinds {
		out[i] = Leaf{Type: k}
	}
	return out
}

// Region is a half-open range [Start, Start+Len) of element indices.
type Region struct {
	Start int `yaml:"start" json:"start"`
	Len   int `yaml:"len" json:"len"`
}

// End returns the exclusive end index.
func (r Region) End() int { return r.Start + r.Len }

// Within reports whether the region fits a sequence of length n.
func (r Region) Within(n int) bool {
	return r.Start >= 0 && r.Len >= 0 && r.End() <= n
}

func (r Region) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End())
}

// StatementSpanner is implemented by sequences that know the statement
// structure of the tree they were linearized from.
type StatementSpanner interface {
	EnclosingStatement(r Region) (Region, bool)
}

// Example is one learning example. Region is nil for pure classification
// examples; Label is the boolean classification.
type Example struct {
	Context Sequence
	Region  *Region
	Label   bool
}

// Target returns the example's region, or the whole context when none is set.
func (e Example) Target() Region {
	if e.Region != nil {
		return *e.Region
	}
	if e.Context == nil {
		return Region{}
	}
	return Region{Start: 0, Len: e.Context.Len()}
}

// Location is a region found in a source file.
type Location struct {
	Rule     string
	Filename string
	Message  string
	Snippet  string
	Start    token.Position
	End      token.Position
}

// ConfigRule toggles one predicate kind.
type ConfigRule struct {
	Enabled bool `yaml:"enabled"`
}
