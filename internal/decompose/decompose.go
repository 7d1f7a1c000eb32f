package decompose

import (
	"errors"
	"fmt"
	"sort"

	"github.com/marcioaug/Refazer-sub001/internal/types"
)

var (
	ErrUnknownStrategy = errors.New("decompose: unknown strategy")
	ErrRegionOutside   = errors.New("decompose: region outside its context")
)

// Strategy reduces examples to the granularity predicates are learned at.
// Strategies are stateless and safe for concurrent use.
type Strategy interface {
	Name() string
	Decompose(examples []types.Example) ([]types.Example, error)
}

type strategyConstructor func() Strategy

var allStrategies = map[string]strategyConstructor{
	"identity":  func() Strategy { return Identity{} },
	"node":      func() Strategy { return Node{} },
	"statement": func() Strategy { return Statement{} },
}

// Lookup returns the strategy registered under name.
func Lookup(name string) (Strategy, error) {
	newStrategy, ok := allStrategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownStrategy, name, Names())
	}
	return newStrategy(), nil
}

// Names lists the registered strategies in sorted order.
func Names() []string {
	names := make([]string, 0, len(allStrategies))
	for name := range allStrategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Identity returns the examples unchanged.
type Identity struct{}

func (Identity) Name() string { return "identity" }

func (Identity) Decompose(examples []types.Example) ([]types.Example, error) {
	return examples, nil
}

// Node narrows each example to its target: the context becomes the
// target subrange and the region covers all of it.
type Node struct{}

func (Node) Name() string { return "node" }

func (Node) Decompose(examples []types.Example) ([]types.Example, error) {
	out := make([]types.Example, len(examples))
	for i, ex := range examples {
		target, err := checkedTarget(ex, i)
		if err != nil {
			return nil, err
		}
		out[i] = narrow(ex, target)
	}
	return out, nil
}

// Statement widens each example's target to the innermost statement that
// encloses it and uses that statement as the context. Sequences that do
// not implement types.StatementSpanner, and targets outside any
// statement, are kept as they are.
type Statement struct{}

func (Statement) Name() string { return "statement" }

func (Statement) Decompose(examples []types.Example) ([]types.Example, error) {
	out := make([]types.Example, len(examples))
	for i, ex := range examples {
		target, err := checkedTarget(ex, i)
		if err != nil {
			return nil, err
		}
		spanner, ok := ex.Context.(types.StatementSpanner)
		if !ok {
			out[i] = ex
			continue
		}
		stmt, found := spanner.EnclosingStatement(target)
		if !found {
			out[i] = ex
			continue
		}
		out[i] = narrow(ex, stmt)
	}
	return out, nil
}

// narrow re-roots ex at the given span of its context, shifting the
// original region so that it stays relative to the new context.
func narrow(ex types.Example, span types.Region) types.Example {
	narrowed := types.Example{
		Context: ex.Context.Subrange(span.Start, span.Len),
		Label:   ex.Label,
	}
	if ex.Region != nil {
		r := types.Region{Start: ex.Region.Start - span.Start, Len: ex.Region.Len}
		if !r.Within(span.Len) {
			r = types.Region{Start: 0, Len: span.Len}
		}
		narrowed.Region = &r
	}
	return narrowed
}

func checkedTarget(ex types.Example, i int) (types.Region, error) {
	if ex.Context == nil {
		return types.Region{}, fmt.Errorf("example %d has no context", i)
	}
	target := ex.Target()
	if !target.Within(ex.Context.Len()) {
		return types.Region{}, fmt.Errorf("%w: example %d region %s, length %d", ErrRegionOutside, i, target, ex.Context.Len())
	}
	return target, nil
}
