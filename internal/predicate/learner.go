package predicate

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/marcioaug/Refazer-sub001/internal/dag"
	"github.com/marcioaug/Refazer-sub001/internal/position"
	"github.com/marcioaug/Refazer-sub001/internal/types"
)

var (
	// ErrNotSupported is returned by LearnSplit. It is distinct from an
	// empty result, which means no predicate generalizes.
	ErrNotSupported = errors.New("predicate: learning from separate positive and negative lists is not supported")
	// ErrSweepTooLarge is returned when a decomposed example exceeds the
	// configured sweep bound.
	ErrSweepTooLarge = errors.New("predicate: sequence too long to sweep")
	// ErrInvalidExample is returned for examples without a context.
	ErrInvalidExample = errors.New("predicate: example has no context")
)

// Decomposer reduces examples to the granularity predicates are learned at.
type Decomposer interface {
	Decompose(examples []types.Example) ([]types.Example, error)
}

// Learner generalizes predicates from labeled examples.
// A Learner is not safe for concurrent use; use one per learning call.
type Learner struct {
	kinds     []Kind
	strategy  Decomposer
	deviation int
	maxLen    int
	rank      bool
	logger    *zap.Logger
	indicator *Indicator
}

type Option func(*Learner)

// WithKinds sets the predicate kinds to try, in order.
func WithKinds(kinds ...Kind) Option {
	return func(l *Learner) { l.kinds = append([]Kind(nil), kinds...) }
}

// WithStrategy sets the decomposition strategy. Without one, examples
// are used as given.
func WithStrategy(s Decomposer) Option {
	return func(l *Learner) { l.strategy = s }
}

// WithDeviation bounds the window generated on each side of a boundary.
func WithDeviation(d int) Option {
	return func(l *Learner) { l.deviation = d }
}

// WithMaxSequenceLen bounds the length of a swept example. Zero disables
// the bound.
func WithMaxSequenceLen(n int) Option {
	return func(l *Learner) { l.maxLen = n }
}

// WithRanking sorts predicates by Dynamic matcher count, ascending.
func WithRanking(rank bool) Option {
	return func(l *Learner) { l.rank = rank }
}

func WithLogger(logger *zap.Logger) Option {
	return func(l *Learner) {
		if logger != nil {
			l.logger = logger
		}
	}
}

func NewLearner(opts ...Option) *Learner {
	l := &Learner{
		kinds:     AllKinds,
		deviation: dag.DefaultDeviation,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Learn returns every predicate that classifies all examples correctly.
// Positive examples (Label true) seed the candidates; every example,
// positive or negative, is checked. No generalizable predicate yields an
// empty list and a nil error.
func (l *Learner) Learn(examples []types.Example) ([]Predicate, error) {
	l.indicator = NewIndicator()

	for i, ex := range examples {
		if ex.Context == nil {
			return nil, fmt.Errorf("%w: example %d", ErrInvalidExample, i)
		}
	}

	decomposed := examples
	if l.strategy != nil {
		var err error
		decomposed, err = l.strategy.Decompose(examples)
		if err != nil {
			return nil, fmt.Errorf("decomposing examples: %w", err)
		}
	}

	var dags []*dag.Dag
	for i, ex := range decomposed {
		if !ex.Label {
			continue
		}
		if l.maxLen > 0 && ex.Context.Len() > l.maxLen {
			return nil, fmt.Errorf("%w: example %d has %d elements, limit %d", ErrSweepTooLarge, i, ex.Context.Len(), l.maxLen)
		}
		d, err := dag.Build(ex.Context, ex.Target(), dag.Sweep, l.deviation)
		if err != nil {
			return nil, fmt.Errorf("building version space for example %d: %w", i, err)
		}
		dags = append(dags, d)
	}
	if len(dags) == 0 {
		l.logger.Debug("no positive examples to learn from")
		return nil, nil
	}

	space, err := dag.Intersect(dags)
	if err != nil {
		return nil, err
	}
	defer space.Clear()
	removed := space.FilterExpressions()

	candidates := candidatePositions(space)
	l.logger.Debug("predicate candidates",
		zap.Int("examples", len(decomposed)),
		zap.Int("vertices", space.NumVertices()),
		zap.Int("filtered", removed),
		zap.Int("candidates", len(candidates)),
	)

	var out []Predicate
	seen := make(map[string]bool)
	for _, p := range candidates {
		merge := p.Merge()
		for _, kind := range l.kinds {
			if !l.indicator.Check(kind, decomposed, merge) {
				continue
			}
			pred := Predicate{Kind: kind, R1: p.R1, R2: p.R2}
			if key := pred.String(); !seen[key] {
				seen[key] = true
				out = append(out, pred)
			}
		}
	}

	if l.rank {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DynamicCount() < out[j].DynamicCount()
		})
	}

	hits, misses := l.indicator.Stats()
	l.logger.Debug("predicates learned",
		zap.Int("predicates", len(out)),
		zap.Int("cache_hits", hits),
		zap.Int("cache_misses", misses),
	)
	return out, nil
}

// LearnSplit would learn from separate positive and negative lists. How
// the negative list should prune or re-rank candidates is undecided, so
// it fails instead of guessing.
func (l *Learner) LearnSplit(positives, negatives []types.Example) ([]Predicate, error) {
	return nil, ErrNotSupported
}

// candidatePositions collects the start position of every SubStr on every
// edge, deduplicated by (R1, R2) since K does not change the merged pattern.
func candidatePositions(d *dag.Dag) []position.Pos {
	var out []position.Pos
	seen := make(map[string]bool)
	for _, id := range d.EdgeStarts() {
		for _, p := range d.Vertex(id).Positions.Items() {
			key := p.R1.String() + "|" + p.R2.String()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, p)
		}
	}
	return out
}
