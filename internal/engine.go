package internal

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/marcioaug/Refazer-sub001/internal/dag"
	"github.com/marcioaug/Refazer-sub001/internal/decompose"
	"github.com/marcioaug/Refazer-sub001/internal/gosource"
	"github.com/marcioaug/Refazer-sub001/internal/position"
	"github.com/marcioaug/Refazer-sub001/internal/predicate"
	tt "github.com/marcioaug/Refazer-sub001/internal/types"
)

// Engine learns programs from examples and locates their matches in
// source files. Learning is single threaded; Locate may be called from
// several goroutines at once.
type Engine struct {
	config   Config
	kinds    []predicate.Kind
	strategy decompose.Strategy
	cache    *Cache
	logger   *zap.Logger
}

// NewEngine creates an engine for the given configuration.
func NewEngine(config Config, logger *zap.Logger) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	kinds, err := config.Kinds()
	if err != nil {
		return nil, err
	}
	strategy, err := decompose.Lookup(config.Strategy)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		config:   config,
		kinds:    kinds,
		strategy: strategy,
		cache:    NewCache(),
		logger:   logger,
	}, nil
}

func (e *Engine) Config() Config { return e.config }
func (e *Engine) Cache() *Cache  { return e.cache }

// newLearner returns a fresh learner; its memo cache must not outlive
// one Learn call.
func (e *Engine) newLearner() *predicate.Learner {
	return predicate.NewLearner(
		predicate.WithKinds(e.kinds...),
		predicate.WithStrategy(e.strategy),
		predicate.WithDeviation(e.config.Deviation),
		predicate.WithMaxSequenceLen(e.config.MaxSequenceLen),
		predicate.WithRanking(e.config.RankBySpecificity),
		predicate.WithLogger(e.logger),
	)
}

// Learn generalizes a program from examples.
func (e *Engine) Learn(examples []tt.Example) (*Program, error) {
	preds, err := e.newLearner().Learn(examples)
	if err != nil {
		return nil, err
	}

	extract, err := e.learnExtraction(examples)
	if err != nil {
		return nil, err
	}

	e.logger.Info("Learned program",
		zap.Int("examples", len(examples)),
		zap.Int("predicates", len(preds)),
		zap.Bool("extraction", extract != nil),
	)
	return &Program{Predicates: preds, Extract: extract}, nil
}

// LearnSet resolves and learns from an example set.
func (e *Engine) LearnSet(set ExampleSet) (*Program, error) {
	examples, err := e.Examples(set.Examples)
	if err != nil {
		return nil, err
	}
	return e.Learn(examples)
}

// learnExtraction intersects the region version spaces of the positive
// examples that designate a region and returns the best expression on the
// target edge, or nil when none generalizes.
func (e *Engine) learnExtraction(examples []tt.Example) (*position.SubStr, error) {
	decomposed, err := e.strategy.Decompose(examples)
	if err != nil {
		return nil, fmt.Errorf("decomposing examples: %w", err)
	}

	var dags []*dag.Dag
	for i, ex := range decomposed {
		if !ex.Label || ex.Region == nil {
			continue
		}
		d, err := dag.Build(ex.Context, *ex.Region, dag.Region, e.config.Deviation)
		if err != nil {
			return nil, fmt.Errorf("building region space for example %d: %w", i, err)
		}
		dags = append(dags, d)
	}
	if len(dags) == 0 {
		return nil, nil
	}

	space, err := dag.Intersect(dags)
	if err != nil {
		return nil, err
	}
	defer space.Clear()
	space.FilterExpressions()

	target, ok := space.Target()
	if !ok {
		e.logger.Debug("no extraction generalizes", zap.Int("examples", len(dags)))
		return nil, nil
	}
	return bestExtraction(target.All()), nil
}

// Locate reads filename and returns the regions the program selects.
func (e *Engine) Locate(program *Program, filename string) ([]tt.Location, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return e.LocateSource(program, filename, src)
}

// LocateSource applies the program to every statement of src. Only the
// innermost of nested selected statements is reported. When the program
// has an extraction that resolves inside a statement, the extracted
// region is reported instead of the whole statement.
func (e *Engine) LocateSource(program *Program, filename string, src []byte) ([]tt.Location, error) {
	if program.Empty() {
		return nil, nil
	}
	doc, err := e.cache.Document(filename, src)
	if err != nil {
		return nil, err
	}

	stmts := doc.Statements()
	var selected []tt.Region
	for _, stmt := range stmts {
		if program.Selects(doc.Subrange(stmt.Start, stmt.Len)) {
			selected = append(selected, stmt)
		}
	}
	selected = innermost(selected)

	best := program.Predicates[0]
	locations := make([]tt.Location, 0, len(selected))
	for _, stmt := range selected {
		region := e.extractIn(doc, program, stmt)
		start, end := doc.Positions(region)
		locations = append(locations, tt.Location{
			Rule:     best.Kind.Name(),
			Filename: filename,
			Message:  best.String(),
			Snippet:  doc.Text(region),
			Start:    start,
			End:      end,
		})
	}

	e.logger.Debug("Located matches",
		zap.String("file", filename),
		zap.Int("statements", len(stmts)),
		zap.Int("matches", len(locations)),
	)
	return locations, nil
}

func (e *Engine) extractIn(doc *gosource.Document, program *Program, stmt tt.Region) tt.Region {
	if program.Extract == nil {
		return stmt
	}
	r, ok := program.Extract.Extract(doc.Subrange(stmt.Start, stmt.Len))
	if !ok || r.Len == 0 {
		return stmt
	}
	return tt.Region{Start: stmt.Start + r.Start, Len: r.Len}
}

// innermost drops every region that contains another region of the list.
func innermost(regions []tt.Region) []tt.Region {
	var out []tt.Region
	for i, r := range regions {
		nested := false
		for j, o := range regions {
			if i != j && r != o && r.Start <= o.Start && o.End() <= r.End() {
				nested = true
				break
			}
		}
		if !nested {
			out = append(out, r)
		}
	}
	return out
}
