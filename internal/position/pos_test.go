package position

import (
	"testing"

	"github.com/marcioaug/Refazer-sub001/internal/token"
	"github.com/marcioaug/Refazer-sub001/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exact(kinds ...string) token.Pattern {
	ms := make([]token.Matcher, len(kinds))
	for i, k := range kinds {
		ms[i] = token.Matcher{Kind: token.Exact, Tag: k}
	}
	return token.NewPattern(ms...)
}

func TestResolve(t *testing.T) {
	t.Parallel()
	abab := types.Kinds("A", "B", "A", "B", "A", "B")

	tests := []struct {
		name string
		seq  types.Sequence
		r1   token.Pattern
		r2   token.Pattern
		k    int
		want int
	}{
		{"second A·B from the start", abab, exact("A"), exact("B"), 2, 3},
		{"last A·B", abab, exact("A"), exact("B"), -1, 5},
		{"first A·B", abab, exact("A"), exact("B"), 1, 1},
		{"third from the end", abab, exact("A"), exact("B"), -3, 1},
		{"empty r1 lands on start of r2", abab, token.Empty, exact("B"), 1, 1},
		{"empty r2 lands after r1", abab, exact("A"), token.Empty, 2, 3},
		{"no occurrence", abab, exact("B"), exact("B"), 1, NotFound},
		{"rank past the end", abab, exact("A"), exact("B"), 4, NotFound},
		{"negative rank past the start", abab, exact("A"), exact("B"), -4, NotFound},
		{"zero rank", abab, exact("A"), exact("B"), 0, NotFound},
		{"nil sequence", nil, exact("A"), exact("B"), 1, NotFound},
		{"both patterns empty", abab, token.Empty, token.Empty, 1, NotFound},
		{"pattern wider than sequence", types.Kinds("A"), exact("A"), exact("B"), 1, NotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Resolve(tt.seq, tt.r1, tt.r2, tt.k)
			assert.Equal(t, tt.want, got)

			// the memoized resolver agrees with the plain function
			if tt.seq != nil {
				r := NewResolver(tt.seq)
				assert.Equal(t, tt.want, r.Resolve(Pos{R1: tt.r1, R2: tt.r2, K: tt.k}))
			}
		})
	}
}

func TestResolveRankSymmetry(t *testing.T) {
	t.Parallel()
	seq := types.Kinds("A", "B", "C", "A", "B", "A", "B", "C")
	pairs := []struct{ r1, r2 token.Pattern }{
		{exact("A"), exact("B")},
		{token.Empty, exact("B")},
		{exact("B"), token.Empty},
		{exact("A", "B"), exact("C")},
	}
	for _, pair := range pairs {
		l := len(token.MatchesConcat(seq, pair.r1, pair.r2))
		require.NotZero(t, l)
		for i := 0; i < l; i++ {
			fromStart := Resolve(seq, pair.r1, pair.r2, i+1)
			fromEnd := Resolve(seq, pair.r1, pair.r2, i-l)
			assert.NotEqual(t, NotFound, fromStart)
			assert.Equal(t, fromStart, fromEnd, "occurrence %d of %s·%s", i, pair.r1, pair.r2)
		}
	}
}

func TestResolveEmptyPatternLaw(t *testing.T) {
	t.Parallel()
	seq := types.Kinds("C", "B", "A", "B", "C", "A")
	r := exact("B")
	for i, occ := range token.Matches(seq, r) {
		assert.Equal(t, occ.Start, Resolve(seq, token.Empty, r, i+1))
		assert.Equal(t, occ.End(), Resolve(seq, r, token.Empty, i+1))
	}
}

func TestFindBoundarySharedElement(t *testing.T) {
	t.Parallel()
	// r1 = [A] and r2 = [A]: the element closing r1 also opens r2,
	// so the boundary moves left onto it.
	seq := types.Kinds("B", "A", "A", "B")
	assert.Equal(t, 1, Resolve(seq, exact("A"), exact("A"), 1))

	// Without the ambiguity the boundary sits after r1.
	assert.Equal(t, 2, Resolve(types.Kinds("B", "A", "C"), exact("A"), exact("C"), 1))
}

func TestFindBoundaryPanicsOnInconsistentWindow(t *testing.T) {
	t.Parallel()
	seq := types.Kinds("A", "B")
	assert.Panics(t, func() {
		FindBoundary(seq, exact("C"), exact("B"), 0, seq)
	})
}

func TestPosString(t *testing.T) {
	t.Parallel()
	p := Pos{R1: token.Empty, R2: exact("B"), K: -1}
	assert.Equal(t, "Pos(Empty, [B], -1)", p.String())

	s := SubStr{P1: p, P2: Pos{R1: exact("A"), R2: token.Empty, K: 2}}
	assert.Equal(t, "SubStr(Pos(Empty, [B], -1), Pos([A], Empty, 2))", s.String())
}

func TestPosEqual(t *testing.T) {
	t.Parallel()
	a := Pos{R1: exact("A"), R2: exact("B"), K: 1}
	b := Pos{R1: exact("A"), R2: exact("B"), K: 1}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(Pos{R1: exact("A"), R2: exact("B"), K: -1}))
	assert.False(t, a.Equal(Pos{R1: exact("A"), R2: exact("C"), K: 1}))
	assert.True(t, a.Merge().Equal(exact("A", "B")))
}

func TestSubStrExtract(t *testing.T) {
	t.Parallel()
	seq := types.Kinds("(", "A", "B", ")", ";")
	s := SubStr{
		P1: Pos{R1: exact("("), R2: token.Empty, K: 1},
		P2: Pos{R1: token.Empty, R2: exact(")"), K: 1},
	}
	r, ok := s.Extract(seq)
	require.True(t, ok)
	assert.Equal(t, types.Region{Start: 1, Len: 2}, r)

	reversed := SubStr{P1: s.P2, P2: s.P1}
	_, ok = reversed.Extract(types.Kinds("(", ")", "A", ")"))
	assert.True(t, ok)
	_, ok = SubStr{P1: Pos{R1: exact(")"), K: 1}, P2: Pos{R2: exact("("), K: 1}}.Extract(seq)
	assert.False(t, ok, "end before start")

	_, ok = s.Extract(types.Kinds("A", "B"))
	assert.False(t, ok)
}

func TestResolverClear(t *testing.T) {
	t.Parallel()
	seq := types.Kinds("A", "B")
	r := NewResolver(seq)
	p := Pos{R1: exact("A"), R2: exact("B"), K: 1}
	assert.Equal(t, 1, r.Resolve(p))
	assert.Len(t, r.occurrences, 1)
	r.Clear()
	assert.Empty(t, r.occurrences)
	assert.Equal(t, 1, r.Resolve(p))
}
