package internal

import (
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	tt "github.com/marcioaug/Refazer-sub001/internal/types"
)

func TestFormatLocationsWithArrows(t *testing.T) {
	t.Parallel()
	code := "package main\n\nfunc main() {\n\tfmt.Println(x)\n}"
	sourceCode := NewSourceCode([]byte(code))

	locations := []tt.Location{
		{
			Rule:     "contains",
			Filename: "main.go",
			Message:  "Contains([.], Empty)",
			Snippet:  "fmt.Println(x)",
			Start:    token.Position{Filename: "main.go", Line: 4, Column: 2},
			End:      token.Position{Filename: "main.go", Line: 4, Column: 16},
		},
	}

	out := FormatLocationsWithArrows(locations, sourceCode)
	t.Logf("Located regions with arrows:\n%s", out)

	assert.Contains(t, out, "match: ")
	assert.Contains(t, out, "contains")
	assert.Contains(t, out, "main.go:4:2")
	assert.Contains(t, out, "4 | ")
	assert.Contains(t, out, "fmt.Println(x)")
	assert.Contains(t, out, strings.Repeat("^", 14)+" Contains([.], Empty)")
}

func TestFormatLocationOutsideSource(t *testing.T) {
	t.Parallel()
	out := FormatLocationsWithArrows([]tt.Location{{
		Rule:    "ends_with",
		Message: "EndsWith([)], [;])",
		Start:   token.Position{Line: 40, Column: 1},
		End:     token.Position{Line: 41, Column: 1},
	}}, NewSourceCode([]byte("package main")))
	assert.Contains(t, out, "= EndsWith([)], [;])")
}

func TestCalculateVisualColumn(t *testing.T) {
	t.Parallel()
	tests := []struct {
		line   string
		column int
		want   int
	}{
		{"abc", 1, 0},
		{"abc", 3, 2},
		{"\tx", 2, 8},
		{"a\tx", 3, 8},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, calculateVisualColumn(tt.line, tt.column), "%q col %d", tt.line, tt.column)
	}
}
