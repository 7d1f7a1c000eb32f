package internal

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	tt "github.com/marcioaug/Refazer-sub001/internal/types"
)

const (
	tabWidth = 8
)

var (
	matchStyle   = color.New(color.FgGreen, color.Bold)
	ruleStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgBlue, color.Bold)
	messageStyle = color.New(color.FgGreen, color.Bold)
)

// FormatLocationsWithArrows renders located regions of one file with the
// source lines they span and a marker under the first line.
func FormatLocationsWithArrows(locations []tt.Location, sourceCode *SourceCode) string {
	var builder strings.Builder
	for _, loc := range locations {
		builder.WriteString(formatLocationHeader(loc))
		builder.WriteString(formatLocation(loc, sourceCode))
	}
	return builder.String()
}

func formatLocationHeader(loc tt.Location) string {
	return matchStyle.Sprint("match: ") + ruleStyle.Sprint(loc.Rule) + "\n" +
		lineStyle.Sprint(" --> ") + fileStyle.Sprintf("%s:%d:%d", loc.Filename, loc.Start.Line, loc.Start.Column) + "\n"
}

func formatLocation(loc tt.Location, sourceCode *SourceCode) string {
	var result strings.Builder

	startLine, endLine := loc.Start.Line, loc.End.Line
	if endLine > len(sourceCode.Lines) {
		endLine = len(sourceCode.Lines)
	}
	if startLine < 1 || startLine > endLine {
		result.WriteString(messageStyle.Sprintf("  = %s\n\n", loc.Message))
		return result.String()
	}

	maxLineNumberStr := fmt.Sprintf("%d", endLine)
	padding := strings.Repeat(" ", len(maxLineNumberStr)-1)
	result.WriteString(lineStyle.Sprintf("  %s|\n", padding))

	for i := startLine; i <= endLine; i++ {
		line := expandTabs(sourceCode.Lines[i-1])
		lineNumberStr := fmt.Sprintf("%d", i)
		linePadding := strings.Repeat(" ", len(maxLineNumberStr)-len(lineNumberStr))
		result.WriteString(lineStyle.Sprintf("%s%s | ", linePadding, lineNumberStr))
		result.WriteString(line + "\n")
	}

	first := sourceCode.Lines[startLine-1]
	startColumn := calculateVisualColumn(first, loc.Start.Column)
	endColumn := calculateVisualColumn(first, len(first)+1)
	if loc.End.Line == startLine {
		endColumn = calculateVisualColumn(first, loc.End.Column)
	}
	width := endColumn - startColumn
	if width < 1 {
		width = 1
	}

	result.WriteString(lineStyle.Sprintf("  %s| ", padding))
	result.WriteString(strings.Repeat(" ", startColumn))
	result.WriteString(messageStyle.Sprintf("%s %s\n\n", strings.Repeat("^", width), loc.Message))

	return result.String()
}

func expandTabs(line string) string {
	var expanded strings.Builder
	for i, ch := range line {
		if ch == '\t' {
			spaceCount := tabWidth - (i % tabWidth)
			expanded.WriteString(strings.Repeat(" ", spaceCount))
		} else {
			expanded.WriteRune(ch)
		}
	}
	return expanded.String()
}

func calculateVisualColumn(line string, column int) int {
	visualColumn := 0
	for i, ch := range line {
		if i+1 == column {
			break
		}
		if ch == '\t' {
			visualColumn += tabWidth - (visualColumn % tabWidth)
		} else {
			visualColumn++
		}
	}
	return visualColumn
}
