package token

import "github.com/marcioaug/Refazer-sub001/internal/types"

// Occurrence is one contiguous window of a sequence matched by a pattern.
type Occurrence struct {
	Start  int
	Window types.Sequence
}

// End returns the index just past the matched window.
func (o Occurrence) End() int { return o.Start + o.Window.Len() }

// Matches returns every index at which p aligns with seq, in increasing
// start order. Overlapping occurrences are all reported.
// An empty pattern, or a nil sequence, matches nowhere.
func Matches(seq types.Sequence, p Pattern) []Occurrence {
	if seq == nil || p.IsEmpty() {
		return nil
	}
	var out []Occurrence
	pos := 0
	for {
		found, start := findNextMatch(p, seq, pos)
		if !found {
			return out
		}
		out = append(out, Occurrence{Start: start, Window: seq.Subrange(start, p.Len())})
		pos = start + 1
	}
}

// MatchesConcat matches r1·r2 as one combined pattern.
// Matching r1 and r2 separately and stitching the results is not equivalent.
func MatchesConcat(seq types.Sequence, r1, r2 Pattern) []Occurrence {
	return Matches(seq, r1.Concat(r2))
}

// FirstMatch returns the leftmost occurrence of p in seq.
func FirstMatch(seq types.Sequence, p Pattern) (Occurrence, bool) {
	if seq == nil || p.IsEmpty() {
		return Occurrence{}, false
	}
	found, start := findNextMatch(p, seq, 0)
	if !found {
		return Occurrence{}, false
	}
	return Occurrence{Start: start, Window: seq.Subrange(start, p.Len())}, true
}

// findNextMatch finds the leftmost alignment of p at or after start.
func findNextMatch(p Pattern, seq types.Sequence, start int) (bool, int) {
	last := seq.Len() - p.Len()
	for i := start; i <= last; i++ {
		// cheap first-element check before the full window
		if !p.At(0).Matches(seq.At(i)) {
			continue
		}
		if p.MatchesAt(seq, i) {
			return true, i
		}
	}
	return false, 0
}
