// Package matcher compiles search patterns and applies them to single lines.
//
// A compiled PatternSet is immutable and safe for unsynchronized concurrent
// use by multiple scanning goroutines. Two matching strategies are provided:
// literal substring search (the default) and regular expressions, selected at
// compile time via Options.UseRegex.
package matcher

import (
	"sort"
)

// Span identifies one matched region of a line as byte offsets.
type Span struct {
	Start int // byte offset of the first matched byte
	Len   int // length of the match in bytes
}

// End returns the byte offset one past the last matched byte.
func (s Span) End() int { return s.Start + s.Len }

// Options controls how patterns are compiled and how lines are matched.
type Options struct {
	// IgnoreCase performs case-insensitive matching (ASCII folding in
	// literal mode, (?i) in regex mode).
	IgnoreCase bool

	// WholeWord requires matches to begin and end on a word boundary.
	WholeWord bool

	// WholeLine requires the match to cover the entire line.
	WholeLine bool

	// UseRegex treats patterns as regular expressions instead of literals.
	UseRegex bool

	// InvertMatch selects lines that do not match. Inverted matches carry
	// no spans.
	InvertMatch bool

	// OnlyMatching reports every non-overlapping occurrence instead of
	// stopping at the first matching pattern.
	OnlyMatching bool
}

// Match applies the set to one line. The returned spans are sorted ascending
// by start offset and pairwise non-overlapping. In normal mode matching
// short-circuits at the first pattern that matches and reports every
// occurrence of that pattern; in only-matching mode every occurrence of every
// pattern is collected. InvertMatch is applied last: it flips the result and
// discards spans.
func (ps *PatternSet) Match(line string) (bool, []Span) {
	var (
		matched bool
		spans   []Span
	)
	if ps.opts.UseRegex {
		matched, spans = ps.matchRegex(line)
	} else {
		matched, spans = ps.matchLiteral(line)
	}

	if ps.opts.InvertMatch {
		return !matched, nil
	}
	return matched, spans
}

// mergeSpans sorts spans ascending by start and drops any span overlapping
// the one accepted before it. Ties on start keep the longer span.
func mergeSpans(spans []Span) []Span {
	if len(spans) <= 1 {
		return spans
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].Len > spans[j].Len
	})

	merged := spans[:1]
	for _, s := range spans[1:] {
		if s.Start < merged[len(merged)-1].End() {
			continue
		}
		merged = append(merged, s)
	}
	return merged
}
