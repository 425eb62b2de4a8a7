package matcher

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// matchLiteral implements the literal strategy: case-sensitive or case-folded
// substring search with explicit word-boundary validation. Normal matching
// short-circuits after the first pattern with an accepted occurrence but
// reports all of that pattern's occurrences; only-matching searches across
// all patterns.
func (ps *PatternSet) matchLiteral(line string) (bool, []Span) {
	hay := line
	if ps.opts.IgnoreCase {
		hay = foldASCII(line)
	}

	if ps.opts.WholeLine {
		for _, pat := range ps.literals {
			if hay == pat {
				return true, []Span{{Start: 0, Len: len(line)}}
			}
		}
		return false, nil
	}

	if ps.opts.OnlyMatching {
		var spans []Span
		for _, pat := range ps.literals {
			spans = append(spans, ps.findLiteral(line, hay, pat)...)
		}
		if len(spans) == 0 {
			return false, nil
		}
		return true, mergeSpans(spans)
	}

	for _, pat := range ps.literals {
		if spans := ps.findLiteral(line, hay, pat); len(spans) > 0 {
			return true, spans
		}
	}
	return false, nil
}

// findLiteral locates every occurrence of pat in hay. line is the unfolded
// original, used for boundary inspection so span offsets refer to it.
// A candidate rejected by the boundary check advances the search position by
// one character and retries rather than skipping past the candidate.
func (ps *PatternSet) findLiteral(line, hay, pat string) []Span {
	var spans []Span
	pos := 0
	for pos <= len(hay) {
		idx := strings.Index(hay[pos:], pat)
		if idx < 0 {
			break
		}
		start := pos + idx
		end := start + len(pat)

		if ps.opts.WholeWord && !onWordBoundary(line, start, end) {
			_, size := utf8.DecodeRuneInString(line[start:])
			pos = start + size
			continue
		}

		spans = append(spans, Span{Start: start, Len: len(pat)})
		pos = end
	}
	return spans
}

// onWordBoundary reports whether the [start, end) candidate begins and ends
// at a transition between a word-class and non-word-class character, or at
// the start/end of the line.
func onWordBoundary(line string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(line[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(line) {
		r, _ := utf8.DecodeRuneInString(line[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

// isWordRune mirrors the \w character class: letters, digits and underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
