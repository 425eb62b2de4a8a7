package matcher

import (
	"fmt"
	"regexp"
)

// PatternError reports a pattern that failed to compile.
// It is fatal: no scanning begins once compilation has failed.
type PatternError struct {
	Pattern string // the raw pattern as supplied by the user
	Err     error  // underlying syntax error
}

// Error implements the error interface for PatternError.
func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying error for error wrapping support.
func (e *PatternError) Unwrap() error {
	return e.Err
}

// PatternSet holds the compiled form of one or more patterns.
// It is read-only after Compile and safe for concurrent use; Go's regexp
// matching requires no per-goroutine state, so a single set is shared by
// every worker.
type PatternSet struct {
	opts     Options
	regexps  []*regexp.Regexp
	literals []string
}

// Options returns the options the set was compiled with.
func (ps *PatternSet) Options() Options { return ps.opts }

// Len returns the number of compiled patterns.
func (ps *PatternSet) Len() int {
	if ps.opts.UseRegex {
		return len(ps.regexps)
	}
	return len(ps.literals)
}

// Compile compiles raw patterns under the given options. It returns a
// *PatternError for the first pattern that is empty or not syntactically
// valid.
func Compile(patterns []string, opts Options) (*PatternSet, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("at least one pattern is required")
	}
	for _, p := range patterns {
		if p == "" {
			return nil, &PatternError{Pattern: p, Err: fmt.Errorf("empty pattern")}
		}
	}

	ps := &PatternSet{opts: opts}

	if opts.UseRegex {
		for _, p := range patterns {
			re, err := compileRegex(p, opts)
			if err != nil {
				return nil, &PatternError{Pattern: p, Err: err}
			}
			ps.regexps = append(ps.regexps, re)
		}
		return ps, nil
	}

	for _, p := range patterns {
		if opts.IgnoreCase {
			p = foldASCII(p)
		}
		ps.literals = append(ps.literals, p)
	}
	return ps, nil
}

// compileRegex brackets a single pattern according to the word/line/case
// options and compiles it.
func compileRegex(pattern string, opts Options) (*regexp.Regexp, error) {
	expr := pattern
	if opts.WholeWord {
		expr = `\b(?:` + expr + `)\b`
	}
	if opts.WholeLine {
		expr = `^(?:` + expr + `)$`
	}
	if opts.IgnoreCase {
		expr = `(?i)` + expr
	}
	return regexp.Compile(expr)
}

// matchRegex implements the regex strategy. Only-matching collects every
// non-overlapping occurrence of every pattern; normal matching stops at the
// first pattern that matches but still reports all of that pattern's
// occurrences, so highlighting covers the whole line.
func (ps *PatternSet) matchRegex(line string) (bool, []Span) {
	if ps.opts.OnlyMatching {
		var spans []Span
		for _, re := range ps.regexps {
			for _, loc := range re.FindAllStringIndex(line, -1) {
				spans = append(spans, Span{Start: loc[0], Len: loc[1] - loc[0]})
			}
		}
		if len(spans) == 0 {
			return false, nil
		}
		return true, mergeSpans(spans)
	}

	for _, re := range ps.regexps {
		locs := re.FindAllStringIndex(line, -1)
		if len(locs) == 0 {
			continue
		}
		spans := make([]Span, 0, len(locs))
		for _, loc := range locs {
			spans = append(spans, Span{Start: loc[0], Len: loc[1] - loc[0]})
		}
		return true, spans
	}
	return false, nil
}

// foldASCII lowercases ASCII letters without changing byte offsets.
// Unicode-aware folding would shift offsets for multi-byte characters, which
// would break span reporting against the original line.
func foldASCII(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
