// Package output serializes formatted scan records onto a single writer.
//
// Multiple scanning goroutines share one Sink; a single mutex guarantees that
// a full record (prefix, body, trailing newline) is never interleaved with
// another worker's output. Coloring is handled per-instance via fatih/color
// so behavior does not depend on ambient TTY detection.
package output

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/blueman82/scanr/internal/matcher"
)

// separator is printed between non-adjacent blocks of context output.
const separator = "--"

// Options controls record selection and formatting.
type Options struct {
	// CountOnly prints one "path:count" line per file instead of matches.
	CountOnly bool

	// ListFiles prints each matching file's path once.
	ListFiles bool

	// OnlyMatching prints matched substrings, one per line.
	OnlyMatching bool

	// Quiet suppresses all normal output.
	Quiet bool

	// ShowLineNumbers prefixes records with the 1-based line number.
	ShowLineNumbers bool

	// ShowFilename prefixes records with the source path. The caller decides
	// this from the input count and recursive mode.
	ShowFilename bool

	// Color enables ANSI highlighting of matches and prefixes.
	Color bool
}

// Sink is a thread-safe, mode-aware formatter over a single writer.
type Sink struct {
	mu   sync.Mutex
	out  io.Writer
	opts Options

	fileColor  *color.Color
	numColor   *color.Color
	matchColor *color.Color
}

// NewSink creates a Sink writing to out.
func NewSink(out io.Writer, opts Options) *Sink {
	s := &Sink{
		out:        out,
		opts:       opts,
		fileColor:  color.New(color.FgBlue),
		numColor:   color.New(color.FgGreen),
		matchColor: color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{s.fileColor, s.numColor, s.matchColor} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// MatchLine emits one matched line. In only-matching mode it emits one record
// per span (the matched substring) instead of the whole line.
func (s *Sink) MatchLine(path string, num int, line string, spans []matcher.Span) {
	if s.opts.Quiet || s.opts.CountOnly || s.opts.ListFiles {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opts.OnlyMatching {
		for _, sp := range spans {
			text := line[sp.Start:sp.End()]
			fmt.Fprintf(s.out, "%s%s\n", s.prefix(path, num, ":"), s.matchColor.Sprint(text))
		}
		return
	}

	fmt.Fprintf(s.out, "%s%s\n", s.prefix(path, num, ":"), s.highlight(line, spans))
}

// ContextLine emits one non-matching line that falls inside a context window.
// Context records use '-' delimiters instead of ':'.
func (s *Sink) ContextLine(path string, num int, line string) {
	if s.opts.Quiet || s.opts.CountOnly || s.opts.ListFiles || s.opts.OnlyMatching {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "%s%s\n", s.prefix(path, num, "-"), line)
}

// Separator emits the block separator between non-adjacent groups.
func (s *Sink) Separator() {
	if s.opts.Quiet || s.opts.CountOnly || s.opts.ListFiles || s.opts.OnlyMatching {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out, separator)
}

// Count emits the per-file match count for count-only mode.
func (s *Sink) Count(path string, n int) {
	if s.opts.Quiet || !s.opts.CountOnly {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opts.ShowFilename {
		fmt.Fprintf(s.out, "%s:%d\n", s.fileColor.Sprint(path), n)
	} else {
		fmt.Fprintf(s.out, "%d\n", n)
	}
}

// FileName emits the path of a matching file for list-filenames mode.
func (s *Sink) FileName(path string) {
	if s.opts.Quiet || !s.opts.ListFiles {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out, s.fileColor.Sprint(path))
}

// Summary emits the aggregate result line. Gating (input count, suppressing
// modes) is the caller's concern.
func (s *Sink) Summary(matches, files int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\nTotal matches found: %d in %d files\n", matches, files)
}

// prefix builds the optional "path:" and "num:" record prefix using the given
// delimiter (':' for matches, '-' for context lines).
func (s *Sink) prefix(path string, num int, delim string) string {
	var b strings.Builder
	if s.opts.ShowFilename {
		b.WriteString(s.fileColor.Sprint(path))
		b.WriteString(delim)
	}
	if s.opts.ShowLineNumbers {
		b.WriteString(s.numColor.Sprintf("%d", num))
		b.WriteString(delim)
	}
	return b.String()
}

// highlight splices color markers around each span, left to right. Spans are
// pre-sorted and non-overlapping. Returns the line unchanged when color is
// off or there is nothing to highlight.
func (s *Sink) highlight(line string, spans []matcher.Span) string {
	if !s.opts.Color || len(spans) == 0 {
		return line
	}

	var b strings.Builder
	prev := 0
	for _, sp := range spans {
		if sp.Start < prev || sp.End() > len(line) {
			continue
		}
		b.WriteString(line[prev:sp.Start])
		b.WriteString(s.matchColor.Sprint(line[sp.Start:sp.End()]))
		prev = sp.End()
	}
	b.WriteString(line[prev:])
	return b.String()
}
