package scanner

import (
	"github.com/blueman82/scanr/internal/matcher"
	"github.com/blueman82/scanr/internal/output"
)

// lineRecord is the transient per-line unit passed through the context
// window. Spans are empty for non-matching and inverted lines.
type lineRecord struct {
	num   int
	text  string
	spans []matcher.Span
}

// contextWindow tracks the leading/trailing context state for one stream.
// It is exclusively owned by the worker scanning that stream.
//
// Invariants: the leading buffer never holds more than `before` records, no
// line number is emitted twice, and exactly one separator is printed between
// non-adjacent emitted blocks.
type contextWindow struct {
	sink   *output.Sink
	path   string
	before int
	after  int

	buf               []lineRecord // bounded FIFO of recent non-emitted candidates
	trailingRemaining int
	lastEmitted       int
}

func newContextWindow(sink *output.Sink, path string, before, after int) *contextWindow {
	w := &contextWindow{
		sink:   sink,
		path:   path,
		before: before,
		after:  after,
	}
	if before > 0 {
		w.buf = make([]lineRecord, 0, before+1)
	}
	return w
}

// hasContext reports whether any context window is configured. Separators
// are only meaningful in that case.
func (w *contextWindow) hasContext() bool {
	return w.before > 0 || w.after > 0
}

// Process advances the state machine by one line. selected reports whether
// the line itself is chosen for output (matched XOR invert, already resolved
// by the matcher).
func (w *contextWindow) Process(rec lineRecord, selected bool) {
	switch {
	case selected:
		// Flush buffered leading context newer than the last emitted line,
		// then the line itself. The flush skips anything already printed as
		// trailing context of a previous match.
		for _, b := range w.buf {
			if b.num <= w.lastEmitted {
				continue
			}
			w.emitContext(b)
		}
		w.emitMatch(rec)
		w.trailingRemaining = w.after

	case w.trailingRemaining > 0 && rec.num > w.lastEmitted:
		w.emitContext(rec)
		w.trailingRemaining--
	}

	if w.before > 0 {
		w.buf = append(w.buf, rec)
		if len(w.buf) > w.before {
			w.buf = w.buf[1:]
		}
	}
}

// emitMatch prints a selected line, preceded by a separator if this block is
// not adjacent to the previous one.
func (w *contextWindow) emitMatch(rec lineRecord) {
	w.separatorOnGap(rec.num)
	w.sink.MatchLine(w.path, rec.num, rec.text, rec.spans)
	w.lastEmitted = rec.num
}

// emitContext prints a context line with the same separator rule.
func (w *contextWindow) emitContext(rec lineRecord) {
	w.separatorOnGap(rec.num)
	w.sink.ContextLine(w.path, rec.num, rec.text)
	w.lastEmitted = rec.num
}

// separatorOnGap prints one separator when the next emitted line is not the
// direct successor of the last emitted one. Since every emission goes through
// here and updates lastEmitted, a gap produces exactly one separator.
func (w *contextWindow) separatorOnGap(num int) {
	if w.hasContext() && w.lastEmitted > 0 && num > w.lastEmitted+1 {
		w.sink.Separator()
	}
}
