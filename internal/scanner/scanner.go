// Package scanner drives pattern matching over input streams: a FileScanner
// reads one stream line by line, a contextWindow decides what surrounding
// lines to emit, and a Dispatcher fans file paths out to a bounded worker
// pool.
package scanner

import (
	"bufio"
	"fmt"
	"os"

	"github.com/blueman82/scanr/internal/fileutil"
	"github.com/blueman82/scanr/internal/matcher"
	"github.com/blueman82/scanr/internal/output"
)

// StdinPath is the sentinel argument selecting standard input.
const StdinPath = "-"

// stdinLabel is how standard input is identified in output and diagnostics.
const stdinLabel = "(standard input)"

// maxLineSize bounds the length of a single scanned line.
const maxLineSize = 1024 * 1024

// OpenError reports a stream that could not be opened for reading. It is
// recovered per file: the scan continues with the remaining inputs.
type OpenError struct {
	Path string
	Err  error
}

// Error implements the error interface for OpenError.
func (e *OpenError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for error wrapping support.
func (e *OpenError) Unwrap() error {
	return e.Err
}

// Diagnostics is the error channel for recoverable per-file failures,
// distinct from the match output stream.
type Diagnostics interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

// Options controls per-stream scanning behavior.
type Options struct {
	// Before and After are the leading/trailing context sizes.
	Before int
	After  int

	// CountOnly suppresses all context-window side effects; only the match
	// count per file is reported.
	CountOnly bool

	// ListFiles reports each matching file once and allows the scanner to
	// stop at the first match.
	ListFiles bool

	// SkipBinary skips files whose leading bytes contain a NUL.
	SkipBinary bool
}

// FileScanner scans streams one at a time against a shared compiled pattern
// set. A FileScanner is used by a single worker; only the pattern set, sink
// and diagnostics are shared across workers.
type FileScanner struct {
	set  *matcher.PatternSet
	sink *output.Sink
	diag Diagnostics
	opts Options
}

// NewFileScanner creates a scanner over the given compiled set.
func NewFileScanner(set *matcher.PatternSet, sink *output.Sink, diag Diagnostics, opts Options) *FileScanner {
	return &FileScanner{set: set, sink: sink, diag: diag, opts: opts}
}

// Scan reads one stream line by line and returns the number of selected
// lines, plus whether the stream was actually scanned. Open failures are
// reported through the diagnostic channel and return scanned=false; they
// never abort the overall run. Binary-skipped files also return
// scanned=false so aggregate file counts reflect only inputs that were
// read.
func (fs *FileScanner) Scan(path string) (int, bool) {
	var (
		in    *os.File
		label string
	)

	if path == StdinPath {
		in = os.Stdin
		label = stdinLabel
	} else {
		if fs.opts.SkipBinary {
			if binary, err := fileutil.IsBinary(path); err == nil && binary {
				fs.diag.Debugf("%s: skipping binary file", path)
				return 0, false
			}
		}

		f, err := os.Open(path)
		if err != nil {
			fs.diag.Warnf("%v", &OpenError{Path: path, Err: err})
			return 0, false
		}
		defer f.Close()
		in = f
		label = path
	}

	count := fs.scanLines(in, label)

	if fs.opts.CountOnly {
		fs.sink.Count(label, count)
	}
	if fs.opts.ListFiles && count > 0 {
		fs.sink.FileName(label)
	}
	return count, true
}

// scanLines runs the match/context pipeline over an open stream.
func (fs *FileScanner) scanLines(in *os.File, label string) int {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)

	var window *contextWindow
	if !fs.opts.CountOnly && !fs.opts.ListFiles {
		window = newContextWindow(fs.sink, label, fs.opts.Before, fs.opts.After)
	}

	count := 0
	num := 0
	for sc.Scan() {
		num++
		line := sc.Text()

		selected, spans := fs.set.Match(line)
		if selected {
			count++
		}

		if fs.opts.ListFiles && selected {
			// One match is enough to list the file; stop reading.
			break
		}
		if window != nil {
			window.Process(lineRecord{num: num, text: line, spans: spans}, selected)
		}
	}

	if err := sc.Err(); err != nil {
		fs.diag.Warnf("%s: %v", label, err)
	}
	return count
}
