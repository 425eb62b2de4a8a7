package scanner

import "sync/atomic"

// Stats aggregates counters across all workers of one dispatch. It is
// created per invocation and shared by reference; counters are updated via
// atomic increments and are stable once the dispatcher has joined its
// workers.
type Stats struct {
	matchedLines     int64
	filesScanned     int64
	filesWithMatches int64
}

// NewStats returns a zeroed aggregator.
func NewStats() *Stats {
	return &Stats{}
}

// AddFile records the completion of one successfully opened file scan with
// the given match count. Unreadable and skipped files are not recorded.
func (s *Stats) AddFile(matches int) {
	atomic.AddInt64(&s.filesScanned, 1)
	atomic.AddInt64(&s.matchedLines, int64(matches))
	if matches > 0 {
		atomic.AddInt64(&s.filesWithMatches, 1)
	}
}

// MatchedLines returns the total number of selected lines.
func (s *Stats) MatchedLines() int64 {
	return atomic.LoadInt64(&s.matchedLines)
}

// FilesScanned returns the number of files read to completion, matched or
// not.
func (s *Stats) FilesScanned() int64 {
	return atomic.LoadInt64(&s.filesScanned)
}

// FilesWithMatches returns the number of files that contained at least one
// selected line.
func (s *Stats) FilesWithMatches() int64 {
	return atomic.LoadInt64(&s.filesWithMatches)
}
