package scanner

import (
	"context"
	"sync"

	"github.com/blueman82/scanr/internal/matcher"
	"github.com/blueman82/scanr/internal/output"
)

// Dispatcher owns a shared FIFO of pending file paths and fans them out to a
// bounded pool of workers. Each worker claims one path at a time and scans it
// to completion before claiming another; load balancing comes from the shared
// queue rather than static partitioning.
type Dispatcher struct {
	set     *matcher.PatternSet
	sink    *output.Sink
	diag    Diagnostics
	threads int
	opts    Options
}

// NewDispatcher creates a dispatcher over a compiled pattern set. threads is
// the configured upper bound on workers; the effective count never exceeds
// the number of paths.
func NewDispatcher(set *matcher.PatternSet, sink *output.Sink, diag Diagnostics, threads int, opts Options) *Dispatcher {
	return &Dispatcher{
		set:     set,
		sink:    sink,
		diag:    diag,
		threads: threads,
		opts:    opts,
	}
}

// Run scans all paths and returns the joined statistics. Within one file,
// output order is strictly sequential; across files, the interleaving of
// records from different workers is unspecified. Cancellation is checked at
// file boundaries only: a file scan is never preempted mid-stream.
func (d *Dispatcher) Run(ctx context.Context, paths []string) *Stats {
	stats := NewStats()
	if len(paths) == 0 {
		return stats
	}

	workers := d.threads
	if workers > len(paths) {
		workers = len(paths)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan string, len(paths))
	for _, p := range paths {
		jobs <- p
	}
	close(jobs)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fs := NewFileScanner(d.set, d.sink, d.diag, d.opts)
			for {
				select {
				case <-ctx.Done():
					return
				case path, ok := <-jobs:
					if !ok {
						return
					}
					if count, scanned := fs.Scan(path); scanned {
						stats.AddFile(count)
					}
				}
			}
		}()
	}
	wg.Wait()

	return stats
}
