// Package deletion performs best-effort recursive removal of marked
// entries, adapted from theweak1-file-maintenance's delete.go worker
// pattern for a single draining pass instead of a continuous queue.
package deletion

import (
	"os"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/otuschhoff/dskusage/internal/mark"
	"github.com/otuschhoff/dskusage/internal/workpool"
)

// Result reports the outcome of deleting a single marked entry.
type Result struct {
	Entry mark.Entry
	Err   error
}

// Progress is invoked periodically during Run so the caller can redraw.
// n is the number of entries processed so far; total is the number
// originally drained.
type Progress func(n, total int)

// YieldEvery is the number of completions between Progress callbacks, per
// spec.md §4.8 ("redraw every K>=16 entries"); the extra callback after the
// last completion may follow fewer than YieldEvery.
const YieldEvery = 16

// deletionJob is one unit of work submitted to the pool: the entry to
// delete plus its original index, so results can be written back into
// results in the same order entries were given regardless of which
// worker finishes first.
type deletionJob struct {
	idx   int
	entry mark.Entry
}

// Run deletes every entry in entries via os.RemoveAll (a best-effort
// recursive delete: a directory partially removed due to a permission
// error still has its other contents removed), spread across a bounded
// workpool.Pool so independent marked subtrees are removed concurrently.
// results[i] always corresponds to entries[i], independent of completion
// order. progress is called every YieldEvery completions and once more
// after the last one; calls are serialized so a caller redrawing a
// terminal from it never has to guard against concurrent invocations.
func Run(entries []mark.Entry, progress Progress) []Result {
	results := make([]Result, len(entries))
	if len(entries) == 0 {
		return results
	}

	var done int64
	var progressMu sync.Mutex

	workers := runtime.NumCPU()
	if workers > len(entries) {
		workers = len(entries)
	}

	pool := workpool.New(workers, func(j deletionJob) error {
		err := os.RemoveAll(j.entry.Path)
		results[j.idx] = Result{Entry: j.entry, Err: err}

		n := atomic.AddInt64(&done, 1)
		if progress != nil && (n%YieldEvery == 0 || int(n) == len(entries)) {
			progressMu.Lock()
			progress(int(n), len(entries))
			progressMu.Unlock()
		}
		return nil
	})

	for i, e := range entries {
		pool.Submit(deletionJob{idx: i, entry: e})
	}
	pool.Close()

	return results
}

// Summarize splits Run's results into succeeded and failed entries.
func Summarize(results []Result) (succeeded, failed []Result) {
	for _, r := range results {
		if r.Err == nil {
			succeeded = append(succeeded, r)
		} else {
			failed = append(failed, r)
		}
	}
	return succeeded, failed
}
