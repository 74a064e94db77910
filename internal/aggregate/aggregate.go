// Package aggregate implements the non-interactive "walk and sum" mode
// (spec.md §4.4), grounded on the original dua-cli's aggregate.rs: one
// shared InodeFilter across every root, per-root byte/error accumulation,
// and an optional final total line.
package aggregate

import (
	"fmt"
	"sort"

	"github.com/otuschhoff/dskusage/internal/format"
	"github.com/otuschhoff/dskusage/internal/sizing"
	"github.com/otuschhoff/dskusage/internal/walkengine"
)

// Statistics tracks entry counts and extrema across an entire aggregate
// run, mirroring dua-cli's Statistics struct.
type Statistics struct {
	EntriesTraversed  int64
	SmallestFileBytes int64
	LargestFileBytes  int64

	sawEntry bool
}

func newStatistics() *Statistics {
	return &Statistics{SmallestFileBytes: int64(^uint64(0) >> 1)} // math.MaxInt64
}

// observeEntry counts one yielded walk entry, success or failure, matching
// aggregate.rs's unconditional `stats.entries_traversed += 1` per entry.
func (s *Statistics) observeEntry() {
	s.EntriesTraversed++
}

// observeSize folds a resolved byte count into the running smallest/largest
// extrema. It is called once per successfully walked (non-error) entry,
// directory or file alike, with whatever size the resolver produced for it
// (0 for directories, hard-link dupes, and size-resolution errors) —
// aggregate.rs folds every Ok(entry)'s file_size in unconditionally, not
// just files.
func (s *Statistics) observeSize(n int64) {
	s.sawEntry = true
	if n < s.SmallestFileBytes {
		s.SmallestFileBytes = n
	}
	if n > s.LargestFileBytes {
		s.LargestFileBytes = n
	}
}

func (s *Statistics) finish() {
	if !s.sawEntry {
		s.SmallestFileBytes = 0
	}
}

// RootResult is the outcome of walking a single root path.
type RootResult struct {
	Path      string
	IsFile    bool
	Bytes     int64
	NumErrors int64
}

// Options controls an aggregate run (spec.md §6.1 aggregate subcommand
// flags).
type Options struct {
	Threads        int
	Sorting        walkengine.Sorting
	ApparentSize   bool
	CountHardLinks bool
	Sort           bool // sort roots by byte count ascending before emitting
	ComputeTotal   bool // not read by Run; callers gate FormatTotal on it and on len(roots) > 1
	Statistics     bool
	Formatter      *format.Formatter
}

// Aggregator walks a set of root paths and returns one RootResult per root.
// It prints nothing itself; FormatLine and FormatTotal render the lines.
type Aggregator struct {
	opts   Options
	inodes *sizing.InodeFilter
	stats  *Statistics
}

// New creates an Aggregator. A single InodeFilter is shared by every root
// walked through this Aggregator so that a file hard-linked between two
// roots given on the same invocation is counted exactly once, matching
// dua-cli's aggregate.rs.
func New(opts Options) *Aggregator {
	if opts.Formatter == nil {
		opts.Formatter = format.New(format.Metric)
	}
	return &Aggregator{
		opts:   opts,
		inodes: sizing.NewInodeFilter(),
		stats:  newStatistics(),
	}
}

// Statistics returns the run's accumulated Statistics. Only meaningful
// after Run has returned.
func (a *Aggregator) Statistics() Statistics {
	a.stats.finish()
	return *a.stats
}

// Run walks each of roots in order and returns one RootResult per root,
// sorted by Bytes ascending when Options.Sort is set (errors are tallied per
// RootResult). It writes no output, and every root is walked before any
// result is returned, also when Sort is off.
func (a *Aggregator) Run(roots []string) []RootResult {
	results := make([]RootResult, 0, len(roots))

	for _, root := range roots {
		results = append(results, a.walkRoot(root))
	}

	if a.opts.Sort {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Bytes < results[j].Bytes
		})
	}

	return results
}

func (a *Aggregator) walkRoot(root string) RootResult {
	engine := walkengine.New(walkengine.Options{Threads: a.opts.Threads, Sorting: a.opts.Sorting})
	resolver := sizing.NewResolver(sizing.Options{
		ApparentSize:   a.opts.ApparentSize,
		CountHardLinks: a.opts.CountHardLinks,
	}, a.inodes)

	res := RootResult{Path: root}
	isRootFile := false

	for entry := range engine.Walk(root) {
		if entry.Depth == 0 {
			isRootFile = entry.Ok() && entry.Meta != nil && !entry.Meta.IsDir
		}
		a.stats.observeEntry()

		if !entry.Ok() {
			res.NumErrors++
			continue
		}

		n, sizeErr := resolver.Resolve(entry)
		if sizeErr {
			res.NumErrors++
		}
		res.Bytes += n
		a.stats.observeSize(n)
	}

	res.IsFile = isRootFile
	return res
}

// errorSuffix renders the "<N IO Error(s)>" suffix dua-cli's write_path
// appends to any line — root or total — that counted at least one error.
func errorSuffix(numErrors int64) string {
	switch {
	case numErrors == 1:
		return "  <1 IO Error>"
	case numErrors > 1:
		return fmt.Sprintf("  <%d IO Errors>", numErrors)
	default:
		return ""
	}
}

// FormatLine renders a RootResult the way dua-cli's write_path does:
// right-aligned byte count, the path, and an "<N IO Error(s)>" suffix when
// NumErrors > 0.
func FormatLine(f *format.Formatter, r RootResult) string {
	return fmt.Sprintf("%*s %s%s", f.ColumnWidth(), f.Format(r.Bytes), r.Path, errorSuffix(r.NumErrors))
}

// FormatTotal renders the trailing total line, emitted only when the
// caller has more than one root and ComputeTotal is set (spec.md §4.4).
// It sums both bytes and errors across results, matching aggregate.rs's
// write_path call for the total row, which passes the run's summed
// num_errors and gets the same suffix as any per-root line.
func FormatTotal(f *format.Formatter, results []RootResult) string {
	var total, numErrors int64
	for _, r := range results {
		total += r.Bytes
		numErrors += r.NumErrors
	}
	return fmt.Sprintf("%*s %s%s", f.ColumnWidth(), f.Format(total), "total", errorSuffix(numErrors))
}
