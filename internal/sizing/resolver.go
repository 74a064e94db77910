package sizing

import "github.com/otuschhoff/dskusage/internal/walkengine"

// Options controls how a SizeResolver converts metadata into a byte count.
type Options struct {
	// ApparentSize uses the logical file length (metadata.Len) instead of
	// the platform's allocated-blocks size.
	ApparentSize bool
	// CountHardLinks disables InodeFilter de-duplication: every entry
	// contributes independently (spec.md §4.1).
	CountHardLinks bool
}

// Resolver converts walked entries into byte counts, applying the
// apparent-vs-allocated policy and hard-link de-duplication described in
// spec.md §4.2.
//
// The InodeFilter is supplied by the caller rather than owned here: dua's
// aggregate.rs declares a single InodeFilter before the per-root loop, so a
// file hard-linked across two roots given on the same command line is still
// only counted once. The Aggregator constructs one InodeFilter for an entire
// multi-root run and passes it to every Resolver it creates.
type Resolver struct {
	opts   Options
	inodes *InodeFilter
}

// NewResolver creates a Resolver over a shared InodeFilter.
func NewResolver(opts Options, inodes *InodeFilter) *Resolver {
	return &Resolver{opts: opts, inodes: inodes}
}

// Resolve returns the byte count contributed by entry along with whether an
// error occurred computing the allocated size (the caller increments its
// own per-root error counter on true, per spec.md §4.2).
func (r *Resolver) Resolve(e walkengine.Entry) (bytes int64, sizeErr bool) {
	if !e.Ok() {
		return 0, false
	}
	m := e.Meta

	if m.IsDir {
		return 0, false
	}

	if !r.opts.CountHardLinks && !r.inodes.Add(m) {
		return 0, false
	}

	if r.opts.ApparentSize {
		return m.Len, false
	}

	size, ok := walkengine.AllocatedSize(m, e.Path)
	if !ok {
		return 0, true
	}
	return size, false
}
