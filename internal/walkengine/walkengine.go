package walkengine

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
)

// Sorting selects the ordering policy applied to siblings within a single
// directory (spec.md §4.3). Ordering between subtrees of different
// directories is never constrained, regardless of Sorting.
type Sorting int

const (
	// SortNone yields siblings in whatever order the worker pool produces
	// them.
	SortNone Sorting = iota
	// SortAlphabeticalByFileName yields siblings in case-sensitive
	// lexicographic order of their file-name component when the walk runs
	// with a single worker (Threads 1). With more than one worker, siblings
	// taken by different workers are emitted concurrently and may arrive
	// out of order.
	SortAlphabeticalByFileName
)

// Options configures a walk. The zero value is valid: Threads 0 means
// "use the host's available parallelism".
type Options struct {
	Threads int
	Sorting Sorting
}

// Engine drives a parallel, work-stealing directory walk. Its worker and
// queue shape is adapted from the teacher's cwalk.Walker
// (cwalk.go: walkWorker.queuePush/queuePop/stealWork), generalized to emit
// Entry values carrying metadata-or-error instead of invoking fixed
// per-kind callbacks.
type Engine struct {
	opts Options
}

// New creates an Engine with the given Options.
func New(opts Options) *Engine {
	if opts.Threads <= 0 {
		opts.Threads = runtime.NumCPU()
	}
	return &Engine{opts: opts}
}

// branch is one unit of walk work: a directory, identified by its parent
// chain plus its own basename. Mirrors cwalk's walkBranch.
type branch struct {
	parent   *branch
	basename string
	depth    int
}

func (b *branch) path(root string) string {
	if b.parent == nil {
		return root
	}
	return filepath.Join(b.parent.path(root), b.basename)
}

type worker struct {
	id    int
	mu    sync.Mutex
	queue []*branch
}

func (w *worker) push(b *branch) {
	w.mu.Lock()
	w.queue = append(w.queue, b)
	w.mu.Unlock()
}

func (w *worker) pop() *branch {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := len(w.queue)
	if n == 0 {
		return nil
	}
	b := w.queue[n-1]
	w.queue = w.queue[:n-1]
	return b
}

func (w *worker) len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.queue)
}

// Walk traverses root and returns a channel of Entry. The channel is closed
// once traversal completes. Every yielded Entry carries either valid
// Metadata or a non-nil Err (spec.md §3, "Entry").
func (e *Engine) Walk(root string) <-chan Entry {
	out := make(chan Entry, e.opts.Threads)

	root = filepath.Clean(root)

	workers := make([]*worker, e.opts.Threads)
	for i := range workers {
		workers[i] = &worker{id: i}
	}

	var wg sync.WaitGroup
	var active sync.WaitGroup // tracks outstanding branches, mirrors cwalk's dirWg

	stealWork := func(thief *worker) bool {
		for _, victim := range workers {
			if victim.id == thief.id {
				continue
			}
			if victim.len() > 1 {
				if b := victim.pop(); b != nil {
					thief.push(b)
					return true
				}
			}
		}
		return false
	}

	process := func(w *worker, b *branch) {
		defer active.Done()

		p := b.path(root)
		info, err := os.Lstat(p)
		if err != nil {
			out <- Entry{Path: p, Depth: b.depth, Err: err}
			return
		}
		meta := statMetadata(info)
		out <- Entry{Path: p, Depth: b.depth, Meta: &meta}

		if !info.IsDir() {
			return
		}

		names, err := readDirNames(p)
		if err != nil {
			// Reading this directory's own children failed; report the
			// error against the directory's own path and depth rather
			// than fabricating a child entry.
			out <- Entry{Path: p, Depth: b.depth, Err: err}
			return
		}

		if e.opts.Sorting == SortAlphabeticalByFileName {
			sort.Strings(names)
		}

		children := make([]*branch, 0, len(names))
		for _, name := range names {
			children = append(children, &branch{parent: b, basename: name, depth: b.depth + 1})
		}

		if len(children) > 0 {
			active.Add(len(children))
			// Push in reverse so this worker's own LIFO pop visits
			// children in their original (e.g. sorted) order. A thief
			// takes one branch at a time through the same pop, from the
			// same end, and emits it concurrently with this worker.
			for i := len(children) - 1; i >= 0; i-- {
				w.push(children[i])
			}
		}
	}

	runWorker := func(w *worker) {
		defer wg.Done()
		for {
			b := w.pop()
			if b == nil {
				if !stealWork(w) {
					return
				}
				continue
			}
			process(w, b)
		}
	}

	// Queue the root before any worker starts, so no worker can find every
	// queue empty and exit before the walk has begun.
	active.Add(1)
	workers[0].push(&branch{basename: "", depth: 0})

	wg.Add(len(workers))
	for _, w := range workers {
		go runWorker(w)
	}

	go func() {
		active.Wait()
		wg.Wait()
		close(out)
	}()

	return out
}

// readDirNames lists the base names of a directory's immediate entries,
// returning any open or read error unwrapped.
func readDirNames(dir string) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, err
	}
	return names, nil
}
