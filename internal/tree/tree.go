// Package tree builds an arena-backed directory tree from a walk, keyed by
// opaque integer Handles rather than pointers (spec.md §3 "Tree"), modeled
// on dua-cli's traverse::Tree / TreeIndex. The arena is built by a single
// sequential consumer, so no node is ever locked.
package tree

import (
	"path/filepath"
	"sort"

	"github.com/otuschhoff/dskusage/internal/sizing"
	"github.com/otuschhoff/dskusage/internal/walkengine"
)

// Handle is an opaque reference to a Node within a Tree's arena. The zero
// Handle refers to the synthetic root.
type Handle int

// Root is the Handle of the tree's synthetic root node.
const Root Handle = 0

const noParent Handle = -1

// Node is one entry in the tree: a file or directory, its own contribution
// to disk usage, and (once Finalize has run) its recursive total.
type Node struct {
	Name   string
	Path   string
	IsDir  bool
	Parent Handle

	OwnBytes   int64
	TotalBytes int64
	NumErrors  int64

	Children []Handle
}

// Tree is a read-only-after-build arena of Nodes. The zero value is not
// usable; construct one with Build.
type Tree struct {
	nodes  []Node
	byPath map[string]Handle
}

// Node returns the Node for h. Callers must not retain the returned pointer
// past the Tree's lifetime assumptions (read-only after Finalize).
func (t *Tree) Node(h Handle) *Node {
	return &t.nodes[h]
}

// Len reports how many nodes the tree holds.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Children returns h's child handles in insertion order.
func (t *Tree) Children(h Handle) []Handle {
	return t.nodes[h].Children
}

// Builder consumes walkengine Entries sequentially and inserts them into a
// growing arena rooted at a synthetic node. There is exactly one Builder
// per interactive session; it is not safe for concurrent use, matching the
// "single consumer" design of spec.md §4.5.
type Builder struct {
	tree     *Tree
	resolver *sizing.Resolver
}

// NewBuilder creates a Builder around a fresh Tree whose Handle Root is a
// synthetic node with no path of its own (spec.md §3: "the root of the
// arena is a synthetic node whose children are the user-supplied roots").
// Every path later fed to Insert at Depth 0 becomes a direct child of Root,
// so a Builder can absorb entries from any number of independent walks —
// one per user-supplied root — into a single tree.
func NewBuilder(resolver *sizing.Resolver) *Builder {
	t := &Tree{
		byPath: make(map[string]Handle),
	}
	t.nodes = append(t.nodes, Node{IsDir: true, Parent: noParent})
	return &Builder{tree: t, resolver: resolver}
}

// Insert folds one walked Entry into the tree, resolving its size via the
// Builder's Resolver and linking it to its parent directory by path lookup.
// An Entry at Depth 0 is attached directly under the synthetic Root, which
// is what lets Insert be called for the output of several independent
// walkengine.Walk calls — one per user-supplied root — into the same tree.
// Entries must otherwise arrive in an order where every entry's parent
// directory has already been inserted (guaranteed by walkengine, which
// always yields a directory before its children).
func (b *Builder) Insert(e walkengine.Entry) {
	// A readdir failure is reported against the same path as the
	// directory's successful stat entry (walkengine emits the directory
	// itself once, then an error at the same path if listing its
	// children fails). Treat that as an error tally on the existing
	// node rather than a second node at the same path.
	if h, ok := b.tree.byPath[e.Path]; ok {
		if !e.Ok() {
			b.tree.nodes[h].NumErrors++
		}
		return
	}

	bytes, sizeErr := b.resolver.Resolve(e)

	parent := Root
	if e.Depth > 0 {
		if h, ok := b.tree.byPath[filepath.Dir(e.Path)]; ok {
			parent = h
		}
	}

	n := Node{
		Name:   filepath.Base(e.Path),
		Path:   e.Path,
		Parent: parent,
	}
	if e.Ok() {
		n.IsDir = e.Meta.IsDir
		n.OwnBytes = bytes
	}
	if !e.Ok() || sizeErr {
		n.NumErrors = 1
	}

	h := Handle(len(b.tree.nodes))
	b.tree.nodes = append(b.tree.nodes, n)
	b.tree.byPath[e.Path] = h

	p := &b.tree.nodes[parent]
	p.Children = append(p.Children, h)
}

// Finalize computes each node's recursive TotalBytes and NumErrors by
// summing children into parents in reverse insertion order (children are
// always inserted after their parent, so a single backward pass suffices).
// It returns the completed, read-only Tree.
func (b *Builder) Finalize() *Tree {
	t := b.tree
	for i := len(t.nodes) - 1; i >= 1; i-- {
		n := &t.nodes[i]
		n.TotalBytes += n.OwnBytes
		parent := &t.nodes[n.Parent]
		parent.TotalBytes += n.TotalBytes
		parent.NumErrors += n.NumErrors
	}
	return t
}

// Build drains entries into a fresh single-root tree end to end, a
// convenience wrapper around Builder for callers that only have one walk's
// worth of entries and don't need to interleave insertion with other work.
// The returned tree still has a synthetic Root with the walked path as its
// sole child, matching BuildRoots with a single root.
func Build(entries <-chan walkengine.Entry, resolver *sizing.Resolver) *Tree {
	b := NewBuilder(resolver)
	for e := range entries {
		b.Insert(e)
	}
	return b.Finalize()
}

// BuildRoots walks each of roots via engine, in order, folding every
// resulting entry into one tree under a shared synthetic Root — one child
// per user-supplied root — and a shared resolver, so a file hard-linked
// between two of the given roots is still only counted once (matching
// Aggregator's single-InodeFilter-per-run design).
func BuildRoots(roots []string, engine *walkengine.Engine, resolver *sizing.Resolver) *Tree {
	b := NewBuilder(resolver)
	for _, root := range roots {
		for e := range engine.Walk(root) {
			b.Insert(e)
		}
	}
	return b.Finalize()
}

// SortMode selects how Sort orders a node's children, mirroring the
// sort-cycling behavior of spec.md §4.6.
type SortMode int

const (
	SortSizeDesc SortMode = iota
	SortSizeAsc
	SortByName
)

// Next cycles SortSizeDesc -> SortSizeAsc -> SortByName -> SortSizeDesc.
func (m SortMode) Next() SortMode {
	return (m + 1) % 3
}

// Sort reorders h's children in place according to mode.
func (t *Tree) Sort(h Handle, mode SortMode) {
	children := t.nodes[h].Children
	switch mode {
	case SortSizeAsc:
		sort.SliceStable(children, func(i, j int) bool {
			return t.nodes[children[i]].TotalBytes < t.nodes[children[j]].TotalBytes
		})
	case SortByName:
		sort.SliceStable(children, func(i, j int) bool {
			return t.nodes[children[i]].Name < t.nodes[children[j]].Name
		})
	default: // SortSizeDesc
		sort.SliceStable(children, func(i, j int) bool {
			return t.nodes[children[i]].TotalBytes > t.nodes[children[j]].TotalBytes
		})
	}
}
