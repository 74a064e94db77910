// Package sizing resolves a walked entry's metadata into a byte count and
// de-duplicates hard-linked files (spec.md §4.1, §4.2).
package sizing

import "github.com/otuschhoff/dskusage/internal/walkengine"

type inodeKey struct {
	device uint64
	inode  uint64
}

// InodeFilter records (device, inode) pairs already seen so that a
// multiply-linked file is counted exactly once. It is not safe for
// concurrent use — only the single walk-consumer goroutine is expected to
// call Add (spec.md §4.1: "Thread-safety: not required").
type InodeFilter struct {
	seen map[inodeKey]struct{}
}

// NewInodeFilter returns a ready-to-use, empty InodeFilter.
func NewInodeFilter() *InodeFilter {
	return &InodeFilter{seen: make(map[inodeKey]struct{})}
}

// Add reports true the first time a given (device, inode) pair is observed,
// and on every call for entries whose platform does not expose inode
// numbers (HasInode == false). It reports false for every subsequent
// sighting of a pair already seen.
func (f *InodeFilter) Add(m *walkengine.Metadata) bool {
	if m == nil || !m.HasInode {
		return true
	}

	key := inodeKey{device: m.Device, inode: m.Inode}
	if _, dup := f.seen[key]; dup {
		return false
	}
	f.seen[key] = struct{}{}
	return true
}
