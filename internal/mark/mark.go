// Package mark implements the mark-for-deletion pane (spec.md §4.7),
// grounded on dua-cli's interactive/widgets/mark.rs: a sorted map from tree
// handle to EntryMark, toggled on repeat selection, with a focus state that
// remembers the last-selected mark.
package mark

import (
	"sort"

	"github.com/otuschhoff/dskusage/internal/tree"
)

// Entry records one marked node: its size at the time it was marked (sizes
// are not re-resolved after marking, matching mark.rs's EntryMark) and the
// order in which it was marked.
type Entry struct {
	Handle    tree.Handle
	Path      string
	Size      int64
	SortIndex int
}

// Set is the ordered collection of marked entries. Toggling an
// already-marked handle removes it; toggling a new one appends it with the
// next SortIndex.
type Set struct {
	byHandle  map[tree.Handle]int // handle -> index into order
	order     []Entry
	nextIndex int

	hasFocus bool
	selected int // index into order; meaningful only while hasFocus
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{byHandle: make(map[tree.Handle]int)}
}

// Toggle adds h if unmarked, or removes it if already marked. It reports
// whether the set is non-empty afterward (mark.rs's toggle_index returns
// None once the map would become empty, signaling the caller to drop focus
// back to the main list).
func (s *Set) Toggle(h tree.Handle, path string, size int64) bool {
	if idx, ok := s.byHandle[h]; ok {
		s.remove(idx)
		if len(s.order) == 0 {
			s.hasFocus = false
			return false
		}
		if s.selected >= len(s.order) {
			s.selected = len(s.order) - 1
		}
		return true
	}

	s.order = append(s.order, Entry{Handle: h, Path: path, Size: size, SortIndex: s.nextIndex})
	s.nextIndex++
	s.byHandle[h] = len(s.order) - 1
	return true
}

func (s *Set) remove(idx int) {
	removed := s.order[idx]
	s.order = append(s.order[:idx], s.order[idx+1:]...)
	delete(s.byHandle, removed.Handle)
	for h, i := range s.byHandle {
		if i > idx {
			s.byHandle[h] = i - 1
		}
	}
}

// Entries returns the marked entries in the order they were marked.
func (s *Set) Entries() []Entry {
	return s.order
}

// Total returns the sum of every marked entry's Size.
func (s *Set) Total() int64 {
	var total int64
	for _, e := range s.order {
		total += e.Size
	}
	return total
}

// Len reports how many entries are marked.
func (s *Set) Len() int {
	return len(s.order)
}

// SetFocus gives or removes keyboard focus from the mark pane. Gaining
// focus selects the most recently marked entry, matching mark.rs's
// set_focus (selecting the tail entry on focus-gain, clearing selection on
// focus-loss).
func (s *Set) SetFocus(focused bool) {
	s.hasFocus = focused
	if focused && len(s.order) > 0 {
		s.selected = len(s.order) - 1
	}
}

// HasFocus reports whether the mark pane currently has keyboard focus.
func (s *Set) HasFocus() bool {
	return s.hasFocus
}

// Selected returns the currently selected Entry and true, or the zero Entry
// and false if the pane has no focus or is empty.
func (s *Set) Selected() (Entry, bool) {
	if !s.hasFocus || len(s.order) == 0 {
		return Entry{}, false
	}
	return s.order[s.selected], true
}

// MoveDown moves the pane's selection to the next marked entry.
func (s *Set) MoveDown() {
	s.moveBy(1)
}

// MoveUp moves the pane's selection to the previous marked entry.
func (s *Set) MoveUp() {
	s.moveBy(-1)
}

// PageSize is the jump distance for page-up/page-down within the pane.
const PageSize = 15

// PageDown jumps the selection forward by PageSize entries.
func (s *Set) PageDown() {
	s.moveBy(PageSize)
}

// PageUp jumps the selection back by PageSize entries.
func (s *Set) PageUp() {
	s.moveBy(-PageSize)
}

func (s *Set) moveBy(delta int) {
	if !s.hasFocus || len(s.order) == 0 {
		return
	}
	idx := s.selected + delta
	if idx < 0 {
		idx = 0
	}
	if idx > len(s.order)-1 {
		idx = len(s.order) - 1
	}
	s.selected = idx
}

// RemoveSelected unmarks the pane's currently selected entry.
func (s *Set) RemoveSelected() {
	if !s.hasFocus || len(s.order) == 0 {
		return
	}
	s.remove(s.selected)
	if s.selected >= len(s.order) && s.selected > 0 {
		s.selected--
	}
}

// Drain returns every marked entry sorted by SortIndex ascending (the order
// they were marked in) and clears the set, for consumption by the deletion
// runner.
func (s *Set) Drain() []Entry {
	entries := make([]Entry, len(s.order))
	copy(entries, s.order)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].SortIndex < entries[j].SortIndex
	})

	s.order = nil
	s.byHandle = make(map[tree.Handle]int)
	s.hasFocus = false
	s.selected = 0
	return entries
}
