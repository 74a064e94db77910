// Package nav implements the interactive explorer's cursor and directory
// stack (spec.md §4.6 "NavigationState"), modeled on dua-cli's
// interactive::app navigation plus its per-depth remembered selection.
package nav

import "github.com/otuschhoff/dskusage/internal/tree"

// State tracks which directory is currently entered, which of its children
// is selected, and the sort mode applied to every directory's children.
type State struct {
	t    *tree.Tree
	sort tree.SortMode

	stack      []tree.Handle // stack[0] is always the tree root
	selection  []int         // selection[i] is the selected child index within stack[i]
	remembered map[tree.Handle]int
}

// New creates a State rooted at t's root, with the root entered and its
// first child (if any) selected.
func New(t *tree.Tree) *State {
	s := &State{
		t:          t,
		sort:       tree.SortSizeDesc,
		stack:      []tree.Handle{tree.Root},
		selection:  []int{0},
		remembered: make(map[tree.Handle]int),
	}
	s.resort(tree.Root)
	return s
}

// Current returns the Handle of the currently entered directory.
func (s *State) Current() tree.Handle {
	return s.stack[len(s.stack)-1]
}

// Children returns the current directory's children in the active sort
// order.
func (s *State) Children() []tree.Handle {
	return s.t.Children(s.Current())
}

// SelectedIndex returns the index into Children selected within the
// current directory, or -1 if the directory has no children.
func (s *State) SelectedIndex() int {
	children := s.Children()
	if len(children) == 0 {
		return -1
	}
	idx := s.selection[len(s.selection)-1]
	if idx >= len(children) {
		idx = len(children) - 1
	}
	return idx
}

// Selected returns the currently selected child Handle, and false if the
// current directory has no children.
func (s *State) Selected() (tree.Handle, bool) {
	idx := s.SelectedIndex()
	if idx < 0 {
		return 0, false
	}
	return s.Children()[idx], true
}

func (s *State) resort(h tree.Handle) {
	s.t.Sort(h, s.sort)
}

// MoveDown moves the selection to the next sibling.
func (s *State) MoveDown() {
	s.move(1)
}

// MoveUp moves the selection to the previous sibling.
func (s *State) MoveUp() {
	s.move(-1)
}

func (s *State) move(delta int) {
	children := s.Children()
	if len(children) == 0 {
		return
	}
	top := len(s.selection) - 1
	idx := s.selection[top] + delta
	if idx < 0 {
		idx = 0
	}
	if idx > len(children)-1 {
		idx = len(children) - 1
	}
	s.selection[top] = idx
}

// PageSize is the number of entries a page-up/page-down jump covers.
const PageSize = 15

// PageDown jumps the selection forward by PageSize entries.
func (s *State) PageDown() {
	s.move(PageSize)
}

// PageUp jumps the selection back by PageSize entries.
func (s *State) PageUp() {
	s.move(-PageSize)
}

// JumpTop selects the first child.
func (s *State) JumpTop() {
	children := s.Children()
	if len(children) == 0 {
		return
	}
	s.selection[len(s.selection)-1] = 0
}

// JumpBottom selects the last child.
func (s *State) JumpBottom() {
	children := s.Children()
	if len(children) == 0 {
		return
	}
	s.selection[len(s.selection)-1] = len(children) - 1
}

// Enter descends into the currently selected child, if it is a directory.
// It reports whether the descent happened. If this directory was entered
// and left before, the selection Leave remembered for it is restored;
// otherwise its first child is selected (spec.md §4.6).
func (s *State) Enter() bool {
	h, ok := s.Selected()
	if !ok || !s.t.Node(h).IsDir {
		return false
	}

	s.stack = append(s.stack, h)
	if idx, ok := s.remembered[h]; ok {
		s.selection = append(s.selection, idx)
	} else {
		s.selection = append(s.selection, 0)
	}
	s.resort(h)
	return true
}

// Leave ascends back to the parent directory, remembering the selection
// within the directory being left so a later re-Enter restores it. It
// reports whether the ascent happened (false at the tree root).
func (s *State) Leave() bool {
	if len(s.stack) <= 1 {
		return false
	}

	leaving := s.stack[len(s.stack)-1]
	s.remembered[leaving] = s.selection[len(s.selection)-1]

	s.stack = s.stack[:len(s.stack)-1]
	s.selection = s.selection[:len(s.selection)-1]
	return true
}

// CycleSort advances the sort mode and reorders every directory currently
// on the navigation stack so on-screen children stay consistently ordered.
func (s *State) CycleSort() {
	s.sort = s.sort.Next()
	for _, h := range s.stack {
		s.resort(h)
	}
}

// SortMode reports the active sort mode.
func (s *State) SortMode() tree.SortMode {
	return s.sort
}

// Depth reports how many directories deep the navigation stack currently
// is (1 at the tree root).
func (s *State) Depth() int {
	return len(s.stack)
}
