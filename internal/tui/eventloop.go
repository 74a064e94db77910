package tui

import (
	"errors"

	"github.com/otuschhoff/dskusage/internal/deletion"
	"github.com/otuschhoff/dskusage/internal/format"
	"github.com/otuschhoff/dskusage/internal/mark"
	"github.com/otuschhoff/dskusage/internal/nav"
	"github.com/otuschhoff/dskusage/internal/tree"
)

// ErrQuit names a user-requested exit. EventLoop.Run reports a normal exit
// as a nil error, not as ErrQuit.
var ErrQuit = errors.New("tui: quit requested")

// EventLoop drives the single-threaded draw/read/dispatch cycle of
// spec.md §4.9: draw a frame, block for one key, dispatch it to the
// focused pane, run any pending deletion, then check whether to exit.
type EventLoop struct {
	term  TerminalIO
	tree  *tree.Tree
	nav   *nav.State
	marks *mark.Set
	fmt   *format.Formatter
	focus Focus
}

// NewEventLoop wires a TerminalIO to the navigation, mark, and tree state
// for one interactive session.
func NewEventLoop(term TerminalIO, t *tree.Tree, n *nav.State, m *mark.Set, f *format.Formatter) *EventLoop {
	return &EventLoop{term: term, tree: t, nav: n, marks: m, fmt: f}
}

// Run enters the alt screen, sets raw mode, and loops until the user quits
// or a terminal error occurs. It always restores the terminal before
// returning, even on error.
func (l *EventLoop) Run() error {
	if err := l.term.EnterAltScreen(); err != nil {
		return err
	}
	defer l.term.LeaveAltScreen()

	restore, err := l.term.MakeRaw()
	if err != nil {
		return err
	}
	defer restore()

	for {
		cols, _, _ := l.term.Size()
		frame := Draw(l.tree, l.nav, l.marks, l.focus, l.fmt, cols)
		if err := l.term.Draw(frame); err != nil {
			return err
		}

		key, err := l.term.ReadKey()
		if err != nil {
			return err
		}

		quit := l.dispatch(key)
		if quit {
			return nil
		}
	}
}

// dispatch applies one KeyEvent to the focused pane, returning true if the
// user requested exit.
func (l *EventLoop) dispatch(key KeyEvent) bool {
	switch {
	case key.Code == KeyCtrlC:
		return true
	case key.Rune == 'q' || (key.Rune == 'x' && l.focus == FocusMain):
		return true
	}

	if l.focus == FocusMark {
		return l.dispatchMark(key)
	}
	return l.dispatchMain(key)
}

func (l *EventLoop) dispatchMain(key KeyEvent) bool {
	switch {
	case key.Rune == 'j' || key.Code == KeyDown:
		l.nav.MoveDown()
	case key.Rune == 'k' || key.Code == KeyUp:
		l.nav.MoveUp()
	case key.Code == KeyPageDown:
		l.nav.PageDown()
	case key.Code == KeyPageUp:
		l.nav.PageUp()
	case key.Rune == 'g':
		l.nav.JumpTop()
	case key.Rune == 'G':
		l.nav.JumpBottom()
	case key.Rune == 'o' || key.Code == KeyEnter || key.Code == KeyRight:
		l.nav.Enter()
	case key.Rune == 'u' || key.Code == KeyLeft || key.Code == KeyBackspace:
		l.nav.Leave()
	case key.Rune == 's':
		l.nav.CycleSort()
	case key.Rune == ' ':
		l.toggleMarkSelected()
	case key.Rune == 'd':
		if l.marks.Len() > 0 {
			l.marks.SetFocus(true)
			l.focus = FocusMark
		}
	}
	return false
}

func (l *EventLoop) dispatchMark(key KeyEvent) bool {
	switch {
	case key.Rune == 'j' || key.Code == KeyDown:
		l.marks.MoveDown()
	case key.Rune == 'k' || key.Code == KeyUp:
		l.marks.MoveUp()
	case key.Code == KeyPageDown:
		l.marks.PageDown()
	case key.Code == KeyPageUp:
		l.marks.PageUp()
	case key.Code == KeyCtrlShiftR: // confirm deletion of every marked entry
		l.runDeletion()
	default:
		l.marks.SetFocus(false)
		l.focus = FocusMain
	}
	return false
}

func (l *EventLoop) toggleMarkSelected() {
	h, ok := l.nav.Selected()
	if !ok {
		return
	}
	node := l.tree.Node(h)
	l.marks.Toggle(h, node.Path, node.TotalBytes)
}

func (l *EventLoop) runDeletion() {
	entries := l.marks.Drain()
	results := deletion.Run(entries, func(n, total int) {
		cols, _, _ := l.term.Size()
		frame := Draw(l.tree, l.nav, l.marks, l.focus, l.fmt, cols)
		l.term.Draw(frame)
	})
	// Entries whose deletion failed are marked again so they can be retried.
	_, failed := deletion.Summarize(results)
	for _, r := range failed {
		l.marks.Toggle(r.Entry.Handle, r.Entry.Path, r.Entry.Size)
	}
	l.focus = FocusMain
}
