// Package tui defines the terminal I/O boundary for the interactive
// explorer (spec.md §4.9, SPEC_FULL.md §4.11) and a pure frame renderer.
// Raw-mode and alternate-screen handling are kept behind the TerminalIO
// interface so EventLoop and the renderer stay testable without a real
// tty, the same separation dua-cli draws between its termion setup in
// main.rs and its tui::Terminal-driven render loop.
package tui

import (
	"bufio"
	"io"

	"golang.org/x/term"
)

// KeyCode names a non-printable key. Printable keys are delivered through
// KeyEvent.Rune with Code == KeyNone.
type KeyCode int

const (
	KeyNone KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyBackspace
	KeyPageUp
	KeyPageDown
	KeyEscape
	KeyCtrlC
	// KeyCtrlShiftR is the DeletionRunner trigger from the mark pane
	// (spec.md §4.7). Raw-mode terminals deliver Ctrl+<letter> chords as
	// a single control byte regardless of Shift, the same way Ctrl+U and
	// Ctrl+D already arrive below as plain control bytes, so this is
	// recognized off Ctrl+R's control byte (18).
	KeyCtrlShiftR
)

// KeyEvent is one decoded keypress.
type KeyEvent struct {
	Rune rune
	Code KeyCode
}

// TerminalIO is the external collaborator EventLoop drives: it owns raw
// mode, the alternate screen buffer, key decoding, and frame output. A
// production implementation wraps a real tty; tests substitute a fake that
// never touches the terminal.
type TerminalIO interface {
	EnterAltScreen() error
	LeaveAltScreen() error
	MakeRaw() (restore func() error, err error)
	Size() (cols, rows int, err error)
	ReadKey() (KeyEvent, error)
	Draw(frame string) error
}

// Term is a TerminalIO backed by a real file descriptor, using
// golang.org/x/term for raw-mode and size queries (grounded on
// opencoff-go-fio's existing indirect dependency on golang.org/x/term, and
// golang.org/x/sys, already a direct dependency of the teacher's go.mod).
type Term struct {
	fd  int
	in  *bufio.Reader
	out io.Writer
}

// NewTerm wraps fd (typically int(os.Stdin.Fd())) for reading and w
// (typically os.Stdout) for drawing.
func NewTerm(fd int, r io.Reader, w io.Writer) *Term {
	return &Term{fd: fd, in: bufio.NewReader(r), out: w}
}

const (
	ansiAltScreenEnter = "\x1b[?1049h"
	ansiAltScreenLeave = "\x1b[?1049l"
	ansiClear          = "\x1b[2J\x1b[H"
)

func (t *Term) EnterAltScreen() error {
	_, err := io.WriteString(t.out, ansiAltScreenEnter)
	return err
}

func (t *Term) LeaveAltScreen() error {
	_, err := io.WriteString(t.out, ansiAltScreenLeave)
	return err
}

func (t *Term) MakeRaw() (func() error, error) {
	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return nil, err
	}
	return func() error { return term.Restore(t.fd, state) }, nil
}

func (t *Term) Size() (cols, rows int, err error) {
	return term.GetSize(t.fd)
}

func (t *Term) Draw(frame string) error {
	_, err := io.WriteString(t.out, ansiClear+frame)
	return err
}

// ReadKey decodes one keypress, including the common ANSI escape sequences
// for arrows and page up/down.
func (t *Term) ReadKey() (KeyEvent, error) {
	r, _, err := t.in.ReadRune()
	if err != nil {
		return KeyEvent{}, err
	}

	switch r {
	case 3: // Ctrl+C
		return KeyEvent{Code: KeyCtrlC}, nil
	case 21: // Ctrl+U
		return KeyEvent{Code: KeyPageUp}, nil
	case 4: // Ctrl+D
		return KeyEvent{Code: KeyPageDown}, nil
	case 18: // Ctrl+R (Ctrl+Shift+R: deletion confirmation)
		return KeyEvent{Code: KeyCtrlShiftR}, nil
	case 13, 10:
		return KeyEvent{Code: KeyEnter}, nil
	case 127, 8:
		return KeyEvent{Code: KeyBackspace}, nil
	case 27:
		return t.readEscapeSequence()
	default:
		return KeyEvent{Rune: r}, nil
	}
}

func (t *Term) readEscapeSequence() (KeyEvent, error) {
	b1, err := t.in.ReadByte()
	if err != nil {
		return KeyEvent{Code: KeyEscape}, nil
	}
	if b1 != '[' {
		return KeyEvent{Code: KeyEscape}, nil
	}
	b2, err := t.in.ReadByte()
	if err != nil {
		return KeyEvent{Code: KeyEscape}, nil
	}
	switch b2 {
	case 'A':
		return KeyEvent{Code: KeyUp}, nil
	case 'B':
		return KeyEvent{Code: KeyDown}, nil
	case 'C':
		return KeyEvent{Code: KeyRight}, nil
	case 'D':
		return KeyEvent{Code: KeyLeft}, nil
	case '5':
		t.in.ReadByte() // consume trailing '~'
		return KeyEvent{Code: KeyPageUp}, nil
	case '6':
		t.in.ReadByte()
		return KeyEvent{Code: KeyPageDown}, nil
	default:
		return KeyEvent{Code: KeyEscape}, nil
	}
}

// String names a KeyCode, mainly for debugging and tests.
func (k KeyCode) String() string {
	names := [...]string{"None", "Up", "Down", "Left", "Right", "Enter", "Backspace", "PageUp", "PageDown", "Escape", "CtrlC", "CtrlShiftR"}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}
