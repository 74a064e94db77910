package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/otuschhoff/dskusage/internal/format"
	"github.com/otuschhoff/dskusage/internal/mark"
	"github.com/otuschhoff/dskusage/internal/nav"
	"github.com/otuschhoff/dskusage/internal/sizing"
	"github.com/otuschhoff/dskusage/internal/tree"
	"github.com/otuschhoff/dskusage/internal/walkengine"
)

// fakeTerm is a TerminalIO that never touches a real terminal, feeding a
// scripted sequence of keys and recording every drawn frame.
type fakeTerm struct {
	keys   []KeyEvent
	pos    int
	frames []string
}

func (f *fakeTerm) EnterAltScreen() error { return nil }
func (f *fakeTerm) LeaveAltScreen() error { return nil }
func (f *fakeTerm) MakeRaw() (func() error, error) {
	return func() error { return nil }, nil
}
func (f *fakeTerm) Size() (int, int, error) { return 80, 24, nil }
func (f *fakeTerm) Draw(frame string) error {
	f.frames = append(f.frames, frame)
	return nil
}
func (f *fakeTerm) ReadKey() (KeyEvent, error) {
	if f.pos >= len(f.keys) {
		return KeyEvent{Code: KeyCtrlC}, nil
	}
	k := f.keys[f.pos]
	f.pos++
	return k, nil
}

func buildTree(t *testing.T) *tree.Tree {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), make([]byte, 10), 0o644); err != nil {
		t.Fatal(err)
	}
	engine := walkengine.New(walkengine.Options{Threads: 1})
	resolver := sizing.NewResolver(sizing.Options{ApparentSize: true}, sizing.NewInodeFilter())
	return tree.Build(engine.Walk(dir), resolver)
}

func TestEventLoopQuitsOnQ(t *testing.T) {
	tr := buildTree(t)
	n := nav.New(tr)
	m := mark.NewSet()
	f := format.New(format.Metric)

	ft := &fakeTerm{keys: []KeyEvent{{Rune: 'q'}}}
	loop := NewEventLoop(ft, tr, n, m, f)

	if err := loop.Run(); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(ft.frames) == 0 {
		t.Fatal("expected at least one frame to be drawn before quitting")
	}
}

func TestEventLoopMarkAndDelete(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "victim.txt"), make([]byte, 10), 0o644); err != nil {
		t.Fatal(err)
	}
	engine := walkengine.New(walkengine.Options{Threads: 1})
	resolver := sizing.NewResolver(sizing.Options{ApparentSize: true}, sizing.NewInodeFilter())
	tr := tree.Build(engine.Walk(dir), resolver)

	n := nav.New(tr)
	if !n.Enter() {
		t.Fatal("expected Enter from the virtual root into the walked root to succeed")
	}
	m := mark.NewSet()
	f := format.New(format.Metric)

	ft := &fakeTerm{keys: []KeyEvent{
		{Rune: ' '},           // mark the selected entry (victim.txt)
		{Rune: 'd'},           // focus the mark pane
		{Code: KeyCtrlShiftR}, // confirm deletion
		{Rune: 'q'},           // quit
	}}
	loop := NewEventLoop(ft, tr, n, m, f)

	if err := loop.Run(); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "victim.txt")); !os.IsNotExist(err) {
		t.Errorf("expected victim.txt to be deleted, stat err = %v", err)
	}
}

func TestTruncatePathKeepsShortStringsIntact(t *testing.T) {
	if got := truncatePath("short", 40); got != "short" {
		t.Errorf("truncatePath = %q, want unchanged", got)
	}
}

func TestTruncatePathElidesLongStrings(t *testing.T) {
	long := "/a/very/long/path/that/will/not/fit/on/screen/at/all/here"
	got := truncatePath(long, 20)
	if len([]rune(got)) > 20 {
		t.Errorf("truncated length = %d, want <= 20", len([]rune(got)))
	}
}
