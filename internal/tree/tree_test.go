package tree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/otuschhoff/dskusage/internal/sizing"
	"github.com/otuschhoff/dskusage/internal/walkengine"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestBuildAccumulatesTotals(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "a.txt"), 100)
	writeFile(t, filepath.Join(sub, "b.txt"), 50)

	engine := walkengine.New(walkengine.Options{Threads: 2})
	resolver := sizing.NewResolver(sizing.Options{ApparentSize: true}, sizing.NewInodeFilter())

	tr := Build(engine.Walk(dir), resolver)

	synthetic := tr.Node(Root)
	if synthetic.TotalBytes != 150 {
		t.Errorf("synthetic root TotalBytes = %d, want 150", synthetic.TotalBytes)
	}
	if len(tr.Children(Root)) != 1 {
		t.Fatalf("synthetic root should have exactly one child (the walked root), got %d", len(tr.Children(Root)))
	}

	walked := tr.Node(tr.Children(Root)[0])
	if walked.TotalBytes != 150 {
		t.Errorf("walked root TotalBytes = %d, want 150", walked.TotalBytes)
	}
	if !walked.IsDir {
		t.Error("walked root should be a directory")
	}
}

func TestSortBySizeDesc(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "small.bin"), 10)
	writeFile(t, filepath.Join(dir, "big.bin"), 1000)

	engine := walkengine.New(walkengine.Options{Threads: 2})
	resolver := sizing.NewResolver(sizing.Options{ApparentSize: true}, sizing.NewInodeFilter())
	tr := Build(engine.Walk(dir), resolver)

	walkedRoot := tr.Children(Root)[0]
	tr.Sort(walkedRoot, SortSizeDesc)
	children := tr.Children(walkedRoot)
	if len(children) != 2 {
		t.Fatalf("got %d children, want 2", len(children))
	}
	if tr.Node(children[0]).Name != "big.bin" {
		t.Errorf("first child = %s, want big.bin", tr.Node(children[0]).Name)
	}
}

func TestSortModeCycle(t *testing.T) {
	m := SortSizeDesc
	m = m.Next()
	if m != SortSizeAsc {
		t.Fatalf("got %v, want SortSizeAsc", m)
	}
	m = m.Next()
	if m != SortByName {
		t.Fatalf("got %v, want SortByName", m)
	}
	m = m.Next()
	if m != SortSizeDesc {
		t.Fatalf("got %v, want SortSizeDesc", m)
	}
}

func TestBuildRootsFoldsEachRootUnderSyntheticRoot(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	writeFile(t, filepath.Join(dirA, "a.txt"), 100)
	writeFile(t, filepath.Join(dirB, "b.txt"), 50)

	engine := walkengine.New(walkengine.Options{Threads: 2})
	resolver := sizing.NewResolver(sizing.Options{ApparentSize: true}, sizing.NewInodeFilter())

	tr := BuildRoots([]string{dirA, dirB}, engine, resolver)

	children := tr.Children(Root)
	if len(children) != 2 {
		t.Fatalf("got %d children of the synthetic root, want 2", len(children))
	}
	if tr.Node(Root).TotalBytes != 150 {
		t.Errorf("synthetic root TotalBytes = %d, want 150", tr.Node(Root).TotalBytes)
	}

	names := map[string]bool{}
	for _, h := range children {
		names[tr.Node(h).Path] = true
	}
	if !names[filepath.Clean(dirA)] || !names[filepath.Clean(dirB)] {
		t.Errorf("expected both roots as children, got %v", names)
	}
}

func TestBuildReportsMissingRootAsError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	engine := walkengine.New(walkengine.Options{Threads: 1})
	resolver := sizing.NewResolver(sizing.Options{ApparentSize: true}, sizing.NewInodeFilter())

	tr := Build(engine.Walk(missing), resolver)
	if tr.Len() != 2 {
		t.Fatalf("got %d nodes, want 2 (synthetic root + the missing path)", tr.Len())
	}
	if tr.Node(Root).NumErrors == 0 {
		t.Error("expected the missing root's error to roll up into the synthetic root")
	}
}
