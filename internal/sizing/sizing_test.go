package sizing

import (
	"errors"
	"testing"

	"github.com/otuschhoff/dskusage/internal/walkengine"
)

func metaWithInode(dev, ino uint64, isDir bool, length int64) *walkengine.Metadata {
	return &walkengine.Metadata{
		IsDir:     isDir,
		Len:       length,
		Device:    dev,
		Inode:     ino,
		HasInode:  true,
		Blocks:    length / 512,
		BlockSize: 512,
	}
}

func TestInodeFilterDedupsSameInode(t *testing.T) {
	f := NewInodeFilter()
	m := metaWithInode(1, 100, false, 4096)

	if !f.Add(m) {
		t.Fatal("first sighting should report true")
	}
	if f.Add(m) {
		t.Fatal("second sighting of the same (device, inode) should report false")
	}
}

func TestInodeFilterTreatsNoInodeAsAlwaysNew(t *testing.T) {
	f := NewInodeFilter()
	m := &walkengine.Metadata{HasInode: false}

	if !f.Add(m) || !f.Add(m) {
		t.Fatal("entries without stable inodes should always be reported as new")
	}
}

func TestResolverApparentSizeUsesLogicalLength(t *testing.T) {
	r := NewResolver(Options{ApparentSize: true}, NewInodeFilter())
	m := metaWithInode(1, 1, false, 4096)

	bytes, sizeErr := r.Resolve(walkengine.Entry{Path: "/f", Meta: m})
	if sizeErr {
		t.Fatal("unexpected size error")
	}
	if bytes != 4096 {
		t.Errorf("bytes = %d, want 4096 (apparent length)", bytes)
	}
}

func TestResolverSkipsDuplicateHardLinks(t *testing.T) {
	shared := NewInodeFilter()
	r1 := NewResolver(Options{ApparentSize: true}, shared)
	r2 := NewResolver(Options{ApparentSize: true}, shared)
	m := metaWithInode(1, 42, false, 1000)

	b1, _ := r1.Resolve(walkengine.Entry{Path: "/a/link1", Meta: m})
	b2, _ := r2.Resolve(walkengine.Entry{Path: "/b/link2", Meta: m})

	if b1 != 1000 {
		t.Errorf("first resolve = %d, want 1000", b1)
	}
	if b2 != 0 {
		t.Errorf("second resolve of the same inode across a shared filter = %d, want 0", b2)
	}
}

func TestResolverCountHardLinksDisablesDedup(t *testing.T) {
	shared := NewInodeFilter()
	r1 := NewResolver(Options{ApparentSize: true, CountHardLinks: true}, shared)
	r2 := NewResolver(Options{ApparentSize: true, CountHardLinks: true}, shared)
	m := metaWithInode(1, 42, false, 1000)

	b1, _ := r1.Resolve(walkengine.Entry{Path: "/a/link1", Meta: m})
	b2, _ := r2.Resolve(walkengine.Entry{Path: "/b/link2", Meta: m})

	if b1 != 1000 || b2 != 1000 {
		t.Errorf("with CountHardLinks, both should resolve to 1000, got %d and %d", b1, b2)
	}
}

func TestResolverDirectoryContributesZero(t *testing.T) {
	r := NewResolver(Options{ApparentSize: true}, NewInodeFilter())
	m := metaWithInode(1, 1, true, 4096)

	bytes, _ := r.Resolve(walkengine.Entry{Path: "/dir", Meta: m})
	if bytes != 0 {
		t.Errorf("directory bytes = %d, want 0", bytes)
	}
}

func TestResolveErrorEntryContributesZero(t *testing.T) {
	r := NewResolver(Options{ApparentSize: true}, NewInodeFilter())
	bytes, sizeErr := r.Resolve(walkengine.Entry{Path: "/bad", Err: errors.New("stat failed")})
	if bytes != 0 || sizeErr {
		t.Errorf("bytes=%d sizeErr=%v, want 0,false for a walk-error entry", bytes, sizeErr)
	}
}
