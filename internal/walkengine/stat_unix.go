//go:build unix

package walkengine

import (
	"os"
	"syscall"
)

// statMetadata builds a Metadata snapshot from a Lstat'd os.FileInfo, pulling
// device/inode/nlink/blocks out of the platform syscall.Stat_t the same way
// disk-peek's walker extracts sparse-file-aware block counts
// (internal/scanner/walker.go: "stat.Blocks * 512").
func statMetadata(fi os.FileInfo) Metadata {
	m := Metadata{
		IsDir: fi.IsDir(),
		Len:   fi.Size(),
		Mode:  fi.Mode(),
		MTime: fi.ModTime(),
	}

	if st, ok := fi.Sys().(*syscall.Stat_t); ok {
		m.Device = uint64(st.Dev)
		m.Inode = st.Ino
		m.Nlink = uint64(st.Nlink)
		m.HasInode = true
		m.Blocks = st.Blocks
		m.BlockSize = 512
	}

	return m
}

// AllocatedSize returns the on-disk footprint of path using the
// st_blocks × 512 metadata already captured by statMetadata.
func AllocatedSize(m *Metadata, path string) (int64, bool) {
	if m.BlockSize <= 0 {
		return 0, false
	}
	return m.Blocks * 512, true
}
