//go:build windows

package walkengine

import (
	"os"

	"golang.org/x/sys/windows"
)

// statMetadata builds a Metadata snapshot on Windows. Inode numbers are not
// exposed by os.FileInfo on this platform, so HasInode stays false and
// InodeFilter treats every entry as independently sighted (spec.md §4.1).
// Allocated size is queried via GetCompressedFileSizeW, the Windows
// equivalent of POSIX st_blocks, following the same x/sys/windows API
// surface used for disk stats in the example pack (xBen-Harveyx-GoSize's
// use of windows.GetDiskFreeSpaceEx).
func statMetadata(fi os.FileInfo) Metadata {
	m := Metadata{
		IsDir: fi.IsDir(),
		Len:   fi.Size(),
		Mode:  fi.Mode(),
		MTime: fi.ModTime(),
	}
	return m
}

// AllocatedSize returns the "size on disk" for path via
// GetCompressedFileSizeW. It returns ok=false on failure so callers fall
// back to the SizeResolver error path.
func AllocatedSize(m *Metadata, path string) (size int64, ok bool) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, false
	}

	var high uint32
	low, err := windows.GetCompressedFileSize(p, &high)
	if err != nil {
		return 0, false
	}

	return int64(high)<<32 | int64(low), true
}
