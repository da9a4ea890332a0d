//go:build !windows

package scanner

import (
	"io/fs"
	"sync"
	"syscall"
)

// diskUsage returns the allocated size of a file, or -1 if the file was
// already counted through another hard link
func diskUsage(info fs.FileInfo, seenItems *sync.Map) int64 {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.Size()
	}

	// Check for hard links (nlink > 1)
	if stat.Nlink > 1 {
		if _, exists := seenItems.LoadOrStore(stat.Ino, true); exists {
			return -1 // Already counted
		}
	}

	// Blocks is in 512-byte units (handles sparse files)
	return stat.Blocks * 512
}
