package scanner

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
)

// Summary holds totals gathered by Survey
type Summary struct {
	Files      int64
	Dirs       int64
	Bytes      int64 // logical file lengths, comparable to the tree rollup
	DiskBytes  int64 // allocated blocks, hard links counted once
	Unreadable int64
}

// Survey counts the tree under root with a parallel walk. It is much faster
// than Build and is used to cross-check the tree's size rollup.
func Survey(ctx context.Context, root string, workers int) (Summary, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Summary{}, err
	}
	// Follow a symlinked root the way Build does
	if absRoot, err = filepath.EvalSymlinks(absRoot); err != nil {
		return Summary{}, err
	}

	var sum Summary
	var seenItems sync.Map

	conf := &fastwalk.Config{
		Follow:     false, // Don't follow symlinks
		NumWorkers: workers,
	}

	walkErr := fastwalk.Walk(conf, absRoot, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			if path == absRoot {
				return err
			}
			atomic.AddInt64(&sum.Unreadable, 1)
			return nil // Skip entries with errors
		}

		if path == absRoot {
			return nil
		}

		if d.IsDir() {
			atomic.AddInt64(&sum.Dirs, 1)
			return nil
		}

		info, err := d.Info()
		if err != nil {
			atomic.AddInt64(&sum.Unreadable, 1)
			return nil
		}

		atomic.AddInt64(&sum.Files, 1)
		atomic.AddInt64(&sum.Bytes, info.Size())
		if size := diskUsage(info, &seenItems); size > 0 {
			atomic.AddInt64(&sum.DiskBytes, size)
		}
		return nil
	})

	if walkErr != nil && !errors.Is(walkErr, context.Canceled) && !errors.Is(walkErr, context.DeadlineExceeded) {
		return sum, walkErr
	}
	return sum, nil
}
