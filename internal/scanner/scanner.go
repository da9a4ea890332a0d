package scanner

import (
	"context"

	"github.com/lumipallolabs/diskmap/internal/model"
)

// Progress reports scanning progress
type Progress struct {
	FilesScanned int64
	DirsScanned  int64
	BytesFound   int64
	CurrentPath  string
}

// Scanner defines the interface for building a filesystem tree
type Scanner interface {
	// Scan builds the tree rooted at root. A cancelled context yields the
	// partial tree built so far.
	Scan(ctx context.Context, root string) *model.Tree

	// Progress returns a channel that receives progress updates
	Progress() <-chan Progress
}
