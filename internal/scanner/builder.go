package scanner

import (
	"context"
	"io/fs"

	"github.com/lumipallolabs/diskmap/internal/logging"
	"github.com/lumipallolabs/diskmap/internal/model"
)

// Builder builds a model.Tree with a breadth-first walk. A Builder is meant
// for a single Build; create a new one per scan.
type Builder struct {
	fs         FileSystem
	progressCh chan Progress
	progress   Progress
}

// NewBuilder creates a tree builder reading from fsys (OS if nil)
func NewBuilder(fsys FileSystem) *Builder {
	if fsys == nil {
		fsys = OS{}
	}
	return &Builder{
		fs:         fsys,
		progressCh: make(chan Progress, 100),
	}
}

// Progress returns the progress channel. It is closed when Build returns.
func (b *Builder) Progress() <-chan Progress {
	return b.progressCh
}

var _ Scanner = (*Builder)(nil)

// Scan implements Scanner
func (b *Builder) Scan(ctx context.Context, root string) *model.Tree {
	return b.Build(ctx, root)
}

// Build walks root breadth-first. A missing root gives an empty tree;
// cancellation stops the walk and returns what was built so far.
func (b *Builder) Build(ctx context.Context, root string) *model.Tree {
	defer close(b.progressCh)

	tree := model.NewTree()

	info, err := b.fs.Stat(root)
	if err != nil {
		logging.Scanner.Debug("root not accessible", "path", root, "err", err)
		return tree
	}

	rootID := tree.SetRoot(newNode(root, info))
	queue := []model.NodeID{rootID}

	for len(queue) > 0 {
		if ctx.Err() != nil {
			logging.Scanner.Debug("build cancelled", "path", root, "pending", len(queue))
			break
		}

		id := queue[0]
		queue = queue[1:]

		dir := tree.Node(id)
		tree.Observe(dir.LastModified)
		dirPath := dir.Path

		entries, err := b.fs.ReadDir(dirPath)
		if err != nil {
			// Treat as a directory without further children
			logging.Scanner.Debug("read dir failed", "path", dirPath, "err", err)
			continue
		}
		b.progress.DirsScanned++

		for _, e := range entries {
			if ctx.Err() != nil {
				break
			}

			child := newNode(b.fs.Join(dirPath, e.Name()), e)
			childID := tree.AddChild(id, child)
			if child.IsDir {
				queue = append(queue, childID)
			} else {
				b.progress.FilesScanned++
				b.progress.BytesFound += child.Size
			}
		}

		b.progress.CurrentPath = dirPath
		b.report()
	}

	return tree
}

// report publishes progress without blocking the walk
func (b *Builder) report() {
	select {
	case b.progressCh <- b.progress:
	default:
	}
}

func newNode(path string, info fs.FileInfo) model.Node {
	n := model.Node{
		Path:         path,
		Name:         info.Name(),
		IsDir:        info.IsDir(),
		LastModified: info.ModTime(),
	}
	if !n.IsDir {
		n.Size = info.Size()
	}
	return n
}

