package core

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/lumipallolabs/diskmap/internal/logging"
	"github.com/lumipallolabs/diskmap/internal/model"
	"github.com/lumipallolabs/diskmap/internal/scanner"
	"github.com/lumipallolabs/diskmap/internal/treemap"
	"github.com/lumipallolabs/diskmap/internal/watcher"
)

// DefaultDebounce is the quiet period after a filesystem change before the
// tree is rebuilt
const DefaultDebounce = 500 * time.Millisecond

type Options struct {
	FS       scanner.FileSystem // OS if nil
	Treemap  treemap.Options
	Debounce time.Duration
}

// Controller runs the build pipeline (tree, then map) without UI
// dependencies. Every request cancels the build in flight; results of a
// superseded generation are dropped.
type Controller struct {
	mu sync.RWMutex

	opts      Options
	root      string
	container model.Rect
	tree      *model.Tree
	treemap   *treemap.Map
	scan      ScanState
	err       error

	// pending is a finished tree whose map is still being laid out
	pending *model.Tree

	generation uint64
	cancel     context.CancelFunc

	watcher      *watcher.Watcher
	rebuildTimer *time.Timer

	eventCh chan Event
	done    chan struct{}
	stopped bool
}

// NewController creates a controller for the directory tree at root
func NewController(root string, opts Options) *Controller {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Treemap.Strategy == nil && opts.Treemap.PaletteSize == 0 {
		opts.Treemap = treemap.DefaultOptions()
	}
	return &Controller{
		opts:    opts,
		root:    root,
		eventCh: make(chan Event, 100),
		done:    make(chan struct{}),
	}
}

// Events returns the controller's event stream
func (c *Controller) Events() <-chan Event {
	return c.eventCh
}

// Snapshot returns the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		Root:       c.root,
		Generation: c.generation,
		Container:  c.container,
		Tree:       c.tree,
		Map:        c.treemap,
		Scan:       c.scan,
		Err:        c.err,
	}
}

// Rescan rebuilds the tree and the map
func (c *Controller) Rescan() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startLocked(true)
}

// Resize lays the current tree out in a new container. A scan in flight
// picks the new container up when it reaches the layout phase.
func (c *Controller) Resize(container model.Rect) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.container == container {
		return c.generation
	}
	c.container = container
	if c.scan.Phase == PhaseScanning || (c.tree == nil && c.pending == nil) {
		return c.generation
	}
	return c.startLocked(false)
}

// Navigate makes path the new root and rebuilds
func (c *Controller) Navigate(path string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.root = path
	gen := c.startLocked(true)
	if c.watcher != nil {
		if err := c.restartWatcherLocked(); err != nil {
			logging.Core.Debug("watcher not restarted", "path", path, "err", err)
		}
	}
	return gen
}

// Parent navigates to the directory above the root. It reports false when
// the root has no parent.
func (c *Controller) Parent() (uint64, bool) {
	c.mu.RLock()
	root := c.root
	c.mu.RUnlock()

	parent := filepath.Dir(filepath.Clean(root))
	if parent == filepath.Clean(root) {
		return 0, false
	}
	return c.Navigate(parent), true
}

// startLocked cancels the build in flight and starts generation+1.
// Caller must hold c.mu.
func (c *Controller) startLocked(rescan bool) uint64 {
	if c.stopped {
		return c.generation
	}
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.generation++

	var tree, prev *model.Tree
	if rescan {
		prev = c.tree
	} else {
		tree = c.pending
		if tree == nil {
			tree = c.tree
		}
	}
	if tree == nil {
		c.pending = nil
		c.scan = ScanState{Phase: PhaseScanning, StartTime: time.Now()}
	} else {
		c.scan = ScanState{Phase: PhaseLayout, StartTime: time.Now()}
	}

	go c.run(ctx, c.generation, c.root, tree, prev)
	return c.generation
}

// run builds a tree (unless one is given) and a map, then swaps both in if
// gen is still current. A rebuilt tree is compared against prev.
func (c *Controller) run(ctx context.Context, gen uint64, root string, tree, prev *model.Tree) {
	var changes []model.Change
	if tree == nil {
		tree = c.buildTree(ctx, gen, root)
		if ctx.Err() != nil {
			logging.Core.Debug("build superseded", "generation", gen, "phase", PhaseScanning)
			return
		}
		changes = model.Diff(prev, tree)
		if len(changes) > 0 {
			logging.Core.Debug("tree changed", "generation", gen, "changes", len(changes), "largest", changes[0].Path)
		}

		c.mu.Lock()
		if gen == c.generation {
			c.scan.Phase = PhaseLayout
			c.pending = tree
		}
		c.mu.Unlock()
		c.emit(ScanPhaseChangedEvent{Generation: gen, Phase: PhaseLayout})
	}

	c.mu.RLock()
	container := c.container
	c.mu.RUnlock()

	m, err := treemap.NewBuilder(c.opts.Treemap).Build(ctx, container, tree)
	if ctx.Err() != nil {
		logging.Core.Debug("build superseded", "generation", gen, "phase", PhaseLayout)
		return
	}
	if err != nil {
		logging.Core.Debug("layout failed", "generation", gen, "err", err)
	}

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		logging.Core.Debug("dropping stale result", "generation", gen)
		return
	}
	c.tree = tree
	c.treemap = m
	c.pending = nil
	c.err = err
	c.scan.Phase = PhaseIdle
	c.cancel()
	c.cancel = nil
	c.mu.Unlock()

	logging.Core.Debug("build complete", "generation", gen, "nodes", tree.Len(), "entries", m.Len())
	c.emit(LayoutCompletedEvent{Generation: gen, Entries: m.Len(), Changes: changes, Err: err})
}

func (c *Controller) buildTree(ctx context.Context, gen uint64, root string) *model.Tree {
	var s scanner.Scanner = scanner.NewBuilder(c.opts.FS)
	c.emit(ScanStartedEvent{Generation: gen, Path: root})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for p := range s.Progress() {
			c.mu.Lock()
			if gen == c.generation {
				c.scan.FilesScanned = p.FilesScanned
				c.scan.BytesFound = p.BytesFound
			}
			c.mu.Unlock()
			c.emitLossy(ScanProgressEvent{Generation: gen, Progress: p})
		}
	}()

	tree := s.Scan(ctx, root)
	wg.Wait()
	return tree
}

// StartWatching rebuilds after filesystem changes below the root settle
func (c *Controller) StartWatching() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return nil
	}
	return c.restartWatcherLocked()
}

func (c *Controller) restartWatcherLocked() error {
	if c.watcher != nil {
		_ = c.watcher.Stop()
		c.watcher = nil
	}

	w, err := watcher.New()
	if err != nil {
		return err
	}
	if err := w.AddRecursive(c.root); err != nil {
		logging.Core.Debug("failed to add recursive watch", "path", c.root, "err", err)
		return err
	}
	w.Start()
	c.watcher = w
	logging.Core.Debug("filesystem watcher started", "path", c.root)

	go c.watchLoop(w)
	return nil
}

func (c *Controller) watchLoop(w *watcher.Watcher) {
	for event := range w.Events() {
		c.notifyChange(event)
	}
}

// notifyChange schedules a rebuild once changes stop arriving for the
// debounce period
func (c *Controller) notifyChange(event watcher.Event) {
	c.emitLossy(ChangeDetectedEvent{Event: event})

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	if c.rebuildTimer != nil {
		c.rebuildTimer.Stop()
	}
	c.rebuildTimer = time.AfterFunc(c.opts.Debounce, func() {
		logging.Core.Debug("rebuilding after filesystem change", "path", event.Path)
		c.Rescan()
	})
}

// Stop cancels the build in flight and releases the watcher
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}
	c.stopped = true
	close(c.done)

	if c.cancel != nil {
		c.cancel()
	}
	if c.rebuildTimer != nil {
		c.rebuildTimer.Stop()
	}
	if c.watcher != nil {
		_ = c.watcher.Stop()
	}
}

// emit sends an event, giving up once the controller is stopped
func (c *Controller) emit(event Event) {
	select {
	case c.eventCh <- event:
	case <-c.done:
	}
}

// emitLossy sends an event unless the channel is full
func (c *Controller) emitLossy(event Event) {
	select {
	case c.eventCh <- event:
	default:
	}
}
