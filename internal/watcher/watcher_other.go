//go:build !darwin && !windows

package watcher

import "sync"

// Watcher never reports changes on this platform; rescans are manual
type Watcher struct {
	eventCh chan Event
	once    sync.Once
}

func New() (*Watcher, error) {
	return &Watcher{
		eventCh: make(chan Event, eventBuffer),
	}, nil
}

func (w *Watcher) Events() <-chan Event {
	return w.eventCh
}

func (w *Watcher) AddRecursive(root string) error {
	return nil
}

func (w *Watcher) Start() {
}

func (w *Watcher) Stop() error {
	w.once.Do(func() { close(w.eventCh) })
	return nil
}
