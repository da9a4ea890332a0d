package core

import (
	"github.com/lumipallolabs/diskmap/internal/model"
	"github.com/lumipallolabs/diskmap/internal/scanner"
	"github.com/lumipallolabs/diskmap/internal/watcher"
)

// Event represents a state change from the controller
type Event interface {
	isEvent()
}

// ScanStartedEvent is emitted when a build begins walking the filesystem
type ScanStartedEvent struct {
	Generation uint64
	Path       string
}

func (ScanStartedEvent) isEvent() {}

// ScanProgressEvent is emitted during scanning. Progress events are dropped
// when the consumer falls behind.
type ScanProgressEvent struct {
	Generation uint64
	scanner.Progress
}

func (ScanProgressEvent) isEvent() {}

// ScanPhaseChangedEvent is emitted when a build moves to its next phase
type ScanPhaseChangedEvent struct {
	Generation uint64
	Phase      ScanPhase
}

func (ScanPhaseChangedEvent) isEvent() {}

// LayoutCompletedEvent is emitted when a tree and map were swapped in.
// Changes lists what differs from the previous scan of the same root. Err
// is set when the layout stopped early; the partial map is still shown.
type LayoutCompletedEvent struct {
	Generation uint64
	Entries    int
	Changes    []model.Change
	Err        error
}

func (LayoutCompletedEvent) isEvent() {}

// ChangeDetectedEvent is emitted for filesystem changes below the root,
// before the debounced rebuild starts
type ChangeDetectedEvent struct {
	watcher.Event
}

func (ChangeDetectedEvent) isEvent() {}

// ErrorEvent is emitted when an error occurs outside a build
type ErrorEvent struct {
	Err error
}

func (ErrorEvent) isEvent() {}
