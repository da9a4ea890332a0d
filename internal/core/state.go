package core

import (
	"time"

	"github.com/lumipallolabs/diskmap/internal/model"
	"github.com/lumipallolabs/diskmap/internal/treemap"
)

// ScanPhase represents the current phase of a build
type ScanPhase int

const (
	PhaseIdle ScanPhase = iota
	PhaseScanning
	PhaseLayout
)

// String returns a human-readable phase name
func (p ScanPhase) String() string {
	switch p {
	case PhaseScanning:
		return "Scanning files"
	case PhaseLayout:
		return "Laying out"
	default:
		return ""
	}
}

// ScanState holds the progress of the current build
type ScanState struct {
	Phase        ScanPhase
	StartTime    time.Time
	FilesScanned int64
	BytesFound   int64
}

// IsBusy returns true while a build is in flight
func (s ScanState) IsBusy() bool {
	return s.Phase != PhaseIdle
}

// Elapsed returns time since the build started
func (s ScanState) Elapsed() time.Duration {
	if s.StartTime.IsZero() {
		return 0
	}
	return time.Since(s.StartTime).Truncate(time.Second)
}

// Snapshot is a read-only view of the controller. Tree and Map always come
// from the same build.
type Snapshot struct {
	Root       string
	Generation uint64
	Container  model.Rect
	Tree       *model.Tree
	Map        *treemap.Map
	Scan       ScanState
	Err        error
}
