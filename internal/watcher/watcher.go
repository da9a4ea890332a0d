// Package watcher reports filesystem changes below a scan root. Events are
// hints for a full rebuild; they are dropped when nobody keeps up.
package watcher

// EventType represents the type of filesystem event
type EventType int

const (
	EventDeleted EventType = iota
	EventCreated
	EventModified
	EventRenamed
)

func (t EventType) String() string {
	switch t {
	case EventDeleted:
		return "deleted"
	case EventCreated:
		return "created"
	case EventModified:
		return "modified"
	case EventRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// Event represents a filesystem change event
type Event struct {
	Type EventType
	Path string
}

const eventBuffer = 100

// send delivers ev without blocking the platform event loop
func send(ch chan Event, ev Event) {
	select {
	case ch <- ev:
	default:
	}
}
