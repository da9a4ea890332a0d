package watcher

import "testing"

func TestEventTypeString(t *testing.T) {
	tests := map[EventType]string{
		EventDeleted:  "deleted",
		EventCreated:  "created",
		EventModified: "modified",
		EventRenamed:  "renamed",
		EventType(99): "unknown",
	}
	for typ, want := range tests {
		if got := typ.String(); got != want {
			t.Errorf("%d: expected %q, got %q", typ, want, got)
		}
	}
}

func TestSendDropsWhenFull(t *testing.T) {
	ch := make(chan Event, 1)
	send(ch, Event{Type: EventCreated, Path: "/a"})
	send(ch, Event{Type: EventDeleted, Path: "/b"})

	if len(ch) != 1 {
		t.Fatalf("expected 1 buffered event, got %d", len(ch))
	}
	if ev := <-ch; ev.Path != "/a" {
		t.Errorf("expected the first event to survive, got %+v", ev)
	}
}

func TestStopClosesEvents(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if err := w.AddRecursive(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	w.Start()

	if err := w.Stop(); err != nil {
		t.Fatal(err)
	}
	// A second stop is harmless
	if err := w.Stop(); err != nil {
		t.Fatal(err)
	}

	for range w.Events() {
	}
}
