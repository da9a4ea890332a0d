// Package treemap turns a scanned tree into positioned, colored rectangles
// and answers point queries against them.
package treemap

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/lumipallolabs/diskmap/internal/model"
)

// Label is the title drawn at the top-left of an entry
type Label struct {
	Text     string
	Position model.Point
	Size     float64
}

// Entry is one node placed on the map
type Entry struct {
	Node  model.NodeID
	Rect  model.Rect
	Label Label
	Color int // index into the palette, 0 = newest
}

// Map is the result of one layout pass. It references nodes of the tree it
// was built from and must be discarded together with that tree.
type Map struct {
	entries []Entry
	index   map[model.NodeID]int
}

func newMap() *Map {
	return &Map{index: make(map[model.NodeID]int)}
}

func (m *Map) add(e Entry) {
	m.index[e.Node] = len(m.entries)
	m.entries = append(m.entries, e)
}

// Entries returns the entries in placement (breadth-first) order
func (m *Map) Entries() []Entry {
	if m == nil {
		return nil
	}
	return m.entries
}

// Len returns the number of entries
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Lookup returns the entry placed for node id
func (m *Map) Lookup(id model.NodeID) (Entry, bool) {
	if m == nil {
		return Entry{}, false
	}
	i, ok := m.index[id]
	if !ok {
		return Entry{}, false
	}
	return m.entries[i], true
}

// Fingerprint hashes the geometry and colors of the map. Two maps built from
// the same tree and container have the same fingerprint.
func (m *Map) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		d.Write(buf[:])
	}
	for _, e := range m.Entries() {
		put(uint64(e.Node))
		put(math.Float64bits(e.Rect.X))
		put(math.Float64bits(e.Rect.Y))
		put(math.Float64bits(e.Rect.W))
		put(math.Float64bits(e.Rect.H))
		put(uint64(e.Color))
	}
	return d.Sum64()
}
