package model

import "testing"

// scan builds /r with the given file sizes directly below the root
func scan(files map[string]int64) *Tree {
	tree := NewTree()
	root := tree.SetRoot(Node{Path: "/r", Name: "r", IsDir: true})
	for name, size := range files {
		tree.AddChild(root, Node{Path: "/r/" + name, Name: name, Size: size})
	}
	return tree
}

func TestDiff(t *testing.T) {
	prev := scan(map[string]int64{"old": 100, "same": 200, "grew": 50})
	cur := scan(map[string]int64{"same": 200, "grew": 350, "new": 300})

	changes := Diff(prev, cur)

	// root 350 -> 850, grew +300, new +300, old -100
	if len(changes) != 4 {
		t.Fatalf("expected 4 changes, got %+v", changes)
	}
	if changes[0].Path != "/r" || changes[0].Delta() != 500 {
		t.Errorf("expected root first with +500, got %+v", changes[0])
	}
	if changes[1].Path != "/r/grew" || changes[1].Before != 50 || changes[1].IsNew {
		t.Errorf("unexpected second change %+v", changes[1])
	}
	if changes[2].Path != "/r/new" || !changes[2].IsNew || changes[2].After != 300 {
		t.Errorf("unexpected third change %+v", changes[2])
	}
	if changes[3].Path != "/r/old" || !changes[3].IsDeleted || changes[3].Delta() != -100 {
		t.Errorf("unexpected fourth change %+v", changes[3])
	}
}

func TestDiffUnchanged(t *testing.T) {
	files := map[string]int64{"a": 1, "b": 2}
	if changes := Diff(scan(files), scan(files)); len(changes) != 0 {
		t.Errorf("expected no changes, got %+v", changes)
	}
}

func TestDiffNotComparable(t *testing.T) {
	other := NewTree()
	other.SetRoot(Node{Path: "/elsewhere", IsDir: true})

	if Diff(scan(nil), other) != nil {
		t.Error("different roots should not be compared")
	}
	if Diff(nil, scan(nil)) != nil || Diff(scan(nil), NewTree()) != nil {
		t.Error("empty trees should not be compared")
	}
}
