package model

import (
	"testing"
	"time"
)

func TestEmptyTree(t *testing.T) {
	tree := NewTree()

	if !tree.IsEmpty() {
		t.Fatal("new tree should be empty")
	}
	if tree.Root() != NoNode {
		t.Errorf("expected NoNode root, got %d", tree.Root())
	}
	if !tree.Oldest.Equal(MaxTime) || !tree.Newest.Equal(MinTime) {
		t.Errorf("expected sentinel timestamps, got %v / %v", tree.Oldest, tree.Newest)
	}
	if tree.Span() != 0 {
		t.Errorf("expected zero span, got %v", tree.Span())
	}
}

func TestNodeSize(t *testing.T) {
	tree := NewTree()
	root := tree.SetRoot(Node{Name: "folder", IsDir: true})
	tree.AddChild(root, Node{Name: "file1.txt", Size: 100})
	tree.AddChild(root, Node{Name: "file2.txt", Size: 200})

	if got := tree.Node(root).Size; got != 300 {
		t.Errorf("expected 300, got %d", got)
	}
}

func TestSizeRollupNested(t *testing.T) {
	tree := NewTree()
	root := tree.SetRoot(Node{Name: "root", IsDir: true})
	a := tree.AddChild(root, Node{Name: "a", IsDir: true})
	b := tree.AddChild(a, Node{Name: "b", IsDir: true})

	tree.AddChild(root, Node{Name: "f10", Size: 10})
	tree.AddChild(a, Node{Name: "f20", Size: 20})
	tree.AddChild(b, Node{Name: "f30", Size: 30})

	checks := map[NodeID]int64{root: 60, a: 50, b: 30}
	for id, want := range checks {
		if got := tree.Node(id).Size; got != want {
			t.Errorf("%s: expected size %d, got %d", tree.Node(id).Name, want, got)
		}
	}
}

func TestAddChildIgnoresDirectorySize(t *testing.T) {
	tree := NewTree()
	root := tree.SetRoot(Node{Name: "root", IsDir: true})
	tree.AddChild(root, Node{Name: "dir", IsDir: true, Size: 4096})

	if got := tree.Node(root).Size; got != 0 {
		t.Errorf("directory entries must not contribute size, got %d", got)
	}
}

func TestObserve(t *testing.T) {
	tree := NewTree()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tree.Observe(base.Add(48 * time.Hour))
	tree.Observe(base)
	tree.Observe(base.Add(24 * time.Hour))

	if !tree.Oldest.Equal(base) {
		t.Errorf("oldest = %v, want %v", tree.Oldest, base)
	}
	if !tree.Newest.Equal(base.Add(48 * time.Hour)) {
		t.Errorf("newest = %v, want %v", tree.Newest, base.Add(48*time.Hour))
	}
}

func TestWalkAndFind(t *testing.T) {
	tree := NewTree()
	root := tree.SetRoot(Node{Path: "/r", Name: "r", IsDir: true})
	a := tree.AddChild(root, Node{Path: "/r/a", Name: "a", IsDir: true})
	tree.AddChild(root, Node{Path: "/r/b", Name: "b", Size: 1})
	deep := tree.AddChild(a, Node{Path: "/r/a/c", Name: "c", Size: 2})

	var order []string
	tree.Walk(func(id NodeID, n *Node) bool {
		order = append(order, n.Name)
		return true
	})
	want := []string{"r", "a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("walk[%d] = %s, want %s", i, order[i], want[i])
		}
	}

	if got := tree.Find("/r/a/c"); got != deep {
		t.Errorf("Find returned %d, want %d", got, deep)
	}
	if got := tree.Find("/nope"); got != NoNode {
		t.Errorf("Find on missing path returned %d", got)
	}
	if anc := tree.Ancestors(deep); len(anc) != 2 || anc[0] != a || anc[1] != root {
		t.Errorf("unexpected ancestors %v", anc)
	}
}

func TestSortBySize(t *testing.T) {
	tree := NewTree()
	root := tree.SetRoot(Node{Name: "root", IsDir: true})
	tree.AddChild(root, Node{Name: "small", Size: 100})
	tree.AddChild(root, Node{Name: "large", Size: 1000})
	tree.AddChild(root, Node{Name: "empty", Size: 0})
	tree.AddChild(root, Node{Name: "medium", Size: 500})

	ids := tree.SizedChildren(root)
	if len(ids) != 3 {
		t.Fatalf("expected 3 sized children, got %d", len(ids))
	}
	if tree.Node(ids[0]).Name != "large" {
		t.Errorf("expected 'large' first, got %s", tree.Node(ids[0]).Name)
	}
	if tree.Node(ids[2]).Name != "small" {
		t.Errorf("expected 'small' last, got %s", tree.Node(ids[2]).Name)
	}
}

func TestSortBySizeKeepsEnumerationOrderForTies(t *testing.T) {
	tree := NewTree()
	root := tree.SetRoot(Node{Name: "root", IsDir: true})
	// Not in name order, as a filesystem may enumerate them
	tree.AddChild(root, Node{Name: "zeta", Size: 200})
	tree.AddChild(root, Node{Name: "big", Size: 900})
	tree.AddChild(root, Node{Name: "alpha", Size: 200})
	tree.AddChild(root, Node{Name: "mid", Size: 200})

	ids := tree.SizedChildren(root)
	var names []string
	for _, id := range ids {
		names = append(names, tree.Node(id).Name)
	}
	want := []string{"big", "zeta", "alpha", "mid"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}
