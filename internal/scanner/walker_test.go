package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestSurvey(t *testing.T) {
	// Create temp directory structure
	tmp := t.TempDir()

	os.MkdirAll(filepath.Join(tmp, "subdir", "nested"), 0755)
	os.WriteFile(filepath.Join(tmp, "file1.txt"), []byte("hello"), 0644)
	os.WriteFile(filepath.Join(tmp, "subdir", "file2.txt"), []byte("world!"), 0644)
	os.WriteFile(filepath.Join(tmp, "subdir", "nested", "file3.txt"), []byte("!"), 0644)

	sum, err := Survey(context.Background(), tmp, 4)
	if err != nil {
		t.Fatalf("survey failed: %v", err)
	}

	if sum.Files != 3 {
		t.Errorf("expected 3 files, got %d", sum.Files)
	}
	if sum.Dirs != 2 {
		t.Errorf("expected 2 dirs, got %d", sum.Dirs)
	}
	if sum.Bytes != 12 {
		t.Errorf("expected 12 bytes, got %d", sum.Bytes)
	}
	// On Windows: logical size; on Unix: allocated blocks
	t.Logf("disk bytes: %d", sum.DiskBytes)

	// The tree rollup must agree with the survey
	tree := NewBuilder(OS{}).Build(context.Background(), tmp)
	if got := tree.Node(tree.Root()).Size; got != sum.Bytes {
		t.Errorf("tree size %d disagrees with survey %d", got, sum.Bytes)
	}
}

func TestSurveyMissingRoot(t *testing.T) {
	_, err := Survey(context.Background(), filepath.Join(t.TempDir(), "missing"), 2)
	if err == nil {
		t.Error("expected error for missing root")
	}
}
