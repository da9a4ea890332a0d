package scanner

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// FileSystem is the filesystem capability the tree builder depends on.
// Stat resolves the scan root and follows symlinks. ReadDir reports entries
// without following them and skips those that cannot be inspected.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.FileInfo, error)
	Join(elem ...string) string
}

// OS reads the host filesystem. A symlinked root is followed; symlinks
// below it are reported as themselves and never followed.
type OS struct{}

// Stat implements FileSystem
func (OS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// ReadDir implements FileSystem
func (OS) ReadDir(name string) ([]fs.FileInfo, error) {
	entries, err := os.ReadDir(name)
	if err != nil && len(entries) == 0 {
		return nil, err
	}
	infos := make([]fs.FileInfo, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			// Vanished or inaccessible since the directory was read
			continue
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Join implements FileSystem
func (OS) Join(elem ...string) string {
	return filepath.Join(elem...)
}

// FromFS adapts an fs.FS (for example fstest.MapFS) to FileSystem.
// Paths are slash separated and relative to the root of fsys.
func FromFS(fsys fs.FS) FileSystem {
	return iofs{fsys: fsys}
}

type iofs struct {
	fsys fs.FS
}

func (f iofs) Stat(name string) (fs.FileInfo, error) {
	return fs.Stat(f.fsys, clean(name))
}

func (f iofs) ReadDir(name string) ([]fs.FileInfo, error) {
	entries, err := fs.ReadDir(f.fsys, clean(name))
	if err != nil {
		return nil, err
	}
	infos := make([]fs.FileInfo, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (f iofs) Join(elem ...string) string {
	return clean(path.Join(elem...))
}

func clean(name string) string {
	name = strings.TrimPrefix(path.Clean(name), "/")
	if name == "" {
		return "."
	}
	return name
}
