// Package fsys is the filesystem capability the rewriter works through. It is a
// deliberately small surface over go-billy so the same code runs against the
// real disk and against an in-memory tree in tests.
package fsys

import (
	"os"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"gitlab.com/tozd/go/errors"
)

// FS lists, reads and overwrites files. WriteFile never creates a file.
type FS interface {
	Stat(name string) (os.FileInfo, error)
	ReadDir(dir string) ([]os.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// Billy implements FS using a go-billy filesystem.
type Billy struct {
	fs billy.Filesystem
}

var _ FS = (*Billy)(nil)

// New wraps the given go-billy filesystem.
func New(fsys billy.Filesystem) *Billy {
	return &Billy{fs: fsys}
}

// NewOS creates a filesystem rooted at dir on disk.
func NewOS(dir string) *Billy {
	return New(osfs.New(dir))
}

// NewMemory creates an empty in-memory filesystem.
func NewMemory() *Billy {
	return New(memfs.New())
}

// Raw returns the underlying go-billy filesystem.
func (b *Billy) Raw() billy.Filesystem {
	return b.fs
}

// Stat implements FS.Stat.
func (b *Billy) Stat(name string) (os.FileInfo, error) {
	info, err := b.fs.Stat(name)
	if err != nil {
		return nil, errors.Errorf("billy: stat %q: %w", name, err)
	}
	return info, nil
}

// ReadDir implements FS.ReadDir. Entries are sorted by name.
func (b *Billy) ReadDir(dir string) ([]os.FileInfo, error) {
	list, err := b.fs.ReadDir(dir)
	if err != nil {
		return nil, errors.Errorf("billy: readdir %q: %w", dir, err)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list, nil
}

// ReadFile implements FS.ReadFile.
func (b *Billy) ReadFile(name string) ([]byte, error) {
	data, err := util.ReadFile(b.fs, name)
	if err != nil {
		return nil, errors.Errorf("billy: readfile %q: %w", name, err)
	}
	return data, nil
}

// WriteFile implements FS.WriteFile. The file is truncated and overwritten in
// place; a file that no longer exists is an error.
func (b *Billy) WriteFile(name string, data []byte, perm os.FileMode) (err error) {
	f, err := b.fs.OpenFile(name, os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return errors.Errorf("billy: openfile %q: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Errorf("billy: close %q: %w", name, cerr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return errors.Errorf("billy: write %q: %w", name, err)
	}
	return nil
}
