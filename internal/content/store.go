// Package content is the read-only Content Store: a flat directory holding
// one document per (category, component) pair.
package content

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	herrors "hyperui/internal/errors"
)

// Store reads documents from the root of a file system.
type Store struct {
	fsys fs.FS
}

// New returns a store over fsys.
func New(fsys fs.FS) *Store {
	return &Store{fsys: fsys}
}

// NewDir returns a store over the directory at dir.
func NewDir(dir string) *Store {
	return New(os.DirFS(dir))
}

// Names lists the regular files in the store root, sorted.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, herrors.FileSystemError("cannot list content store", err).Build()
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Read returns the bytes of the named document.
func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(s.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, herrors.NotFoundError("document does not exist").File(name).Build()
	}
	if err != nil {
		return nil, herrors.WrapError(err, herrors.CategoryFileSystem, "cannot read document").File(name).Build()
	}
	if !utf8.Valid(data) {
		return nil, herrors.NewError(herrors.CategoryParse, "document is not valid UTF-8").File(name).Build()
	}
	return data, nil
}
