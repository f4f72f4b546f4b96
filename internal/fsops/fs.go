// Package fsops provides the filesystem operations flatten relies on.
//
// All filesystem access in flatten goes through the FS interface. The
// implementation is backed by afero, so the same code runs against the real
// operating system or against an in-memory filesystem in tests.
//
// Key features:
//   - Lexically ordered recursive walks
//   - Rename that refuses to clobber an existing target
//   - Testable via the FS interface and NewMemFS
package fsops

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrExists is returned by Rename when the destination already exists.
var ErrExists = errors.New("destination already exists")

// FS provides an abstraction for filesystem operations.
type FS interface {
	// Stat returns file info, following symlinks. A missing path yields an
	// error matching os.ErrNotExist.
	Stat(path string) (os.FileInfo, error)

	// Exists checks if a path exists.
	Exists(path string) (bool, error)

	// Walk walks the tree rooted at root in lexical order, calling fn for
	// each entry including root. Symlinks are not followed.
	Walk(root string, fn filepath.WalkFunc) error

	// ReadDir returns the entries of a single directory sorted by name.
	ReadDir(path string) ([]os.FileInfo, error)

	// Rename moves oldpath to newpath. It fails with ErrExists if newpath
	// is already present.
	Rename(oldpath, newpath string) error

	// RemoveAll removes a path and all its contents.
	RemoveAll(path string) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string, perm os.FileMode) error

	// WriteFile creates or truncates a file with the given contents.
	WriteFile(path string, data []byte, perm os.FileMode) error
}

// AferoFS implements FS on top of an afero.Fs.
type AferoFS struct {
	fs afero.Fs
}

// New wraps an arbitrary afero filesystem.
func New(fs afero.Fs) *AferoFS {
	return &AferoFS{fs: fs}
}

// NewRealFS creates an FS backed by the operating system.
func NewRealFS() *AferoFS {
	return New(afero.NewOsFs())
}

// NewMemFS creates an empty in-memory FS.
func NewMemFS() *AferoFS {
	return New(afero.NewMemMapFs())
}

// Afero exposes the underlying afero filesystem.
func (a *AferoFS) Afero() afero.Fs {
	return a.fs
}

// Stat returns file info, following symlinks.
func (a *AferoFS) Stat(path string) (os.FileInfo, error) {
	return a.fs.Stat(path)
}

// Exists checks if a path exists.
func (a *AferoFS) Exists(path string) (bool, error) {
	return afero.Exists(a.fs, path)
}

// Walk walks the tree rooted at root in lexical order.
func (a *AferoFS) Walk(root string, fn filepath.WalkFunc) error {
	return afero.Walk(a.fs, root, fn)
}

// ReadDir returns the entries of path sorted by name.
func (a *AferoFS) ReadDir(path string) ([]os.FileInfo, error) {
	return afero.ReadDir(a.fs, path)
}

// Rename moves oldpath to newpath without overwriting an existing file.
func (a *AferoFS) Rename(oldpath, newpath string) error {
	if filepath.Clean(oldpath) == filepath.Clean(newpath) {
		return nil
	}

	exists, err := a.Exists(newpath)
	if err != nil {
		return fmt.Errorf("failed to check destination: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrExists, newpath)
	}

	return a.fs.Rename(oldpath, newpath)
}

// RemoveAll removes a path and all its contents.
func (a *AferoFS) RemoveAll(path string) error {
	return a.fs.RemoveAll(path)
}

// MkdirAll creates a directory and all parent directories.
func (a *AferoFS) MkdirAll(path string, perm os.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

// WriteFile creates or truncates a file with the given contents.
func (a *AferoFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	if err := a.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}
	return afero.WriteFile(a.fs, path, data, perm)
}
