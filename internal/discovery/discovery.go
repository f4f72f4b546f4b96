// Package discovery finds the files that a flatten job will move.
package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/exp/slog"

	"github.com/danieljhkim/flatten/internal/fsops"
	"github.com/danieljhkim/flatten/internal/logging"
	"github.com/danieljhkim/flatten/internal/planner"
)

// ErrNoFiles is returned when none of the roots contain a file.
var ErrNoFiles = errors.New("no files found")

// Result is the outcome of walking all roots.
type Result struct {
	// Files is every regular file beneath the roots, root by root
	Files []planner.SourceFile

	// SubdirCount is the number of directories beneath the roots
	SubdirCount int

	// Excluded is the full path of every file or directory an exclude
	// pattern matched. Nothing beneath an excluded directory is listed.
	Excluded []string
}

// Finder walks parent directories and collects the files beneath them.
// Create one with New.
type Finder struct {
	fs       fsops.FS
	excludes []string
	log      *slog.Logger
}

// Option configures a Finder.
type Option interface {
	apply(*Finder)
}

type optionFunc func(*Finder)

func (opt optionFunc) apply(f *Finder) {
	opt(f)
}

// WithLogger returns an Option that sets the logger of a Finder.
func WithLogger(h slog.Handler) Option {
	return optionFunc(func(f *Finder) {
		f.log = slog.New(h)
	})
}

// Exclude adds doublestar glob patterns. Patterns are matched against the
// slash-separated path relative to the root being walked, e.g. "**/*.tmp" or
// ".git". A matching file stays where it is; a matching directory is not
// descended into. Either way the path is reported in Result.Excluded.
func Exclude(pattern ...string) Option {
	return optionFunc(func(f *Finder) {
		for _, p := range pattern {
			if p = strings.TrimSpace(p); p != "" {
				f.excludes = append(f.excludes, p)
			}
		}
	})
}

// New creates a Finder that reads from fs.
func New(fs fsops.FS, opts ...Option) *Finder {
	f := &Finder{fs: fs}
	for _, opt := range opts {
		opt.apply(f)
	}
	if f.log == nil {
		f.log = logging.NopLogger()
	}
	return f
}

// Discover walks every root recursively. Files are returned in the order the
// roots were given; within a root they follow walk order. Every directory
// beneath a root counts towards SubdirCount, the root itself does not.
//
// ErrNoFiles is returned when no file was found under any root.
func (f *Finder) Discover(roots []string) (*Result, error) {
	for _, p := range f.excludes {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: exclude %q", doublestar.ErrBadPattern, p)
		}
	}

	res := &Result{}
	for _, root := range roots {
		found, err := f.walk(root)
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}

		f.log.Debug("Walked directory",
			"root", root,
			"files", len(found.Files),
			"subdirs", found.SubdirCount,
			"excluded", len(found.Excluded),
		)

		res.Files = append(res.Files, found.Files...)
		res.SubdirCount += found.SubdirCount
		res.Excluded = append(res.Excluded, found.Excluded...)
	}

	if len(res.Files) == 0 {
		return res, ErrNoFiles
	}

	return res, nil
}

func (f *Finder) walk(root string) (*Result, error) {
	res := &Result{}

	err := f.fs.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relative path of %s: %w", path, err)
		}

		if f.excluded(rel) {
			res.Excluded = append(res.Excluded, path)
			if info.IsDir() {
				f.log.Debug("Skipping directory", "dir", path, "reason", "excluded")
				return filepath.SkipDir
			}
			f.log.Debug("Skipping file", "path", path, "reason", "excluded")
			return nil
		}

		if info.IsDir() {
			res.SubdirCount++
			return nil
		}

		if !info.Mode().IsRegular() {
			f.log.Debug("Skipping file", "path", path, "reason", "not a regular file")
			return nil
		}

		res.Files = append(res.Files, planner.SourceFile{
			Root: root,
			Path: path,
			Name: info.Name(),
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (f *Finder) excluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, p := range f.excludes {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
