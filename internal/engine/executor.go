package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/danieljhkim/flatten/internal/planner"
)

// Execute applies a planned job: every file is moved to its target path in
// plan order, then, if deleteSubdirs is set, every directory directly
// beneath each root is removed recursively. A directory that is or holds an
// excluded path is kept.
//
// Execution stops at the first failure. Moves already made are not rolled
// back; the returned result lists them. Cancellation is only honoured before
// the first change.
func (e *Engine) Execute(ctx context.Context, job *planner.Job, deleteSubdirs bool) (*ExecuteResult, error) {
	res := &ExecuteResult{
		Moved: []planner.Mapping{},
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	for _, m := range job.Mappings {
		if m.InPlace() {
			res.Skipped = append(res.Skipped, m.OldPath)
			continue
		}

		if err := e.fs.Rename(m.OldPath, m.NewPath); err != nil {
			return res, fmt.Errorf("%w %s: %w", ErrMove, m.OldPath, err)
		}
		e.log.Debug("Moved file", "from", m.OldPath, "to", m.NewPath)
		res.Moved = append(res.Moved, m)
	}

	if !deleteSubdirs {
		return res, nil
	}

	for _, root := range job.Roots {
		entries, err := e.fs.ReadDir(root)
		if err != nil {
			return res, fmt.Errorf("%w %s: %w", ErrDelete, root, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			dir := filepath.Join(root, entry.Name())
			if holdsExcluded(dir, job.Excluded) {
				e.log.Debug("Keeping directory", "path", dir, "reason", "excluded")
				res.KeptDirs = append(res.KeptDirs, dir)
				continue
			}
			if err := e.fs.RemoveAll(dir); err != nil {
				return res, fmt.Errorf("%w %s: %w", ErrDelete, dir, err)
			}
			e.log.Debug("Deleted directory", "path", dir)
			res.DeletedDirs = append(res.DeletedDirs, dir)
		}
	}

	return res, nil
}

func holdsExcluded(dir string, excluded []string) bool {
	for _, p := range excluded {
		if isWithin(dir, p) {
			return true
		}
	}
	return false
}
