package engine

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/danieljhkim/flatten/internal/discovery"
	"github.com/danieljhkim/flatten/internal/planner"
	"github.com/danieljhkim/flatten/internal/report"
)

// Plan validates the request and builds the job without changing the
// filesystem.
//
// Algorithm steps:
// 1. Resolve and deduplicate the parent directories
// 2. Check that every parent directory exists
// 3. Discover files and sub-directories
// 4. Detect collisions and assign target paths
// 5. Refuse the job if any target path is already taken
func (e *Engine) Plan(ctx context.Context, req *FlattenRequest) (*planner.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	roots, err := normalizeDirectories(req.Directories, req.CWD)
	if err != nil {
		return nil, err
	}

	for _, root := range roots {
		info, err := e.fs.Stat(root)
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, root)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", root, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%w: %s is not a directory", ErrNotFound, root)
		}
	}

	finder := discovery.New(e.fs,
		discovery.WithLogger(e.log.Handler()),
		discovery.Exclude(req.Exclude...),
	)
	found, err := finder.Discover(roots)
	if err != nil {
		if errors.Is(err, doublestar.ErrBadPattern) {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		return nil, err
	}

	job := planner.Build(roots, found.Files, found.SubdirCount, e.gen)
	job.Excluded = found.Excluded

	if err := e.checkTargets(job); err != nil {
		return nil, err
	}

	e.log.Debug("Planned flatten",
		"roots", len(job.Roots),
		"files", job.FileCount(),
		"subdirs", job.SubdirCount,
		"collisions", len(job.Collisions),
		"excluded", len(job.Excluded),
	)

	return job, nil
}

// checkTargets fails with ErrTargetExists when a move would land on a path
// that is already taken, such as an excluded file or a sub-directory of the
// same name. A file already at its target is left alone.
func (e *Engine) checkTargets(job *planner.Job) error {
	for _, m := range job.Mappings {
		if m.InPlace() {
			continue
		}
		taken, err := e.fs.Exists(m.NewPath)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", m.NewPath, err)
		}
		if taken {
			return fmt.Errorf("%w: %s (target of %s)", ErrTargetExists, m.NewPath, m.OldPath)
		}
	}
	return nil
}

// Report renders the dry-run report for a planned job.
func (e *Engine) Report(job *planner.Job, deleteSubdirs bool) []string {
	return report.DryRun(job, deleteSubdirs)
}

// Flatten plans the request and then either renders the report (DryRun) or
// executes the plan. On an execution failure the returned result still
// describes the changes that were made.
func (e *Engine) Flatten(ctx context.Context, req *FlattenRequest) (*FlattenResult, error) {
	job, err := e.Plan(ctx, req)
	if err != nil {
		return nil, err
	}

	if req.DryRun {
		return &FlattenResult{
			Job:    job,
			DryRun: true,
			Report: e.Report(job, req.DeleteSubdirectories),
		}, nil
	}

	exec, err := e.Execute(ctx, job, req.DeleteSubdirectories)
	return &FlattenResult{
		Job:       job,
		Execution: exec,
	}, err
}
