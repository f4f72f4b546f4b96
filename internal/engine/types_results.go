package engine

import (
	"github.com/danieljhkim/flatten/internal/planner"
)

// FlattenResult represents the result of a flatten request.
type FlattenResult struct {
	// Job is the planned job
	Job *planner.Job `json:"job"`

	// DryRun reports whether the filesystem was left untouched
	DryRun bool `json:"dryRun"`

	// Report holds the dry-run lines (empty unless DryRun)
	Report []string `json:"report,omitempty"`

	// Execution describes what was changed (nil if DryRun)
	Execution *ExecuteResult `json:"execution,omitempty"`
}

// ExecuteResult lists the filesystem changes made by Execute. On failure it
// holds everything done before the failing step.
type ExecuteResult struct {
	// Moved is the list of mappings that were applied
	Moved []planner.Mapping `json:"moved"`

	// Skipped is the list of files already at their target path
	Skipped []string `json:"skipped,omitempty"`

	// DeletedDirs is the list of removed sub-directories
	DeletedDirs []string `json:"deletedDirs,omitempty"`

	// KeptDirs is the list of sub-directories spared because they hold
	// excluded paths
	KeptDirs []string `json:"keptDirs,omitempty"`
}
