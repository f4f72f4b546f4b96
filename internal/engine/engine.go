// Package engine provides the core business logic for flatten.
//
// The engine package acts as the orchestration layer between the CLI and the
// lower-level packages. It validates the parent directories, runs discovery
// and planning, and either renders the dry-run report or executes the plan.
//
// Key components:
//   - Engine: Main orchestrator called by the CLI
//   - Plan: Validation, discovery and collision planning
//   - Execute: Applies a plan to the filesystem
//   - Flatten: Plan followed by Report or Execute
package engine

import (
	"golang.org/x/exp/slog"

	"github.com/danieljhkim/flatten/internal/fsops"
	"github.com/danieljhkim/flatten/internal/logging"
	"github.com/danieljhkim/flatten/internal/token"
)

// Engine orchestrates all flatten operations.
// It is the main API surface called by the CLI.
type Engine struct {
	fs  fsops.FS
	gen token.Generator
	log *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger returns an Option that sets the logger of the Engine. The
// handler is shared with discovery.
func WithLogger(h slog.Handler) Option {
	return func(e *Engine) {
		e.log = slog.New(h)
	}
}

// New creates a new Engine with the given dependencies.
func New(fs fsops.FS, gen token.Generator, opts ...Option) *Engine {
	e := &Engine{
		fs:  fs,
		gen: gen,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = logging.NopLogger()
	}
	return e
}
