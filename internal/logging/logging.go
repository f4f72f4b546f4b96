// Package logging builds the slog loggers shared by the flatten packages.
package logging

import (
	"context"
	"io"

	"golang.org/x/exp/slog"
)

var nop slog.Handler = nopHandler{}

// NopLogger returns a logger that discards all records. Components fall back
// to it when no handler was configured.
func NopLogger() *slog.Logger {
	return slog.New(nop)
}

// NewHandler returns a text handler writing to w. Debug records are only
// emitted when verbose is set; otherwise only warnings and errors are.
func NewHandler(w io.Writer, verbose bool) slog.Handler {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
}

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (nopHandler) Handle(context.Context, slog.Record) error { return nil }

func (nopHandler) WithAttrs([]slog.Attr) slog.Handler { return nop }

func (nopHandler) WithGroup(string) slog.Handler { return nop }
