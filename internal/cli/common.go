package cli

import (
	"encoding/json"
	"io"

	"github.com/danieljhkim/flatten/internal/engine"
	"github.com/danieljhkim/flatten/internal/fsops"
	"github.com/danieljhkim/flatten/internal/logging"
	"github.com/danieljhkim/flatten/internal/token"
)

// newEngine creates a new engine with real implementations of all dependencies.
// Log records go to logOut; debug records only when verbose is set.
func newEngine(verbose bool, logOut io.Writer) *engine.Engine {
	return engine.New(
		fsops.NewRealFS(),
		token.NewUUIDGenerator(),
		engine.WithLogger(logging.NewHandler(logOut, verbose)),
	)
}

// formatJSON formats a value as JSON.
func formatJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
