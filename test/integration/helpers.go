package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danieljhkim/flatten/internal/engine"
	"github.com/danieljhkim/flatten/internal/fsops"
	"github.com/danieljhkim/flatten/internal/logging"
	"github.com/danieljhkim/flatten/internal/token"
)

// op is one mutating filesystem call.
type op struct {
	kind string
	path string
	dest string
}

// recordingFS wraps an FS and records every mutating call in order.
type recordingFS struct {
	fsops.FS
	ops []op
}

func (r *recordingFS) Rename(oldpath, newpath string) error {
	r.ops = append(r.ops, op{kind: "rename", path: oldpath, dest: newpath})
	return r.FS.Rename(oldpath, newpath)
}

func (r *recordingFS) RemoveAll(path string) error {
	r.ops = append(r.ops, op{kind: "remove", path: path})
	return r.FS.RemoveAll(path)
}

func (r *recordingFS) MkdirAll(path string, perm os.FileMode) error {
	r.ops = append(r.ops, op{kind: "mkdir", path: path})
	return r.FS.MkdirAll(path, perm)
}

func (r *recordingFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	r.ops = append(r.ops, op{kind: "write", path: path})
	return r.FS.WriteFile(path, data, perm)
}

func (r *recordingFS) reset() {
	r.ops = nil
}

// setupTestEngine returns an engine over an in-memory filesystem whose files
// are created from the given root-relative paths under each root.
func setupTestEngine(t *testing.T, roots []string, files ...string) (*engine.Engine, *recordingFS) {
	t.Helper()

	mem := fsops.NewMemFS()
	for _, root := range roots {
		for _, rel := range files {
			p := filepath.Join(root, filepath.FromSlash(rel))
			if err := mem.WriteFile(p, []byte(p), 0644); err != nil {
				t.Fatalf("WriteFile(%s) failed: %v", p, err)
			}
		}
	}

	rec := &recordingFS{FS: mem}
	eng := engine.New(rec, token.NewUUIDGenerator(),
		engine.WithLogger(logging.NewHandler(testWriter{t}, true)))
	return eng, rec
}

// testWriter sends log output to the test log.
type testWriter struct {
	t *testing.T
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}
