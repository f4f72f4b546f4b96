package planner

import (
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danieljhkim/flatten/internal/token"
)

var uuidSuffix = regexp.MustCompile(`_[0-9A-Fa-f-]{36}`)

func src(root string, rel ...string) SourceFile {
	path := filepath.Join(append([]string{root}, rel...)...)
	return SourceFile{Root: root, Path: path, Name: filepath.Base(path)}
}

// fixtureFiles mirrors a single parent with a{a,b,c} and b{a,b} subdirectories.
func fixtureFiles(root string) []SourceFile {
	return []SourceFile{
		src(root, "a", "a", "Duplicate.txt"),
		src(root, "a", "a", "X.txt"),
		src(root, "a", "b", "Duplicate.txt"),
		src(root, "a", "b", "Y.txt"),
		src(root, "a", "c", "Z.txt"),
		src(root, "b", "a", "Duplicate.txt"),
		src(root, "b", "a", "W.txt"),
		src(root, "b", "b", "V.txt"),
	}
}

func TestBuild_Bijection(t *testing.T) {
	files := fixtureFiles("/data")
	job := Build([]string{"/data"}, files, 8, token.NewUUIDGenerator())

	if len(job.Mappings) != len(files) {
		t.Fatalf("len(Mappings) = %d, want %d", len(job.Mappings), len(files))
	}

	seen := make(map[string]bool)
	for i, m := range job.Mappings {
		if m.OldPath != files[i].Path {
			t.Errorf("Mappings[%d].OldPath = %q, want %q (order must be preserved)", i, m.OldPath, files[i].Path)
		}
		if seen[m.NewPath] {
			t.Errorf("duplicate target path %q", m.NewPath)
		}
		seen[m.NewPath] = true

		if dir := filepath.Dir(m.NewPath); dir != files[i].Root {
			t.Errorf("Mappings[%d] target dir = %q, want root %q", i, dir, files[i].Root)
		}
	}
}

func TestBuild_NamePreservationAndSuffix(t *testing.T) {
	files := fixtureFiles("/data")
	job := Build([]string{"/data"}, files, 8, token.NewUUIDGenerator())

	pattern := regexp.MustCompile(`^Duplicate_[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.txt$`)

	dupNames := make(map[string]bool)
	for i, m := range job.Mappings {
		newName := filepath.Base(m.NewPath)
		if files[i].Name == "Duplicate.txt" {
			if !pattern.MatchString(newName) {
				t.Errorf("colliding file renamed to %q, want Duplicate_<uuid>.txt", newName)
			}
			if dupNames[newName] {
				t.Errorf("colliding files share new name %q", newName)
			}
			dupNames[newName] = true
			continue
		}
		if newName != files[i].Name {
			t.Errorf("unique file %q renamed to %q", files[i].Name, newName)
		}
	}

	if len(dupNames) != 3 {
		t.Errorf("expected 3 renamed duplicates, got %d", len(dupNames))
	}
	if got := job.DuplicateCount(); got != 3 {
		t.Errorf("DuplicateCount() = %d, want 3", got)
	}
	if diff := cmp.Diff([]string{"duplicate.txt"}, job.Collisions); diff != "" {
		t.Errorf("Collisions mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_DeterministicTokens(t *testing.T) {
	files := []SourceFile{
		src("/p", "x", "notes"),
		src("/p", "y", "notes"),
		src("/p", "z", "solo.md"),
	}

	job := Build([]string{"/p"}, files, 3, token.NewSequenceGenerator(1))

	want := []Mapping{
		{OldPath: "/p/x/notes", NewPath: "/p/notes_00000000-0000-0000-0000-000000000001"},
		{OldPath: "/p/y/notes", NewPath: "/p/notes_00000000-0000-0000-0000-000000000002"},
		{OldPath: "/p/z/solo.md", NewPath: "/p/solo.md"},
	}
	if diff := cmp.Diff(want, job.Mappings); diff != "" {
		t.Errorf("Mappings mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_CollisionsAcrossRoots(t *testing.T) {
	files := []SourceFile{
		src("/a", "sub", "report.txt"),
		src("/b", "sub", "report.txt"),
		src("/b", "other", "unique.txt"),
	}

	job := Build([]string{"/a", "/b"}, files, 3, token.NewSequenceGenerator(1))

	if !job.HasCollisions() {
		t.Fatal("expected collision across roots")
	}
	if got := job.Mappings[0].NewPath; got != "/a/report_00000000-0000-0000-0000-000000000001.txt" {
		t.Errorf("first report moved to %q", got)
	}
	if got := job.Mappings[1].NewPath; got != "/b/report_00000000-0000-0000-0000-000000000002.txt" {
		t.Errorf("second report moved to %q", got)
	}
	if got := job.Mappings[2].NewPath; got != "/b/unique.txt" {
		t.Errorf("unique file moved to %q", got)
	}
}

func TestBuild_CaseInsensitive(t *testing.T) {
	files := []SourceFile{
		src("/r", "one", "Photo.JPG"),
		src("/r", "two", "photo.jpg"),
		src("/r", "three", "STRASSE.txt"),
		src("/r", "four", "Strasse.txt"),
	}

	job := Build([]string{"/r"}, files, 4, token.NewUUIDGenerator())

	for i, m := range job.Mappings {
		if !m.Renamed() {
			t.Errorf("Mappings[%d] (%s) should be renamed when names differ only by case", i, files[i].Name)
		}
	}
	if len(job.Collisions) != 2 {
		t.Errorf("Collisions = %v, want 2 groups", job.Collisions)
	}
	if !strings.HasPrefix(filepath.Base(job.Mappings[0].NewPath), "Photo_") {
		t.Errorf("original casing must be kept, got %q", job.Mappings[0].NewPath)
	}
}

func TestBuild_TopLevelFileKeepsPath(t *testing.T) {
	files := []SourceFile{
		src("/r", "already-here.txt"),
		src("/r", "nested", "deep", "file.txt"),
	}

	job := Build([]string{"/r"}, files, 2, token.NewUUIDGenerator())

	if !job.Mappings[0].InPlace() {
		t.Errorf("top-level file should map onto itself, got %+v", job.Mappings[0])
	}
	if job.Mappings[1].NewPath != "/r/file.txt" {
		t.Errorf("nested file NewPath = %q, want /r/file.txt", job.Mappings[1].NewPath)
	}
	if job.HasCollisions() {
		t.Errorf("unexpected collisions %v", job.Collisions)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	files := fixtureFiles("/data")

	first := Build([]string{"/data"}, files, 8, token.NewUUIDGenerator())
	second := Build([]string{"/data"}, files, 8, token.NewUUIDGenerator())

	if diff := cmp.Diff(first.Collisions, second.Collisions); diff != "" {
		t.Errorf("collision sets differ between runs (-first +second):\n%s", diff)
	}

	for i := range first.Mappings {
		a, b := first.Mappings[i], second.Mappings[i]
		if a.Renamed() != b.Renamed() {
			t.Errorf("mapping %d renamed in one run only", i)
			continue
		}
		if !a.Renamed() && a.NewPath != b.NewPath {
			t.Errorf("non-colliding target differs: %q vs %q", a.NewPath, b.NewPath)
		}
		if a.Renamed() && uuidSuffix.ReplaceAllString(a.NewPath, "") != uuidSuffix.ReplaceAllString(b.NewPath, "") {
			t.Errorf("colliding target differs beyond token: %q vs %q", a.NewPath, b.NewPath)
		}
	}
}

func TestBuild_Empty(t *testing.T) {
	job := Build([]string{"/r"}, nil, 0, token.NewUUIDGenerator())

	if job.FileCount() != 0 || len(job.Mappings) != 0 {
		t.Errorf("expected empty plan, got %+v", job)
	}
	if job.HasCollisions() {
		t.Error("empty job cannot have collisions")
	}
}

func TestUniqueName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		tok  string
		want string
	}{
		{name: "with extension", in: "report.txt", tok: "T", want: "report_T.txt"},
		{name: "no extension", in: "Makefile", tok: "T", want: "Makefile_T"},
		{name: "multiple dots", in: "archive.tar.gz", tok: "T", want: "archive.tar_T.gz"},
		{name: "dotfile", in: ".env", tok: "T", want: "_T.env"},
		{name: "trailing dot", in: "odd.", tok: "T", want: "odd_T."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UniqueName(tt.in, tt.tok); got != tt.want {
				t.Errorf("UniqueName(%q, %q) = %q, want %q", tt.in, tt.tok, got, tt.want)
			}
		})
	}
}

func TestFindCollisions(t *testing.T) {
	tests := []struct {
		name  string
		files []SourceFile
		want  map[string]bool
	}{
		{
			name:  "no files",
			files: nil,
			want:  map[string]bool{},
		},
		{
			name:  "all unique",
			files: []SourceFile{src("/r", "a", "1.txt"), src("/r", "b", "2.txt")},
			want:  map[string]bool{},
		},
		{
			name: "triple",
			files: []SourceFile{
				src("/r", "a", "x.txt"), src("/r", "b", "x.txt"), src("/s", "c", "X.TXT"),
			},
			want: map[string]bool{"x.txt": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindCollisions(tt.files)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FindCollisions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
