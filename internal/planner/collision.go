package planner

import (
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/danieljhkim/flatten/internal/token"
)

// Build generates the move plan for the discovered files.
//
// Base names are compared case-insensitively across the whole job, not per
// root. Every file whose name is shared with another file gets a fresh token
// from gen; all other files keep their name. The returned mappings have the
// same order and length as files.
func Build(roots []string, files []SourceFile, subdirCount int, gen token.Generator) *Job {
	job := &Job{
		Roots:       roots,
		Files:       files,
		Collisions:  []string{},
		Mappings:    make([]Mapping, 0, len(files)),
		SubdirCount: subdirCount,
	}

	colliding := FindCollisions(files)
	for key := range colliding {
		job.Collisions = append(job.Collisions, key)
	}
	sort.Strings(job.Collisions)

	folder := cases.Fold()
	for _, f := range files {
		name := f.Name
		if colliding[folder.String(f.Name)] {
			name = UniqueName(f.Name, gen.Generate())
		}

		job.Mappings = append(job.Mappings, Mapping{
			OldPath: f.Path,
			NewPath: filepath.Join(f.Root, name),
		})
	}

	return job
}

// FindCollisions returns the set of case-folded base names that occur more
// than once among files.
func FindCollisions(files []SourceFile) map[string]bool {
	folder := cases.Fold()

	counts := make(map[string]int, len(files))
	for _, f := range files {
		counts[folder.String(f.Name)]++
	}

	colliding := make(map[string]bool)
	for key, n := range counts {
		if n > 1 {
			colliding[key] = true
		}
	}
	return colliding
}

// UniqueName inserts tok between the stem and the extension of name:
// "report.txt" becomes "report_<tok>.txt" and "Makefile" becomes
// "Makefile_<tok>".
func UniqueName(name, tok string) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	return stem + "_" + tok + ext
}

func baseName(path string) string {
	return filepath.Base(path)
}
