// Package report renders the dry-run description of a flatten job.
//
// The report is a slice of lines so callers decide where it goes; nothing in
// this package touches the filesystem.
package report

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/danieljhkim/flatten/internal/planner"
)

const (
	caption      = "The following file moves would be performed:"
	oldHeader    = "Old file"
	newHeader    = "New file"
	deleteClause = " and all sub-directories would be deleted"
)

// ExceptExcluded qualifies a deletion notice when exclude patterns matched.
const ExceptExcluded = ", except those holding excluded paths"

// DryRun describes what executing job would do. The line layout is:
//
//	(blank)
//	summary sentence
//	(blank)
//	caption
//	(blank)
//	[Parent i] = root      one line per root
//	(blank)
//	===== border
//	| Old file | New file |
//	----- separator
//	| old | new |          one line per mapping
//	===== border
//	(blank)
//
// giving 11 + len(roots) + len(mappings) lines.
func DryRun(job *planner.Job, deleteSubdirs bool) []string {
	summary := Summary(len(job.Files), job.SubdirCount, len(job.Roots), deleteSubdirs)
	if deleteSubdirs && len(job.Excluded) > 0 {
		summary += ExceptExcluded
	}

	lines := []string{
		"",
		summary,
		"",
		caption,
		"",
	}

	for i, root := range job.Roots {
		lines = append(lines, fmt.Sprintf("%s = %s", placeholder(i), root))
	}
	lines = append(lines, "")

	abbrev := newAbbreviator(job.Roots)
	rows := make([][2]string, 0, len(job.Mappings))
	for _, m := range job.Mappings {
		rows = append(rows, [2]string{abbrev.apply(m.OldPath), abbrev.apply(m.NewPath)})
	}

	lines = append(lines, table(rows)...)
	lines = append(lines, "")

	return lines
}

// Summary returns the one-sentence description of the job, choosing singular
// or plural nouns from the counts.
func Summary(files, subdirs, roots int, deleteSubdirs bool) string {
	s := fmt.Sprintf("%s would be moved from %s into %s",
		Count(files, "file", "files"),
		Count(subdirs, "sub-directory", "sub-directories"),
		Count(roots, "parent directory", "parent directories"),
	)
	if deleteSubdirs {
		s += deleteClause
	}
	return s
}

// Count formats a count with the singular noun for 1 and the plural otherwise.
func Count(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

func placeholder(i int) string {
	return fmt.Sprintf("[Parent %d]", i)
}

// table renders a two-column bordered table. Column widths equal the widest
// cell in the column, header included, measured in terminal cells.
func table(rows [][2]string) []string {
	widths := [2]int{runewidth.StringWidth(oldHeader), runewidth.StringWidth(newHeader)}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	// "| " + w0 + " | " + w1 + " |"
	total := widths[0] + widths[1] + 7
	border := strings.Repeat("=", total)
	separator := strings.Repeat("-", total)

	row := func(a, b string) string {
		return "| " + runewidth.FillRight(a, widths[0]) + " | " + runewidth.FillRight(b, widths[1]) + " |"
	}

	lines := make([]string, 0, len(rows)+4)
	lines = append(lines, border, row(oldHeader, newHeader), separator)
	for _, r := range rows {
		lines = append(lines, row(r[0], r[1]))
	}
	lines = append(lines, border)

	return lines
}

type abbreviator struct {
	roots []string
	index map[string]int
}

// newAbbreviator substitutes roots with their [Parent i] placeholder. Longer
// roots are tried first so that a root nested in another is not shadowed by
// its parent's prefix.
func newAbbreviator(roots []string) abbreviator {
	a := abbreviator{index: make(map[string]int, len(roots))}
	for i, r := range roots {
		if r == "" {
			continue
		}
		if _, dup := a.index[r]; dup {
			continue
		}
		a.index[r] = i
		a.roots = append(a.roots, r)
	}
	sort.SliceStable(a.roots, func(i, j int) bool {
		return len(a.roots[i]) > len(a.roots[j])
	})
	return a
}

// apply substitutes every occurrence of a root in path, trying longer roots
// first at each position. An occurrence must end at a path separator or at
// the end of path so that "/data" never rewrites "/database/x". A root that
// ends in a separator, such as "/", only matches at the start.
func (a abbreviator) apply(path string) string {
	var b strings.Builder
	for i := 0; i < len(path); {
		root, ok := a.match(path, i)
		if !ok {
			b.WriteByte(path[i])
			i++
			continue
		}
		b.WriteString(placeholder(a.index[root]))
		i += len(root)
	}
	return b.String()
}

func (a abbreviator) match(path string, i int) (string, bool) {
	for _, root := range a.roots {
		if !strings.HasPrefix(path[i:], root) {
			continue
		}
		if os.IsPathSeparator(root[len(root)-1]) {
			if i == 0 {
				return root, true
			}
			continue
		}
		if i > 0 && !os.IsPathSeparator(root[0]) && !os.IsPathSeparator(path[i-1]) {
			continue
		}
		if rest := path[i+len(root):]; rest == "" || os.IsPathSeparator(rest[0]) {
			return root, true
		}
	}
	return "", false
}
