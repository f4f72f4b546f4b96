package engine

import (
	"fmt"
	"path/filepath"
	"strings"
)

// resolveDirectory turns a user-provided directory (absolute, relative, or
// containing "..") into a clean absolute path, resolving relative paths
// against cwd.
func resolveDirectory(userPath, cwd string) (string, error) {
	if strings.TrimSpace(userPath) == "" {
		return "", fmt.Errorf("%w: empty directory path", ErrValidation)
	}

	if filepath.IsAbs(userPath) {
		return filepath.Clean(userPath), nil
	}

	if cwd == "" {
		abs, err := filepath.Abs(userPath)
		if err != nil {
			return "", fmt.Errorf("failed to resolve %q: %w", userPath, err)
		}
		return abs, nil
	}

	return filepath.Clean(filepath.Join(cwd, userPath)), nil
}

// isWithin reports whether child is parent or lies beneath it.
func isWithin(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// normalizeDirectories resolves every directory, drops exact duplicates while
// keeping the first occurrence, and rejects directories nested in one
// another: their files would be discovered twice.
func normalizeDirectories(dirs []string, cwd string) ([]string, error) {
	if len(dirs) == 0 {
		return nil, fmt.Errorf("%w: no directories given", ErrValidation)
	}

	seen := make(map[string]bool, len(dirs))
	roots := make([]string, 0, len(dirs))
	for _, d := range dirs {
		abs, err := resolveDirectory(d, cwd)
		if err != nil {
			return nil, err
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		roots = append(roots, abs)
	}

	for i, a := range roots {
		for _, b := range roots[i+1:] {
			if isWithin(a, b) || isWithin(b, a) {
				return nil, fmt.Errorf("%w: directories %s and %s overlap", ErrValidation, a, b)
			}
		}
	}

	return roots, nil
}
