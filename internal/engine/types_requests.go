package engine

// FlattenRequest represents a request to flatten one or more directories.
type FlattenRequest struct {
	// CWD is the directory relative paths are resolved against
	CWD string

	// Directories is the ordered list of parent directories
	Directories []string

	// DryRun renders the report instead of moving files
	DryRun bool

	// DeleteSubdirectories removes the sub-directories after all moves
	DeleteSubdirectories bool

	// Exclude lists glob patterns for files that must stay where they are
	Exclude []string
}
