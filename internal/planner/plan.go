package planner

// SourceFile is a file found beneath one of the parent directories.
type SourceFile struct {
	// Root is the parent directory the file will be moved into
	Root string `json:"root"`

	// Path is the full path of the file as discovered
	Path string `json:"path"`

	// Name is the base name of the file
	Name string `json:"name"`
}

// Mapping is a single planned move.
type Mapping struct {
	// OldPath is the current location of the file
	OldPath string `json:"oldPath"`

	// NewPath is the location inside the parent directory
	NewPath string `json:"newPath"`
}

// Renamed reports whether the mapping changes the file's base name.
func (m Mapping) Renamed() bool {
	return baseName(m.OldPath) != baseName(m.NewPath)
}

// InPlace reports whether the file already sits at its target path.
func (m Mapping) InPlace() bool {
	return m.OldPath == m.NewPath
}

// Job carries everything known about one flatten invocation. It is built once
// by Build and then only read by the reporter and the executor.
type Job struct {
	// Roots is the ordered list of parent directories
	Roots []string `json:"roots"`

	// Files is every discovered file, in discovery order
	Files []SourceFile `json:"files"`

	// Collisions holds the case-folded base names shared by two or more files
	Collisions []string `json:"collisions"`

	// Mappings is the move plan, one entry per file in Files
	Mappings []Mapping `json:"mappings"`

	// SubdirCount is the number of directories found beneath all roots
	SubdirCount int `json:"subdirCount"`

	// Excluded lists the paths an exclude pattern left in place
	Excluded []string `json:"excluded,omitempty"`
}

// HasCollisions returns true if any base name is shared by several files.
func (j *Job) HasCollisions() bool {
	return len(j.Collisions) > 0
}

// FileCount returns the number of discovered files.
func (j *Job) FileCount() int {
	return len(j.Files)
}

// DuplicateCount returns how many files will receive a unique suffix.
func (j *Job) DuplicateCount() int {
	count := 0
	for _, m := range j.Mappings {
		if m.Renamed() {
			count++
		}
	}
	return count
}
