// Package planner handles the planning phase of a flatten job.
//
// The planner turns the files found under the parent directories into an
// ordered move plan. It detects base-name collisions across the whole job and
// gives every colliding file a unique suffix so that no two files land on the
// same target path.
//
// Key responsibilities:
//   - Group discovered files by case-folded base name
//   - Generate Mapping entries (old path -> new path) in discovery order
//   - Keep the Job value that flows between discovery, reporting and execution
package planner
