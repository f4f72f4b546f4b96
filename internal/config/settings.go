// Package config reads flatten defaults from the environment.
//
// Every setting has a matching command-line flag; the environment only
// provides the default the flag starts from:
//   - FLATTEN_EXCLUDE: comma-separated exclude globs
//   - FLATTEN_VERBOSE: enable debug logging
//   - FLATTEN_DELETE_SUBDIRECTORIES: delete sub-directories after moving
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	EnvExclude              = "FLATTEN_EXCLUDE"
	EnvVerbose              = "FLATTEN_VERBOSE"
	EnvDeleteSubdirectories = "FLATTEN_DELETE_SUBDIRECTORIES"
)

// Settings contains the defaults loaded from the environment.
type Settings struct {
	// Exclude is the list of glob patterns left in place
	Exclude []string

	// Verbose enables debug logging on stderr
	Verbose bool

	// DeleteSubdirectories removes sub-directories after all moves
	DeleteSubdirectories bool
}

// FromEnv loads Settings from the process environment.
func FromEnv() (*Settings, error) {
	return Load(os.LookupEnv)
}

// Load builds Settings using lookup to read variables. Unset or empty
// variables leave the zero value.
func Load(lookup func(string) (string, bool)) (*Settings, error) {
	s := &Settings{}

	if v, ok := lookup(EnvExclude); ok {
		s.Exclude = splitList(v)
	}

	var err error
	if s.Verbose, err = parseBool(lookup, EnvVerbose); err != nil {
		return nil, err
	}
	if s.DeleteSubdirectories, err = parseBool(lookup, EnvDeleteSubdirectories); err != nil {
		return nil, err
	}

	return s, nil
}

func parseBool(lookup func(string) (string, bool), key string) (bool, error) {
	v, ok := lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, fmt.Errorf("invalid %s=%q: must be true or false", key, v)
	}
	return b, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
