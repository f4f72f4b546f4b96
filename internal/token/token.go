// Package token generates the unique suffixes used to disambiguate colliding
// file names.
//
// The planner never calls a random source directly: it asks a Generator, so
// tests can substitute a deterministic sequence.
package token

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator provides an abstraction for unique suffix generation.
type Generator interface {
	// Generate returns a new token. Every call returns a different value.
	Generate() string
}

// UUIDGenerator implements Generator using random (version 4) UUIDs in
// their canonical 36-character hyphenated form.
type UUIDGenerator struct{}

// NewUUIDGenerator creates a new UUIDGenerator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a fresh random UUID string.
func (g *UUIDGenerator) Generate() string {
	return uuid.NewString()
}

// SequenceGenerator implements Generator with predictable, UUID-shaped tokens
// for testing.
type SequenceGenerator struct {
	next int
}

// NewSequenceGenerator creates a SequenceGenerator whose first token ends in start.
func NewSequenceGenerator(start int) *SequenceGenerator {
	return &SequenceGenerator{next: start}
}

// Generate returns the next token in the sequence, e.g.
// 00000000-0000-0000-0000-000000000001.
func (g *SequenceGenerator) Generate() string {
	tok := fmt.Sprintf("00000000-0000-0000-0000-%012d", g.next)
	g.next++
	return tok
}
