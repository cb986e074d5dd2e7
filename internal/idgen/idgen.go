// Package idgen generates short, URL-safe identifiers for import batches and
// HTTP requests, backed by nanoid.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Identifier prefixes.
const (
	PrefixImport  = "imp-"
	PrefixRequest = "req-"
)

// Alphabet defines the character set used for the random portion of the ID.
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the number of random characters generated (excluding the prefix).
const Length = 10

// GenerateWithPrefix returns a new unique ID with the given prefix.
func GenerateWithPrefix(prefix string) (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}

// ImportBatchID returns an ID tagging one bulk import run.
func ImportBatchID() (string, error) {
	return GenerateWithPrefix(PrefixImport)
}

// RequestID returns an ID for one HTTP request. Generation only fails if
// the system random source does; the request then carries a fixed marker.
func RequestID() string {
	id, err := GenerateWithPrefix(PrefixRequest)
	if err != nil {
		return PrefixRequest + "unknown"
	}
	return id
}
