package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// SchemaHash identifies a frozen feature schema
type SchemaHash Hash

// NewSchemaHash hashes an ordered column list. Order matters: the same
// columns in a different order are a different schema.
func NewSchemaHash(columns []string) SchemaHash {
	joined := strings.Join(columns, "\x1f")
	return SchemaHash(NewHash([]byte(joined)))
}

func (h SchemaHash) String() string { return Hash(h).String() }
