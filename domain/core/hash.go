package core

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
)

// Hash represents a cryptographic hash
type Hash string

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// Short returns the first 12 hex characters, enough for log lines and ETags.
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// HashWriter streams content into a sha256 digest.
type HashWriter struct {
	h hash.Hash
}

// NewHashWriter returns a writer whose accumulated content is hashed by Sum.
func NewHashWriter() *HashWriter {
	return &HashWriter{h: sha256.New()}
}

// WriteString writes s followed by a unit separator so adjacent fields cannot collide.
func (hw *HashWriter) WriteString(s string) {
	io.WriteString(hw.h, s)
	hw.h.Write([]byte{0x1f})
}

// Sum returns the hash of everything written so far.
func (hw *HashWriter) Sum() Hash {
	return Hash(hex.EncodeToString(hw.h.Sum(nil)))
}
