// Copyright (C) 2026 Sealbox Authors
//
// This work is licensed under the Creative Commons Attribution-NonCommercial-
// NoDerivatives 4.0 International License. To view a copy of this license,
// visit http://creativecommons.org/licenses/by-nc-nd/4.0/ or send a letter to
// Creative Commons, PO Box 1866, Mountain View, CA 94042, USA.

// Package entropy provides the engine's randomness and session nonce
// generation.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
)

// ErrUnavailable is the error returned when the system entropy source
// cannot produce randomness. No partial output is ever returned.
var ErrUnavailable = errors.New("entropy: source unavailable")

// counterSize is the size in bytes of the session counter prefix.
const counterSize = 4

// Source fills buffers with cryptographically secure random bytes,
// failing closed if the underlying source is unavailable.
type Source interface {
	FillBytes(b []byte) error
}

// SystemSource is a Source backed by the operating system CSPRNG.
type SystemSource struct{}

// FillBytes implements Source.
func (SystemSource) FillBytes(b []byte) error {
	if _, err := rand.Read(b); err != nil {
		return ErrUnavailable
	}
	return nil
}

// SessionGenerator produces nonces that are unique for the lifetime of
// the generator: a little-endian session counter prefix followed by a
// random suffix. A collision requires both a counter wrap (2^32 nonces)
// and a repeat of the random suffix.
type SessionGenerator struct {
	src     Source
	counter uint32
	size    int
}

// NewSessionGenerator constructs a generator for nonces of the given
// size. The size must exceed the 4-byte counter prefix.
func NewSessionGenerator(src Source, size int) *SessionGenerator {
	if size <= counterSize {
		panic("entropy: nonce size must exceed counter prefix")
	}
	return &SessionGenerator{src: src, size: size}
}

// Generate returns the next nonce. On entropy failure no nonce is
// returned and the counter is not consumed.
func (g *SessionGenerator) Generate() ([]byte, error) {
	nonce := make([]byte, g.size)
	binary.LittleEndian.PutUint32(nonce[:counterSize], g.counter)

	if err := g.src.FillBytes(nonce[counterSize:]); err != nil {
		return nil, err
	}

	g.counter++ // wraps; see collision note above
	return nonce, nil
}
