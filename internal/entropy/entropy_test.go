// Copyright (C) 2026 Sealbox Authors
//
// This work is licensed under the Creative Commons Attribution-NonCommercial-
// NoDerivatives 4.0 International License. To view a copy of this license,
// visit http://creativecommons.org/licenses/by-nc-nd/4.0/ or send a letter to
// Creative Commons, PO Box 1866, Mountain View, CA 94042, USA.

package entropy

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// fixedSource always fills with the same byte, so nonce uniqueness can
// only come from the counter prefix.
type fixedSource struct{ fill byte }

func (s fixedSource) FillBytes(b []byte) error {
	for i := range b {
		b[i] = s.fill
	}
	return nil
}

type failingSource struct{}

func (failingSource) FillBytes(b []byte) error { return ErrUnavailable }

func TestSystemSource(t *testing.T) {
	require := require.New(t)

	var src SystemSource
	a, b := make([]byte, 32), make([]byte, 32)
	require.NoError(src.FillBytes(a), "FillBytes()")
	require.NoError(src.FillBytes(b), "FillBytes()")
	require.NotEqual(a, b, "two 32-byte reads collide")
}

func TestSessionGeneratorUniqueness(t *testing.T) {
	require := require.New(t)

	gen := NewSessionGenerator(fixedSource{fill: 0xaa}, 24)

	const n = 1024
	seen := make(map[string]bool, n)
	var prev uint32
	for i := 0; i < n; i++ {
		nonce, err := gen.Generate()
		require.NoError(err, "Generate(%d)", i)
		require.Len(nonce, 24, "Generate(%d) - size", i)

		ctr := binary.LittleEndian.Uint32(nonce[:4])
		require.Equal(uint32(i), ctr, "Generate(%d) - counter", i)
		if i > 0 {
			require.Greater(ctr, prev, "Generate(%d) - strictly increasing", i)
		}
		prev = ctr

		require.False(seen[string(nonce)], "Generate(%d) - duplicate nonce", i)
		seen[string(nonce)] = true
	}
}

func TestSessionGeneratorCounterWrap(t *testing.T) {
	require := require.New(t)

	gen := NewSessionGenerator(fixedSource{}, 16)
	gen.counter = ^uint32(0)

	nonce, err := gen.Generate()
	require.NoError(err, "Generate() - at wrap")
	require.Equal(^uint32(0), binary.LittleEndian.Uint32(nonce[:4]), "counter before wrap")

	nonce, err = gen.Generate()
	require.NoError(err, "Generate() - after wrap")
	require.Equal(uint32(0), binary.LittleEndian.Uint32(nonce[:4]), "counter wrapped to zero")
}

func TestSessionGeneratorEntropyFailure(t *testing.T) {
	require := require.New(t)

	gen := NewSessionGenerator(failingSource{}, 24)
	nonce, err := gen.Generate()
	require.ErrorIs(err, ErrUnavailable, "Generate() - failing source")
	require.Nil(nonce, "Generate() - no partial nonce")
	require.Equal(uint32(0), gen.counter, "counter not consumed on failure")
}

func TestSessionGeneratorSizeGuard(t *testing.T) {
	require := require.New(t)

	require.Panics(func() { NewSessionGenerator(fixedSource{}, 4) }, "size equal to counter prefix")
}
