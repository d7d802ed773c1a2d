// Copyright (C) 2026 Sealbox Authors
//
// This work is licensed under the Creative Commons Attribution-NonCommercial-
// NoDerivatives 4.0 International License. To view a copy of this license,
// visit http://creativecommons.org/licenses/by-nc-nd/4.0/ or send a letter to
// Creative Commons, PO Box 1866, Mountain View, CA 94042, USA.

package memwipe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBytes(t *testing.T) {
	require := require.New(t)

	b := []byte{0xde, 0xad, 0xbe, 0xef}
	require.False(IsZero(b), "IsZero() - dirty buffer")

	Bytes(b)
	require.True(IsZero(b), "IsZero() - after Bytes()")

	Bytes(nil) // must not panic
	require.True(IsZero(nil), "IsZero() - nil")
}

func TestUint32s(t *testing.T) {
	require := require.New(t)

	w := []uint32{1, 0, 0xffffffff}
	require.False(IsZeroUint32(w), "IsZeroUint32() - dirty buffer")

	Uint32s(w)
	require.True(IsZeroUint32(w), "IsZeroUint32() - after Uint32s()")
}

func TestUint64s(t *testing.T) {
	require := require.New(t)

	w := []uint64{0, 1 << 63}
	require.False(IsZeroUint64(w), "IsZeroUint64() - dirty buffer")

	Uint64s(w)
	require.True(IsZeroUint64(w), "IsZeroUint64() - after Uint64s()")
}
