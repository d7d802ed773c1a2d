// Copyright (C) 2026 Sealbox Authors
//
// This work is licensed under the Creative Commons Attribution-NonCommercial-
// NoDerivatives 4.0 International License. To view a copy of this license,
// visit http://creativecommons.org/licenses/by-nc-nd/4.0/ or send a letter to
// Creative Commons, PO Box 1866, Mountain View, CA 94042, USA.

package poly1305

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sealbox/aead/internal/memwipe"
)

var rfcKey = [KeySize]byte{
	0x85, 0xd6, 0xbe, 0x78, 0x57, 0x55, 0x6d, 0x33, 0x7f, 0x44, 0x52, 0xfe, 0x42, 0xd5, 0x06, 0xa8,
	0x01, 0x03, 0x80, 0x8a, 0xfb, 0x0d, 0xb2, 0xfd, 0x4a, 0xbf, 0xf6, 0xaf, 0x41, 0x49, 0xf5, 0x1b,
}

// modelSum is a big.Int rendition of RFC 8439 2.5.1, used as the oracle
// for the limb implementation.
func modelSum(key *[KeySize]byte, msg []byte) [TagSize]byte {
	le := func(b []byte) *big.Int {
		rev := make([]byte, len(b))
		for i := range b {
			rev[len(b)-1-i] = b[i]
		}
		return new(big.Int).SetBytes(rev)
	}

	clamped := make([]byte, 16)
	copy(clamped, key[0:16])
	clamped[3] &= 0x0f
	clamped[7] &= 0x0f
	clamped[11] &= 0x0f
	clamped[15] &= 0x0f
	clamped[4] &= 0xfc
	clamped[8] &= 0xfc
	clamped[12] &= 0xfc

	r := le(clamped)
	s := le(key[16:32])
	p := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 130), big.NewInt(5))

	acc := new(big.Int)
	for len(msg) > 0 {
		n := len(msg)
		if n > BlockSize {
			n = BlockSize
		}
		block := make([]byte, n+1)
		copy(block, msg[:n])
		block[n] = 0x01

		acc.Add(acc, le(block))
		acc.Mul(acc, r)
		acc.Mod(acc, p)
		msg = msg[n:]
	}
	acc.Add(acc, s)
	acc.Mod(acc, new(big.Int).Lsh(big.NewInt(1), 128))

	var tag [TagSize]byte
	raw := acc.Bytes()
	for i := range raw {
		tag[len(raw)-1-i] = raw[i]
	}
	return tag
}

// RFC 8439 Section 2.5.2 test vector.
func TestRFC8439Vector(t *testing.T) {
	require := require.New(t)

	expected := [TagSize]byte{
		0xa8, 0x06, 0x1d, 0xc1, 0x30, 0x51, 0x36, 0xc6,
		0xc2, 0x2b, 0x8b, 0xaf, 0x0c, 0x01, 0x27, 0xa9,
	}

	var tag [TagSize]byte
	Sum(&rfcKey, []byte("Cryptographic Forum Research Group"), &tag)
	require.Equal(expected, tag, "Sum() - RFC 8439 2.5.2")
}

// The tag of an empty message is s, byte for byte.
func TestEmptyMessage(t *testing.T) {
	require := require.New(t)

	var tag [TagSize]byte
	Sum(&rfcKey, nil, &tag)
	require.Equal(rfcKey[16:32], tag[:], "Sum() - empty message equals s")
}

func TestAgainstModel(t *testing.T) {
	require := require.New(t)

	for _, sz := range []int{0, 1, 15, 16, 17, 31, 32, 33, 100, 255, 1000} {
		var key [KeySize]byte
		msg := make([]byte, sz)
		_, _ = rand.Read(key[:])
		_, _ = rand.Read(msg)

		var tag [TagSize]byte
		Sum(&key, msg, &tag)
		require.Equal(modelSum(&key, msg), tag, "Sum() vs model - %d bytes", sz)
	}

	// All-ones inputs exercise the worst-case carry chains.
	var key [KeySize]byte
	msg := make([]byte, 64)
	for i := range key {
		key[i] = 0xff
	}
	for i := range msg {
		msg[i] = 0xff
	}
	var tag [TagSize]byte
	Sum(&key, msg, &tag)
	require.Equal(modelSum(&key, msg), tag, "Sum() vs model - all ones")
}

func TestIncrementalMatchesOneShot(t *testing.T) {
	require := require.New(t)

	var key [KeySize]byte
	msg := make([]byte, 259)
	_, _ = rand.Read(key[:])
	_, _ = rand.Read(msg)

	var oneShot [TagSize]byte
	Sum(&key, msg, &oneShot)

	var m MAC
	var tag [TagSize]byte
	m.Init(&key)
	m.Update(msg[:3])
	m.Update(msg[3:64])
	m.Update(msg[64:64])
	m.Update(msg[64:200])
	m.Update(msg[200:])
	m.Finalize(&tag)
	require.Equal(oneShot, tag, "Finalize() - incremental vs one-shot")
}

func TestUpdatePadded(t *testing.T) {
	require := require.New(t)

	var key [KeySize]byte
	_, _ = rand.Read(key[:])
	msg := make([]byte, 21)
	_, _ = rand.Read(msg)

	// pad16(msg) is msg followed by 11 zero bytes.
	padded := make([]byte, 32)
	copy(padded, msg)

	var m MAC
	var a, b [TagSize]byte
	m.Init(&key)
	m.UpdatePadded(msg)
	m.Finalize(&a)

	m.Init(&key)
	m.Update(padded)
	m.Finalize(&b)
	require.Equal(b, a, "UpdatePadded() - zero pad to boundary")

	// Aligned input gets no padding.
	m.Init(&key)
	m.UpdatePadded(padded)
	m.Finalize(&a)
	require.Equal(b, a, "UpdatePadded() - aligned input unchanged")
}

func TestFinalizeErasesState(t *testing.T) {
	require := require.New(t)

	var key [KeySize]byte
	_, _ = rand.Read(key[:])
	msg := make([]byte, 47)
	_, _ = rand.Read(msg)

	var m MAC
	var tag [TagSize]byte
	m.Init(&key)
	m.Update(msg)
	m.Finalize(&tag)

	require.True(memwipe.IsZeroUint32(m.r[:]), "r erased")
	require.True(memwipe.IsZero(m.s[:]), "s erased")
	require.True(memwipe.IsZeroUint64(m.acc[:]), "accumulator erased")
	require.True(memwipe.IsZero(m.buffer[:]), "buffer erased")
	require.Zero(m.bufferLen, "buffer length reset")
	require.True(memwipe.IsZeroUint64(m.d[:]), "block scratch erased")
	require.True(memwipe.IsZeroUint64(m.fd[:]), "finalize scratch erased")
	require.True(memwipe.IsZeroUint64(m.g[:]), "g scratch erased")
	require.True(memwipe.IsZeroUint64(m.h[:]), "h scratch erased")
	require.Zero(m.mask, "mask erased")
}

func BenchmarkPoly1305(b *testing.B) {
	b.StopTimer()
	b.SetBytes(1536)

	var key [KeySize]byte
	msg := make([]byte, 1536)
	_, _ = rand.Read(key[:])
	_, _ = rand.Read(msg)

	var tag [TagSize]byte
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		Sum(&key, msg, &tag)
	}
}
