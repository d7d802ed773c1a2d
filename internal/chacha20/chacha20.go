// Copyright (C) 2026 Sealbox Authors
//
// This work is licensed under the Creative Commons Attribution-NonCommercial-
// NoDerivatives 4.0 International License. To view a copy of this license,
// visit http://creativecommons.org/licenses/by-nc-nd/4.0/ or send a letter to
// Creative Commons, PO Box 1866, Mountain View, CA 94042, USA.

// Package chacha20 implements the ChaCha20 block function (RFC 8439),
// the HChaCha20 sub-key derivation, and the XChaCha20 extended-nonce
// composition.
//
// Every cipher state lives inside a reusable struct so that the scratch
// words have a fixed home that the owning call can erase; all exported
// operations wipe their intermediates before returning.
package chacha20

import (
	"encoding/binary"

	"github.com/sealbox/aead/internal/memwipe"
)

const (
	// KeySize is the ChaCha20/XChaCha20 key size in bytes.
	KeySize = 32

	// NonceSize is the ChaCha20 nonce size in bytes.
	NonceSize = 12

	// HNonceSize is the HChaCha20 input nonce size in bytes.
	HNonceSize = 16

	// XNonceSize is the XChaCha20 extended nonce size in bytes.
	XNonceSize = 24

	// BlockSize is the ChaCha20 keystream block size in bytes.
	BlockSize = 64
)

// The "expand 32-byte k" constant words.
const (
	sigma0 = 0x61707865
	sigma1 = 0x3320646e
	sigma2 = 0x79622d32
	sigma3 = 0x6b206574
)

// quarterRound applies the ChaCha quarter round to state words a, b, c, d.
func quarterRound(s *[16]uint32, a, b, c, d int) {
	s[a] += s[b]
	s[d] ^= s[a]
	s[d] = s[d]<<16 | s[d]>>16

	s[c] += s[d]
	s[b] ^= s[c]
	s[b] = s[b]<<12 | s[b]>>20

	s[a] += s[b]
	s[d] ^= s[a]
	s[d] = s[d]<<8 | s[d]>>24

	s[c] += s[d]
	s[b] ^= s[c]
	s[b] = s[b]<<7 | s[b]>>25
}

// doubleRounds runs the 10 column/diagonal double rounds (20 rounds).
func doubleRounds(s *[16]uint32) {
	for i := 0; i < 10; i++ {
		quarterRound(s, 0, 4, 8, 12)
		quarterRound(s, 1, 5, 9, 13)
		quarterRound(s, 2, 6, 10, 14)
		quarterRound(s, 3, 7, 11, 15)

		quarterRound(s, 0, 5, 10, 15)
		quarterRound(s, 1, 6, 11, 12)
		quarterRound(s, 2, 7, 8, 13)
		quarterRound(s, 3, 4, 9, 14)
	}
}

// Cipher is a reusable ChaCha20 block-function state.
//
// The zero value is ready for use. A Cipher must not be used from two
// goroutines at once.
type Cipher struct {
	initial   [16]uint32
	working   [16]uint32
	keystream [BlockSize]byte
}

func (c *Cipher) initState(key, nonce []byte, counter uint32) {
	c.initial[0] = sigma0
	c.initial[1] = sigma1
	c.initial[2] = sigma2
	c.initial[3] = sigma3

	for i := 0; i < 8; i++ {
		c.initial[4+i] = binary.LittleEndian.Uint32(key[i*4:])
	}

	c.initial[12] = counter

	for i := 0; i < 3; i++ {
		c.initial[13+i] = binary.LittleEndian.Uint32(nonce[i*4:])
	}
}

// generateBlock fills c.keystream with the block for (key, nonce, counter).
// The caller is responsible for erasing c.keystream once it is consumed.
func (c *Cipher) generateBlock(key, nonce []byte, counter uint32) {
	c.initState(key, nonce, counter)
	c.working = c.initial

	doubleRounds(&c.working)

	for i := 0; i < 16; i++ {
		c.working[i] += c.initial[i]
		binary.LittleEndian.PutUint32(c.keystream[i*4:], c.working[i])
	}

	memwipe.Uint32s(c.initial[:])
	memwipe.Uint32s(c.working[:])
}

// Block writes the keystream block for (key, nonce, counter) to out.
func (c *Cipher) Block(key, nonce []byte, counter uint32, out *[BlockSize]byte) {
	c.generateBlock(key, nonce, counter)
	copy(out[:], c.keystream[:])
	memwipe.Bytes(c.keystream[:])
}

// XORKeyStream XORs the keystream for (key, nonce) into data in place,
// starting at the given block counter. Successive blocks use counter+1,
// counter+2, ...; each block is discarded once consumed.
func (c *Cipher) XORKeyStream(key, nonce []byte, counter uint32, data []byte) {
	for i := 0; len(data) > 0; i++ {
		c.generateBlock(key, nonce, counter+uint32(i))

		n := len(data)
		if n > BlockSize {
			n = BlockSize
		}
		for j := 0; j < n; j++ {
			data[j] ^= c.keystream[j]
		}
		data = data[n:]
	}

	memwipe.Bytes(c.keystream[:])
}

// Reset erases all cipher state.
func (c *Cipher) Reset() {
	memwipe.Uint32s(c.initial[:])
	memwipe.Uint32s(c.working[:])
	memwipe.Bytes(c.keystream[:])
}

// HState is a reusable HChaCha20 derivation state.
type HState struct {
	state [16]uint32
}

// Derive computes the HChaCha20 sub-key for (key, nonce) into subkey.
// Unlike the block function there is no counter, the 16-byte nonce
// occupies all four nonce slots, and there is no final add-back: the
// sub-key is words 0..3 and 12..15 of the permuted state.
func (h *HState) Derive(key, nonce []byte, subkey *[KeySize]byte) {
	h.state[0] = sigma0
	h.state[1] = sigma1
	h.state[2] = sigma2
	h.state[3] = sigma3

	for i := 0; i < 8; i++ {
		h.state[4+i] = binary.LittleEndian.Uint32(key[i*4:])
	}
	for i := 0; i < 4; i++ {
		h.state[12+i] = binary.LittleEndian.Uint32(nonce[i*4:])
	}

	doubleRounds(&h.state)

	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint32(subkey[i*4:], h.state[i])
		binary.LittleEndian.PutUint32(subkey[16+i*4:], h.state[12+i])
	}

	memwipe.Uint32s(h.state[:])
}

// Reset erases the derivation state.
func (h *HState) Reset() {
	memwipe.Uint32s(h.state[:])
}

// XCipher is a reusable XChaCha20 state: HChaCha20 sub-key derivation
// composed with the ChaCha20 block function under a 192-bit nonce.
type XCipher struct {
	subkey [KeySize]byte
	nonce  [NonceSize]byte
	h      HState
	c      Cipher
}

// setup derives the sub-key from the 16-byte nonce prefix and builds
// the 96-bit ChaCha20 nonce as 4 zero bytes plus the 8-byte suffix.
func (x *XCipher) setup(key, xnonce []byte) {
	x.h.Derive(key, xnonce[:HNonceSize], &x.subkey)

	x.nonce[0] = 0
	x.nonce[1] = 0
	x.nonce[2] = 0
	x.nonce[3] = 0
	copy(x.nonce[4:], xnonce[HNonceSize:XNonceSize])
}

// XORKeyStream encrypts or decrypts data in place under (key, xnonce).
// The keystream starts at block counter 1; block 0 is reserved for
// DeriveMACKey so the two never share keystream material.
func (x *XCipher) XORKeyStream(key, xnonce []byte, data []byte) {
	x.setup(key, xnonce)
	x.c.XORKeyStream(x.subkey[:], x.nonce[:], 1, data)

	memwipe.Bytes(x.subkey[:])
	memwipe.Bytes(x.nonce[:])
}

// DeriveMACKey writes the one-time Poly1305 key for (key, xnonce) to
// out: the first 32 bytes of keystream block 0.
func (x *XCipher) DeriveMACKey(key, xnonce []byte, out *[KeySize]byte) {
	x.setup(key, xnonce)
	x.c.generateBlock(x.subkey[:], x.nonce[:], 0)
	copy(out[:], x.c.keystream[:KeySize])

	memwipe.Bytes(x.c.keystream[:])
	memwipe.Bytes(x.subkey[:])
	memwipe.Bytes(x.nonce[:])
}

// Reset erases all composition state.
func (x *XCipher) Reset() {
	memwipe.Bytes(x.subkey[:])
	memwipe.Bytes(x.nonce[:])
	x.h.Reset()
	x.c.Reset()
}
