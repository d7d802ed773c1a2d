// Copyright (C) 2026 Sealbox Authors
//
// This work is licensed under the Creative Commons Attribution-NonCommercial-
// NoDerivatives 4.0 International License. To view a copy of this license,
// visit http://creativecommons.org/licenses/by-nc-nd/4.0/ or send a letter to
// Creative Commons, PO Box 1866, Mountain View, CA 94042, USA.

// Package aegis128l implements the AEGIS-128L authenticated cipher.
//
// The state machine absorbs data in 32-byte blocks across eight AES
// round states. All state and scratch lives inside a reusable struct
// that every top-level operation erases before returning.
package aegis128l

import (
	"crypto/subtle"
	"encoding/binary"

	"github.com/sealbox/aead/internal/api"
	"github.com/sealbox/aead/internal/entropy"
	"github.com/sealbox/aead/internal/memwipe"
)

const (
	// KeySize is the AEGIS-128L key size in bytes.
	KeySize = 16

	// NonceSize is the AEGIS-128L nonce size in bytes.
	NonceSize = 16

	// TagSize is the AEGIS-128L authentication tag size in bytes.
	TagSize = 16

	aesBlockSize = 16
	rate         = 32
)

// The Fibonacci initialization constants.
var (
	c0 = [aesBlockSize]byte{
		0x00, 0x01, 0x01, 0x02, 0x03, 0x05, 0x08, 0x0d,
		0x15, 0x22, 0x37, 0x59, 0x90, 0xe9, 0x79, 0x62,
	}
	c1 = [aesBlockSize]byte{
		0xdb, 0x3d, 0x18, 0x55, 0x6d, 0xc2, 0x2f, 0xf1,
		0x20, 0x11, 0x31, 0x42, 0x73, 0xb5, 0x28, 0xdd,
	}
)

// state is the eight-row AEGIS-128L state plus the scratch the update
// and block routines work through.
type state struct {
	s [8][aesBlockSize]byte

	old    [aesBlockSize]byte
	z0, z1 [aesBlockSize]byte
	t0, t1 [aesBlockSize]byte
	sub    [aesBlockSize]byte
	pad    [rate]byte
	lenb   [aesBlockSize]byte
}

func (s *state) init(key, nonce []byte) {
	copy(s.t0[:], key)
	copy(s.t1[:], nonce)

	for i := 0; i < aesBlockSize; i++ {
		s.s[0][i] = s.t0[i] ^ s.t1[i]
		s.s[5][i] = s.t0[i] ^ c0[i]
		s.s[6][i] = s.t0[i] ^ c1[i]
	}
	s.s[1] = c1
	s.s[2] = c0
	s.s[3] = c1
	s.s[4] = s.s[0]
	s.s[7] = s.s[5]

	for i := 0; i < 10; i++ {
		s.update(&s.t1, &s.t0)
	}

	memwipe.Bytes(s.t0[:])
	memwipe.Bytes(s.t1[:])
}

// update runs the state update function with message blocks m0, m1.
// Rows are rewritten high to low so every round reads its predecessor's
// pre-update value.
func (s *state) update(m0, m1 *[aesBlockSize]byte) {
	s.old = s.s[7]

	s.aesRound(&s.s[7], &s.s[6], &s.s[7])
	s.aesRound(&s.s[6], &s.s[5], &s.s[6])
	s.aesRound(&s.s[5], &s.s[4], &s.s[5])
	for i := 0; i < aesBlockSize; i++ {
		s.s[4][i] ^= m1[i]
	}
	s.aesRound(&s.s[4], &s.s[3], &s.s[4])
	s.aesRound(&s.s[3], &s.s[2], &s.s[3])
	s.aesRound(&s.s[2], &s.s[1], &s.s[2])
	s.aesRound(&s.s[1], &s.s[0], &s.s[1])
	for i := 0; i < aesBlockSize; i++ {
		s.s[0][i] ^= m0[i]
	}
	s.aesRound(&s.s[0], &s.old, &s.s[0])
}

// genZ derives the keystream halves for the current state.
func (s *state) genZ() {
	for i := 0; i < aesBlockSize; i++ {
		s.z0[i] = s.s[1][i] ^ s.s[6][i] ^ s.s[2][i]&s.s[3][i]
		s.z1[i] = s.s[2][i] ^ s.s[5][i] ^ s.s[6][i]&s.s[7][i]
	}
}

// absorb folds additional data into the state, zero padding the final
// partial block.
func (s *state) absorb(ad []byte) {
	for len(ad) >= rate {
		copy(s.t0[:], ad[:aesBlockSize])
		copy(s.t1[:], ad[aesBlockSize:rate])
		s.update(&s.t0, &s.t1)
		ad = ad[rate:]
	}
	if len(ad) > 0 {
		memwipe.Bytes(s.pad[:])
		copy(s.pad[:], ad)
		copy(s.t0[:], s.pad[:aesBlockSize])
		copy(s.t1[:], s.pad[aesBlockSize:])
		s.update(&s.t0, &s.t1)
		memwipe.Bytes(s.pad[:])
	}
}

// encrypt encrypts data in place.
func (s *state) encrypt(data []byte) {
	for len(data) >= rate {
		s.genZ()
		copy(s.t0[:], data[:aesBlockSize])
		copy(s.t1[:], data[aesBlockSize:rate])
		for i := 0; i < aesBlockSize; i++ {
			data[i] = s.t0[i] ^ s.z0[i]
			data[aesBlockSize+i] = s.t1[i] ^ s.z1[i]
		}
		s.update(&s.t0, &s.t1)
		data = data[rate:]
	}
	if len(data) > 0 {
		s.encryptPartial(data)
	}
}

func (s *state) encryptPartial(data []byte) {
	s.genZ()

	// The state absorbs the zero padded plaintext.
	memwipe.Bytes(s.pad[:])
	copy(s.pad[:], data)
	for i := range data {
		if i < aesBlockSize {
			data[i] ^= s.z0[i]
		} else {
			data[i] ^= s.z1[i-aesBlockSize]
		}
	}
	copy(s.t0[:], s.pad[:aesBlockSize])
	copy(s.t1[:], s.pad[aesBlockSize:])
	s.update(&s.t0, &s.t1)
	memwipe.Bytes(s.pad[:])
}

// decrypt decrypts data in place.
func (s *state) decrypt(data []byte) {
	for len(data) >= rate {
		s.genZ()
		for i := 0; i < aesBlockSize; i++ {
			s.t0[i] = data[i] ^ s.z0[i]
			s.t1[i] = data[aesBlockSize+i] ^ s.z1[i]
		}
		copy(data[:aesBlockSize], s.t0[:])
		copy(data[aesBlockSize:rate], s.t1[:])
		s.update(&s.t0, &s.t1)
		data = data[rate:]
	}
	if len(data) > 0 {
		s.decryptPartial(data)
	}
}

func (s *state) decryptPartial(data []byte) {
	s.genZ()

	memwipe.Bytes(s.pad[:])
	copy(s.pad[:], data)
	for i := 0; i < rate; i++ {
		if i < aesBlockSize {
			s.pad[i] ^= s.z0[i]
		} else {
			s.pad[i] ^= s.z1[i-aesBlockSize]
		}
	}
	copy(data, s.pad[:len(data)])

	// Keystream past the ciphertext must not enter the state; the
	// update absorbs the zero padded plaintext.
	memwipe.Bytes(s.pad[len(data):])
	copy(s.t0[:], s.pad[:aesBlockSize])
	copy(s.t1[:], s.pad[aesBlockSize:])
	s.update(&s.t0, &s.t1)
	memwipe.Bytes(s.pad[:])
}

// finalize derives the authentication tag from the bit lengths of the
// additional data and message.
func (s *state) finalize(adLen, msgLen uint64, tag *[TagSize]byte) {
	binary.LittleEndian.PutUint64(s.lenb[0:8], adLen*8)
	binary.LittleEndian.PutUint64(s.lenb[8:16], msgLen*8)

	for i := 0; i < aesBlockSize; i++ {
		s.t0[i] = s.s[2][i] ^ s.lenb[i]
	}
	s.t1 = s.t0
	for i := 0; i < 7; i++ {
		s.update(&s.t0, &s.t1)
	}

	for i := 0; i < TagSize; i++ {
		tag[i] = s.s[0][i] ^ s.s[1][i] ^ s.s[2][i] ^ s.s[3][i] ^ s.s[4][i] ^ s.s[5][i] ^ s.s[6][i]
	}

	memwipe.Bytes(s.lenb[:])
	memwipe.Bytes(s.t0[:])
	memwipe.Bytes(s.t1[:])
}

// wipe erases every state row and all scratch.
func (s *state) wipe() {
	for i := range s.s {
		memwipe.Bytes(s.s[i][:])
	}
	memwipe.Bytes(s.old[:])
	memwipe.Bytes(s.z0[:])
	memwipe.Bytes(s.z1[:])
	memwipe.Bytes(s.t0[:])
	memwipe.Bytes(s.t1[:])
	memwipe.Bytes(s.sub[:])
	memwipe.Bytes(s.pad[:])
	memwipe.Bytes(s.lenb[:])
}

// Backend is the AEGIS-128L api.Backend.
type Backend struct {
	st       state
	tag      [TagSize]byte
	nonceGen *entropy.SessionGenerator
}

// New constructs a Backend drawing nonce randomness from src.
func New(src entropy.Source) *Backend {
	return &Backend{nonceGen: entropy.NewSessionGenerator(src, NonceSize)}
}

// Name implements api.Backend.
func (b *Backend) Name() string { return "aegis128l" }

// KeySize implements api.Backend.
func (b *Backend) KeySize() int { return KeySize }

// NonceSize implements api.Backend.
func (b *Backend) NonceSize() int { return NonceSize }

// TagSize implements api.Backend.
func (b *Backend) TagSize() int { return TagSize }

// Encrypt implements api.Backend.
func (b *Backend) Encrypt(key, nonce, additionalData, data, tag []byte) {
	b.st.init(key, nonce)
	b.st.absorb(additionalData)
	b.st.encrypt(data)
	b.st.finalize(uint64(len(additionalData)), uint64(len(data)), &b.tag)
	copy(tag, b.tag[:])

	b.st.wipe()
	memwipe.Bytes(b.tag[:])
}

// Decrypt implements api.Backend. AEGIS derives the tag from the
// decrypted state, so data is decrypted in place first and erased again
// if the tag comparison fails.
func (b *Backend) Decrypt(key, nonce, additionalData, data, tag []byte) bool {
	b.st.init(key, nonce)
	b.st.absorb(additionalData)
	b.st.decrypt(data)
	b.st.finalize(uint64(len(additionalData)), uint64(len(data)), &b.tag)
	ok := subtle.ConstantTimeCompare(tag, b.tag[:]) == 1

	b.st.wipe()
	memwipe.Bytes(b.tag[:])

	if !ok {
		memwipe.Bytes(data)
		return false
	}
	return true
}

// GenerateNonce implements api.Backend.
func (b *Backend) GenerateNonce() ([]byte, error) {
	return b.nonceGen.Generate()
}

// Reset implements api.Backend.
func (b *Backend) Reset() {
	b.st.wipe()
	memwipe.Bytes(b.tag[:])
}

type factory struct{}

func (factory) Name() string { return "aegis128l" }

func (factory) New(src entropy.Source) api.Backend { return New(src) }

// Factory constructs AEGIS-128L backends.
var Factory api.Factory = factory{}
