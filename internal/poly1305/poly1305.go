// Copyright (C) 2026 Sealbox Authors
//
// This work is licensed under the Creative Commons Attribution-NonCommercial-
// NoDerivatives 4.0 International License. To view a copy of this license,
// visit http://creativecommons.org/licenses/by-nc-nd/4.0/ or send a letter to
// Creative Commons, PO Box 1866, Mountain View, CA 94042, USA.

// Package poly1305 implements the Poly1305 one-time authenticator
// (RFC 8439) over 26-bit limbs.
//
// A key must authenticate exactly one message. The MAC state owns all
// of its scratch storage; Finalize erases everything, and the scratch
// of each block is erased as soon as the block is absorbed.
package poly1305

import (
	"encoding/binary"

	"github.com/sealbox/aead/internal/memwipe"
)

const (
	// KeySize is the one-time key size in bytes (r || s).
	KeySize = 32

	// TagSize is the authenticator size in bytes.
	TagSize = 16

	// BlockSize is the message block size in bytes.
	BlockSize = 16
)

// MAC is a one-time Poly1305 authenticator state.
//
// The zero value is ready for Init. A MAC must not be used from two
// goroutines at once.
type MAC struct {
	r   [5]uint32
	s   [16]byte
	acc [5]uint64

	buffer    [BlockSize]byte
	bufferLen int

	// Block scratch.
	t    [4]uint32
	mul5 [4]uint64
	d    [5]uint64

	// Finalization scratch.
	fd   [5]uint64
	g    [4]uint64
	h    [4]uint64
	mask uint64
}

// Init keys the authenticator with the one-time key r || s and resets
// the accumulator.
func (m *MAC) Init(key *[KeySize]byte) {
	m.clampR(key[0:16])
	copy(m.s[:], key[16:32])

	memwipe.Uint64s(m.acc[:])
	memwipe.Bytes(m.buffer[:])
	m.bufferLen = 0
}

// clampR loads r with the RFC 8439 clamping mask applied and splits it
// into 26-bit limbs.
func (m *MAC) clampR(r []byte) {
	m.t[0] = uint32(r[0]) | uint32(r[1])<<8 | uint32(r[2])<<16 | uint32(r[3]&0x0f)<<24
	m.t[1] = uint32(r[4]&0xfc) | uint32(r[5])<<8 | uint32(r[6])<<16 | uint32(r[7]&0x0f)<<24
	m.t[2] = uint32(r[8]&0xfc) | uint32(r[9])<<8 | uint32(r[10])<<16 | uint32(r[11]&0x0f)<<24
	m.t[3] = uint32(r[12]&0xfc) | uint32(r[13])<<8 | uint32(r[14])<<16 | uint32(r[15]&0x0f)<<24

	m.r[0] = m.t[0] & 0x3ffffff
	m.r[1] = (m.t[0]>>26 | m.t[1]<<6) & 0x3ffffff
	m.r[2] = (m.t[1]>>20 | m.t[2]<<12) & 0x3ffffff
	m.r[3] = (m.t[2]>>14 | m.t[3]<<18) & 0x3ffffff
	m.r[4] = m.t[3] >> 8

	memwipe.Uint32s(m.t[:])
}

// processBlock absorbs one 16-byte block from m.buffer's scratch copy.
// hibit is 1 for full blocks and 0 for the marker-padded final block.
func (m *MAC) processBlock(block []byte, hibit uint32) {
	m.t[0] = binary.LittleEndian.Uint32(block[0:4])
	m.t[1] = binary.LittleEndian.Uint32(block[4:8])
	m.t[2] = binary.LittleEndian.Uint32(block[8:12])
	m.t[3] = binary.LittleEndian.Uint32(block[12:16])

	m.acc[0] += uint64(m.t[0] & 0x3ffffff)
	m.acc[1] += uint64((m.t[0]>>26 | m.t[1]<<6) & 0x3ffffff)
	m.acc[2] += uint64((m.t[1]>>20 | m.t[2]<<12) & 0x3ffffff)
	m.acc[3] += uint64((m.t[2]>>14 | m.t[3]<<18) & 0x3ffffff)
	m.acc[4] += uint64(m.t[3]>>8 | hibit<<24)

	m.mul5[0] = uint64(m.r[1]) * 5
	m.mul5[1] = uint64(m.r[2]) * 5
	m.mul5[2] = uint64(m.r[3]) * 5
	m.mul5[3] = uint64(m.r[4]) * 5

	m.d[0] = m.acc[0]*uint64(m.r[0]) +
		m.acc[1]*m.mul5[3] +
		m.acc[2]*m.mul5[2] +
		m.acc[3]*m.mul5[1] +
		m.acc[4]*m.mul5[0]
	m.d[1] = m.acc[0]*uint64(m.r[1]) +
		m.acc[1]*uint64(m.r[0]) +
		m.acc[2]*m.mul5[3] +
		m.acc[3]*m.mul5[2] +
		m.acc[4]*m.mul5[1]
	m.d[2] = m.acc[0]*uint64(m.r[2]) +
		m.acc[1]*uint64(m.r[1]) +
		m.acc[2]*uint64(m.r[0]) +
		m.acc[3]*m.mul5[3] +
		m.acc[4]*m.mul5[2]
	m.d[3] = m.acc[0]*uint64(m.r[3]) +
		m.acc[1]*uint64(m.r[2]) +
		m.acc[2]*uint64(m.r[1]) +
		m.acc[3]*uint64(m.r[0]) +
		m.acc[4]*m.mul5[3]
	m.d[4] = m.acc[0]*uint64(m.r[4]) +
		m.acc[1]*uint64(m.r[3]) +
		m.acc[2]*uint64(m.r[2]) +
		m.acc[3]*uint64(m.r[1]) +
		m.acc[4]*uint64(m.r[0])

	m.d[1] += m.d[0] >> 26
	m.d[0] &= 0x3ffffff
	m.d[2] += m.d[1] >> 26
	m.d[1] &= 0x3ffffff
	m.d[3] += m.d[2] >> 26
	m.d[2] &= 0x3ffffff
	m.d[4] += m.d[3] >> 26
	m.d[3] &= 0x3ffffff
	m.d[0] += (m.d[4] >> 26) * 5
	m.d[4] &= 0x3ffffff
	m.d[1] += m.d[0] >> 26
	m.d[0] &= 0x3ffffff

	m.acc[0] = m.d[0]
	m.acc[1] = m.d[1]
	m.acc[2] = m.d[2]
	m.acc[3] = m.d[3]
	m.acc[4] = m.d[4]

	memwipe.Uint32s(m.t[:])
	memwipe.Uint64s(m.mul5[:])
	memwipe.Uint64s(m.d[:])
}

// Update absorbs data into the accumulator.
func (m *MAC) Update(data []byte) {
	pos := 0

	if m.bufferLen > 0 {
		take := BlockSize - m.bufferLen
		if take > len(data) {
			take = len(data)
		}
		copy(m.buffer[m.bufferLen:], data[:take])
		m.bufferLen += take
		pos = take

		if m.bufferLen == BlockSize {
			m.processBlock(m.buffer[:], 1)
			memwipe.Bytes(m.buffer[:])
			m.bufferLen = 0
		}
	}

	for pos+BlockSize <= len(data) {
		m.processBlock(data[pos:pos+BlockSize], 1)
		pos += BlockSize
	}

	if pos < len(data) {
		copy(m.buffer[:], data[pos:])
		m.bufferLen = len(data) - pos
	}
}

// UpdatePadded absorbs data and then zero bytes up to the next 16-byte
// boundary (the RFC 8439 AEAD pad16 rule). Aligned data gets no padding.
func (m *MAC) UpdatePadded(data []byte) {
	m.Update(data)
	if pad := len(data) % BlockSize; pad != 0 {
		var zeros [BlockSize]byte
		m.Update(zeros[:BlockSize-pad])
	}
}

// Finalize computes the tag into out and erases the authenticator
// state. The one-time key must not be used again.
func (m *MAC) Finalize(out *[TagSize]byte) {
	if m.bufferLen > 0 {
		// Final short block: append the 0x01 marker, zero-fill the rest,
		// and absorb with the high bit clear.
		m.buffer[m.bufferLen] = 0x01
		for i := m.bufferLen + 1; i < BlockSize; i++ {
			m.buffer[i] = 0
		}
		m.processBlock(m.buffer[:], 0)
		memwipe.Bytes(m.buffer[:])
		m.bufferLen = 0
	}

	m.fd[0] = m.acc[0]
	m.fd[1] = m.acc[1]
	m.fd[2] = m.acc[2]
	m.fd[3] = m.acc[3]
	m.fd[4] = m.acc[4]

	m.fd[1] += m.fd[0] >> 26
	m.fd[0] &= 0x3ffffff
	m.fd[2] += m.fd[1] >> 26
	m.fd[1] &= 0x3ffffff
	m.fd[3] += m.fd[2] >> 26
	m.fd[2] &= 0x3ffffff
	m.fd[4] += m.fd[3] >> 26
	m.fd[3] &= 0x3ffffff

	m.fd[0] += (m.fd[4] >> 26) * 5
	m.fd[4] &= 0x3ffffff
	m.fd[1] += m.fd[0] >> 26
	m.fd[0] &= 0x3ffffff

	// g = h + 5; select g when h >= 2^130 - 5, h otherwise, without
	// branching on the secret value.
	m.g[0] = m.fd[0] + 5
	m.g[1] = m.fd[1] + m.g[0]>>26
	m.g[0] &= 0x3ffffff
	m.g[2] = m.fd[2] + m.g[1]>>26
	m.g[1] &= 0x3ffffff
	m.g[3] = m.fd[3] + m.g[2]>>26
	m.g[2] &= 0x3ffffff

	g4 := m.fd[4] + m.g[3]>>26
	m.g[3] &= 0x3ffffff

	m.mask = (g4 >> 26) - 1

	m.fd[0] = m.fd[0]&m.mask | m.g[0]&^m.mask
	m.fd[1] = m.fd[1]&m.mask | m.g[1]&^m.mask
	m.fd[2] = m.fd[2]&m.mask | m.g[2]&^m.mask
	m.fd[3] = m.fd[3]&m.mask | m.g[3]&^m.mask
	m.fd[4] &= m.mask

	// Repack the 26-bit limbs into 32-bit words.
	m.h[0] = m.fd[0] | (m.fd[1]&0x3f)<<26
	m.h[1] = m.fd[1]>>6 | (m.fd[2]&0xfff)<<20
	m.h[2] = m.fd[2]>>12 | (m.fd[3]&0x3ffff)<<14
	m.h[3] = m.fd[3]>>18 | (m.fd[4]&0xffffff)<<8

	// Add s modulo 2^128.
	m.h[0] += uint64(binary.LittleEndian.Uint32(m.s[0:4]))
	m.h[1] += uint64(binary.LittleEndian.Uint32(m.s[4:8])) + m.h[0]>>32
	m.h[0] &= 0xffffffff
	m.h[2] += uint64(binary.LittleEndian.Uint32(m.s[8:12])) + m.h[1]>>32
	m.h[1] &= 0xffffffff
	m.h[3] += uint64(binary.LittleEndian.Uint32(m.s[12:16])) + m.h[2]>>32
	m.h[2] &= 0xffffffff
	m.h[3] &= 0xffffffff

	binary.LittleEndian.PutUint32(out[0:4], uint32(m.h[0]))
	binary.LittleEndian.PutUint32(out[4:8], uint32(m.h[1]))
	binary.LittleEndian.PutUint32(out[8:12], uint32(m.h[2]))
	binary.LittleEndian.PutUint32(out[12:16], uint32(m.h[3]))

	m.Reset()
}

// Reset erases all authenticator state, including the one-time key.
func (m *MAC) Reset() {
	memwipe.Uint32s(m.r[:])
	memwipe.Bytes(m.s[:])
	memwipe.Uint64s(m.acc[:])
	memwipe.Bytes(m.buffer[:])
	m.bufferLen = 0
	memwipe.Uint32s(m.t[:])
	memwipe.Uint64s(m.mul5[:])
	memwipe.Uint64s(m.d[:])
	memwipe.Uint64s(m.fd[:])
	memwipe.Uint64s(m.g[:])
	memwipe.Uint64s(m.h[:])
	m.mask = 0
}

// Sum computes the one-shot tag of msg under key.
func Sum(key *[KeySize]byte, msg []byte, out *[TagSize]byte) {
	var m MAC
	m.Init(key)
	m.Update(msg)
	m.Finalize(out)
}
