// Copyright (C) 2026 Sealbox Authors
//
// This work is licensed under the Creative Commons Attribution-NonCommercial-
// NoDerivatives 4.0 International License. To view a copy of this license,
// visit http://creativecommons.org/licenses/by-nc-nd/4.0/ or send a letter to
// Creative Commons, PO Box 1866, Mountain View, CA 94042, USA.

// Package memwipe erases sensitive buffers and lets tests probe that the
// erasure actually happened.
//
// Go cannot promise that no copy of a value ever existed, but every scratch
// buffer the engine allocates is reachable by the code that wipes it, and
// the IsZero probes make "was it wiped" a checkable property instead of a
// convention.
package memwipe

// Bytes overwrites b with zero bytes.
func Bytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Uint32s overwrites w with zero words.
func Uint32s(w []uint32) {
	for i := range w {
		w[i] = 0
	}
}

// Uint64s overwrites w with zero words.
func Uint64s(w []uint64) {
	for i := range w {
		w[i] = 0
	}
}

// IsZero reports whether every byte of b is zero.
func IsZero(b []byte) bool {
	var acc byte
	for _, v := range b {
		acc |= v
	}
	return acc == 0
}

// IsZeroUint32 reports whether every word of w is zero.
func IsZeroUint32(w []uint32) bool {
	var acc uint32
	for _, v := range w {
		acc |= v
	}
	return acc == 0
}

// IsZeroUint64 reports whether every word of w is zero.
func IsZeroUint64(w []uint64) bool {
	var acc uint64
	for _, v := range w {
		acc |= v
	}
	return acc == 0
}
