// Copyright (C) 2026 Sealbox Authors
//
// This work is licensed under the Creative Commons Attribution-NonCommercial-
// NoDerivatives 4.0 International License. To view a copy of this license,
// visit http://creativecommons.org/licenses/by-nc-nd/4.0/ or send a letter to
// Creative Commons, PO Box 1866, Mountain View, CA 94042, USA.

// Package api provides the AEAD backend abstract interface.
package api

import "github.com/sealbox/aead/internal/entropy"

// Backend is a single AEAD implementation. Callers are responsible for
// validating key, nonce, and tag sizes against the backend's reported
// sizes before invoking Encrypt or Decrypt.
//
// A Backend holds reusable scratch state and must not be used from two
// goroutines at once.
type Backend interface {
	// Name returns the name of the implementation.
	Name() string

	// KeySize returns the key size in bytes.
	KeySize() int

	// NonceSize returns the nonce size in bytes.
	NonceSize() int

	// TagSize returns the authentication tag size in bytes.
	TagSize() int

	// Encrypt encrypts data in place under (key, nonce), authenticating
	// additionalData, and writes the authentication tag to tag.
	Encrypt(key, nonce, additionalData, data, tag []byte)

	// Decrypt authenticates (additionalData, data, tag) under
	// (key, nonce) and, on success, decrypts data in place and returns
	// true. On failure data is erased and false is returned.
	Decrypt(key, nonce, additionalData, data, tag []byte) bool

	// GenerateNonce returns a fresh nonce of NonceSize bytes that is
	// unique for the lifetime of the backend.
	GenerateNonce() ([]byte, error)

	// Reset attempts to clear the backend of sensitive data.
	Reset()
}

// Factory constructs Backend instances.
type Factory interface {
	// Name returns the name of the implementation.
	Name() string

	// New constructs a backend drawing nonce randomness from src.
	New(src entropy.Source) Backend
}
