// Copyright (C) 2026 Sealbox Authors
//
// This work is licensed under the Creative Commons Attribution-NonCommercial-
// NoDerivatives 4.0 International License. To view a copy of this license,
// visit http://creativecommons.org/licenses/by-nc-nd/4.0/ or send a letter to
// Creative Commons, PO Box 1866, Mountain View, CA 94042, USA.

// Package aead implements an authenticated encryption engine with
// runtime backend selection.
//
// Two backends are provided: AEGIS-128L, used when the CPU supports
// AES round instructions, and XChaCha20-Poly1305, the portable
// fallback. Both erase every intermediate value they derive before
// returning, on success and failure alike.
package aead

import (
	"errors"
	"math"

	"github.com/sealbox/aead/internal/aegis128l"
	"github.com/sealbox/aead/internal/api"
	"github.com/sealbox/aead/internal/entropy"
	"github.com/sealbox/aead/internal/hardware"
	"github.com/sealbox/aead/internal/xchachapoly"
)

// Lengths are encoded as uint64s, in bits.
const maxBytes = math.MaxUint64 >> 3

var (
	// ErrInvalidKeySize is the error returned when the key size is invalid.
	ErrInvalidKeySize = errors.New("aead: invalid key size")

	// ErrInvalidNonceSize is the error returned/paniced when the nonce
	// size is invalid.
	ErrInvalidNonceSize = errors.New("aead: invalid nonce size")

	// ErrInvalidTagSize is the error returned when the tag size is invalid.
	ErrInvalidTagSize = errors.New("aead: invalid tag size")

	// ErrAuthentication is the error returned when the message
	// authentication fails during a Decrypt or Open call.
	ErrAuthentication = errors.New("aead: message authentication failure")

	// ErrEntropyUnavailable is the error returned when the system
	// entropy source cannot produce a nonce.
	ErrEntropyUnavailable = errors.New("aead: system entropy unavailable")

	// ErrOversized is the error returned/paniced when the plaintext,
	// ciphertext and or additional data are beyond the maximum allowed.
	ErrOversized = errors.New("aead: data is over limit")
)

// Engine is an AEAD engine bound to a single backend.
//
// An Engine reuses internal scratch across calls and must not be used
// from two goroutines at once.
type Engine struct {
	factory api.Factory
	backend api.Backend
}

// New constructs an Engine with the best backend for the current CPU:
// AEGIS-128L when AES round instructions are available, otherwise
// XChaCha20-Poly1305.
func New() *Engine {
	if hardware.HasAES() {
		return NewAEGIS128L()
	}
	return NewXChaCha20Poly1305()
}

// NewAEGIS128L constructs an Engine with the AEGIS-128L backend.
func NewAEGIS128L() *Engine {
	return newEngine(aegis128l.Factory)
}

// NewXChaCha20Poly1305 constructs an Engine with the
// XChaCha20-Poly1305 backend.
func NewXChaCha20Poly1305() *Engine {
	return newEngine(xchachapoly.Factory)
}

func newEngine(factory api.Factory) *Engine {
	return &Engine{
		factory: factory,
		backend: factory.New(entropy.SystemSource{}),
	}
}

// BackendName returns the name of the selected backend.
func (e *Engine) BackendName() string {
	return e.backend.Name()
}

// KeySize returns the backend's key size in bytes.
func (e *Engine) KeySize() int {
	return e.backend.KeySize()
}

// NonceSize returns the backend's nonce size in bytes.
func (e *Engine) NonceSize() int {
	return e.backend.NonceSize()
}

// TagSize returns the backend's authentication tag size in bytes.
func (e *Engine) TagSize() int {
	return e.backend.TagSize()
}

// Encrypt encrypts data in place under (key, nonce), authenticating
// additionalData, and writes the authentication tag to tag. The sizes
// are validated before any cryptographic work happens.
func (e *Engine) Encrypt(key, nonce, additionalData, data, tag []byte) error {
	if err := e.checkSizes(key, nonce, tag); err != nil {
		return err
	}
	if err := checkLimits(data, additionalData); err != nil {
		return err
	}

	e.backend.Encrypt(key, nonce, additionalData, data, tag)
	return nil
}

// Decrypt authenticates (additionalData, data, tag) under (key, nonce)
// and, on success, decrypts data in place. On authentication failure
// data is erased and ErrAuthentication is returned.
func (e *Engine) Decrypt(key, nonce, additionalData, data, tag []byte) error {
	if err := e.checkSizes(key, nonce, tag); err != nil {
		return err
	}
	if err := checkLimits(data, additionalData); err != nil {
		return err
	}

	if !e.backend.Decrypt(key, nonce, additionalData, data, tag) {
		return ErrAuthentication
	}
	return nil
}

// GenerateNonce returns a fresh nonce of NonceSize bytes, unique for
// the lifetime of the Engine.
func (e *Engine) GenerateNonce() ([]byte, error) {
	nonce, err := e.backend.GenerateNonce()
	if err != nil {
		return nil, ErrEntropyUnavailable
	}
	return nonce, nil
}

// Reset attempts to clear the Engine of sensitive data.
func (e *Engine) Reset() {
	e.backend.Reset()
}

func (e *Engine) checkSizes(key, nonce, tag []byte) error {
	switch {
	case len(key) != e.backend.KeySize():
		return ErrInvalidKeySize
	case len(nonce) != e.backend.NonceSize():
		return ErrInvalidNonceSize
	case len(tag) != e.backend.TagSize():
		return ErrInvalidTagSize
	}
	return nil
}

func checkLimits(a, b []byte) error {
	if uint64(len(a)) > maxBytes || uint64(len(b)) > maxBytes {
		return ErrOversized
	}

	return nil
}
