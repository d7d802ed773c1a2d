// Copyright (C) 2026 Sealbox Authors
//
// This work is licensed under the Creative Commons Attribution-NonCommercial-
// NoDerivatives 4.0 International License. To view a copy of this license,
// visit http://creativecommons.org/licenses/by-nc-nd/4.0/ or send a letter to
// Creative Commons, PO Box 1866, Mountain View, CA 94042, USA.

package aead

import (
	"crypto/cipher"

	"gitlab.com/yawning/slice.git"

	"github.com/sealbox/aead/internal/api"
	"github.com/sealbox/aead/internal/entropy"
	"github.com/sealbox/aead/internal/memwipe"
)

type aeadInstance struct {
	inner api.Backend
	key   []byte
}

func (aead *aeadInstance) NonceSize() int {
	return aead.inner.NonceSize()
}

func (aead *aeadInstance) Overhead() int {
	return aead.inner.TagSize()
}

func (aead *aeadInstance) Seal(dst, nonce, plaintext, additionalData []byte) []byte {
	if len(nonce) != aead.inner.NonceSize() {
		panic(ErrInvalidNonceSize)
	}
	if err := checkLimits(plaintext, additionalData); err != nil {
		panic(err)
	}

	tagSize := aead.inner.TagSize()
	ret, out := slice.ForAppend(dst, len(plaintext)+tagSize)
	data, tag := out[:len(plaintext)], out[len(plaintext):]
	copy(data, plaintext)
	aead.inner.Encrypt(aead.key, nonce, additionalData, data, tag)

	return ret
}

func (aead *aeadInstance) Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	if len(nonce) != aead.inner.NonceSize() {
		return nil, ErrInvalidNonceSize
	}
	tagSize := aead.inner.TagSize()
	if len(ciphertext) < tagSize {
		return nil, ErrAuthentication
	}
	ctLen := len(ciphertext) - tagSize
	if err := checkLimits(ciphertext[:ctLen], additionalData); err != nil {
		return nil, err
	}

	ret, out := slice.ForAppend(dst, ctLen)
	copy(out, ciphertext[:ctLen])
	if !aead.inner.Decrypt(aead.key, nonce, additionalData, out, ciphertext[ctLen:]) {
		return nil, ErrAuthentication
	}

	return ret, nil
}

func (aead *aeadInstance) Reset() {
	memwipe.Bytes(aead.key)
	aead.inner.Reset()
}

// NewAEAD wraps the Engine's backend in the crypto/cipher AEAD
// interface with the provided key. The returned AEAD holds its own
// copy of the key and its own scratch state; Reset() erases both.
func (e *Engine) NewAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != e.backend.KeySize() {
		return nil, ErrInvalidKeySize
	}

	k := make([]byte, len(key))
	copy(k, key)

	return &aeadInstance{
		inner: e.factory.New(entropy.SystemSource{}),
		key:   k,
	}, nil
}
