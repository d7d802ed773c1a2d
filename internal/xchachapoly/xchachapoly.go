// Copyright (C) 2026 Sealbox Authors
//
// This work is licensed under the Creative Commons Attribution-NonCommercial-
// NoDerivatives 4.0 International License. To view a copy of this license,
// visit http://creativecommons.org/licenses/by-nc-nd/4.0/ or send a letter to
// Creative Commons, PO Box 1866, Mountain View, CA 94042, USA.

// Package xchachapoly implements the XChaCha20-Poly1305 AEAD as the
// portable software backend.
//
// The tag covers pad16(additional data), pad16(ciphertext), and the
// little-endian 64-bit byte lengths of both, keyed by the first 32
// bytes of keystream block 0. Data uses the keystream from block 1 on.
package xchachapoly

import (
	"crypto/subtle"
	"encoding/binary"

	"github.com/sealbox/aead/internal/api"
	"github.com/sealbox/aead/internal/chacha20"
	"github.com/sealbox/aead/internal/entropy"
	"github.com/sealbox/aead/internal/memwipe"
	"github.com/sealbox/aead/internal/poly1305"
)

const (
	// KeySize is the XChaCha20-Poly1305 key size in bytes.
	KeySize = chacha20.KeySize

	// NonceSize is the XChaCha20-Poly1305 nonce size in bytes.
	NonceSize = chacha20.XNonceSize

	// TagSize is the XChaCha20-Poly1305 authentication tag size in bytes.
	TagSize = poly1305.TagSize
)

// Backend is the XChaCha20-Poly1305 api.Backend.
type Backend struct {
	xcipher  chacha20.XCipher
	mac      poly1305.MAC
	macKey   [poly1305.KeySize]byte
	tag      [TagSize]byte
	lenBlock [16]byte
	nonceGen *entropy.SessionGenerator
}

// New constructs a Backend drawing nonce randomness from src.
func New(src entropy.Source) *Backend {
	return &Backend{nonceGen: entropy.NewSessionGenerator(src, NonceSize)}
}

// Name implements api.Backend.
func (b *Backend) Name() string { return "xchacha20poly1305" }

// KeySize implements api.Backend.
func (b *Backend) KeySize() int { return KeySize }

// NonceSize implements api.Backend.
func (b *Backend) NonceSize() int { return NonceSize }

// TagSize implements api.Backend.
func (b *Backend) TagSize() int { return TagSize }

// computeTag MACs additionalData and ct under b.macKey into tag, then
// erases the length block.
func (b *Backend) computeTag(additionalData, ct []byte, tag *[TagSize]byte) {
	b.mac.Init(&b.macKey)
	b.mac.UpdatePadded(additionalData)
	b.mac.UpdatePadded(ct)

	binary.LittleEndian.PutUint64(b.lenBlock[0:8], uint64(len(additionalData)))
	binary.LittleEndian.PutUint64(b.lenBlock[8:16], uint64(len(ct)))
	b.mac.Update(b.lenBlock[:])
	b.mac.Finalize(tag)

	memwipe.Bytes(b.lenBlock[:])
}

// Encrypt implements api.Backend.
func (b *Backend) Encrypt(key, nonce, additionalData, data, tag []byte) {
	b.xcipher.XORKeyStream(key, nonce, data)
	b.xcipher.DeriveMACKey(key, nonce, &b.macKey)
	b.computeTag(additionalData, data, &b.tag)
	copy(tag, b.tag[:])

	memwipe.Bytes(b.macKey[:])
	memwipe.Bytes(b.tag[:])
}

// Decrypt implements api.Backend. The ciphertext is authenticated
// before any keystream touches it; nothing is decrypted on a tag
// mismatch.
func (b *Backend) Decrypt(key, nonce, additionalData, data, tag []byte) bool {
	b.xcipher.DeriveMACKey(key, nonce, &b.macKey)
	b.computeTag(additionalData, data, &b.tag)
	ok := subtle.ConstantTimeCompare(tag, b.tag[:]) == 1

	memwipe.Bytes(b.macKey[:])
	memwipe.Bytes(b.tag[:])

	if !ok {
		memwipe.Bytes(data)
		return false
	}

	b.xcipher.XORKeyStream(key, nonce, data)
	return true
}

// GenerateNonce implements api.Backend.
func (b *Backend) GenerateNonce() ([]byte, error) {
	return b.nonceGen.Generate()
}

// Reset implements api.Backend.
func (b *Backend) Reset() {
	b.xcipher.Reset()
	b.mac.Reset()
	memwipe.Bytes(b.macKey[:])
	memwipe.Bytes(b.tag[:])
	memwipe.Bytes(b.lenBlock[:])
}

type factory struct{}

func (factory) Name() string { return "xchacha20poly1305" }

func (factory) New(src entropy.Source) api.Backend { return New(src) }

// Factory constructs XChaCha20-Poly1305 backends.
var Factory api.Factory = factory{}
