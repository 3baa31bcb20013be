// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

const (
	// nonceSize is the standard 96-bit GCM nonce. Nonces are random, so the
	// birthday bound allows about 2^32 seals per key before a collision
	// becomes likely. The vault cipher derives a new key per seal and the
	// session key is replaced on every lock, so neither gets close. Do not
	// shrink this without revisiting that bound.
	nonceSize = 12

	// tagSize is the GCM authentication tag length.
	tagSize = 16
)

// newGCM builds an AES-GCM AEAD for key. The key length selects AES-128 or
// AES-256.
func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, nonceSize)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}

// seal encrypts plaintext and returns nonce ‖ ciphertext ‖ tag appended to
// prefix.
func seal(prefix, key, plaintext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	out := make([]byte, 0, len(prefix)+nonceSize+len(plaintext)+tagSize)
	out = append(out, prefix...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, plaintext, nil), nil
}

// open splits nonce ‖ ciphertext ‖ tag and decrypts it. The caller must have
// checked the minimum length already.
func open(key, sealed []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthentication
	}
	return plaintext, nil
}

// decodeBlob base64-decodes blob and checks it is at least minLen bytes long.
func decodeBlob(blob string, minLen int) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: decode base64: %v", ErrMalformedBlob, err)
	}
	if len(raw) < minLen {
		return nil, fmt.Errorf("%w: %d bytes, want at least %d", ErrMalformedBlob, len(raw), minLen)
	}
	return raw, nil
}

// Wipe overwrites b with zeros.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
