// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// MemoryKeySize is the length of a session key (AES-128).
const MemoryKeySize = 16

type memoryCipher struct{}

// NewMemoryCipher constructs a [MemoryCipher].
func NewMemoryCipher() MemoryCipher {
	return memoryCipher{}
}

// GenerateKey implements [MemoryCipher].
func (memoryCipher) GenerateKey() ([]byte, error) {
	key := make([]byte, MemoryKeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return key, nil
}

// Seal implements [MemoryCipher].
func (memoryCipher) Seal(plaintext, key []byte) (string, error) {
	if len(key) != MemoryKeySize {
		return "", ErrInvalidKeySize
	}
	blob, err := seal(nil, key, plaintext)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(blob), nil
}

// Open implements [MemoryCipher].
func (memoryCipher) Open(blob string, key []byte) ([]byte, error) {
	if len(key) != MemoryKeySize {
		return nil, ErrInvalidKeySize
	}
	raw, err := decodeBlob(blob, nonceSize+tagSize)
	if err != nil {
		return nil, err
	}
	return open(key, raw)
}
