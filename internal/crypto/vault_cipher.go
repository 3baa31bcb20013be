// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters for schema version 1. Changing any of them makes existing
// vault files unreadable and requires a new schema version.
const (
	scryptN      = 1 << 14
	scryptR      = 8
	scryptP      = 1
	vaultKeySize = 32
	saltSize     = 32
)

// vaultHeaderSize is the number of bytes preceding the ciphertext.
const vaultHeaderSize = saltSize + nonceSize

type vaultCipher struct {
	deriveKey func(password, salt []byte) ([]byte, error)
}

// NewVaultCipher constructs a [VaultCipher] using scrypt and AES-256-GCM.
func NewVaultCipher() VaultCipher {
	return &vaultCipher{deriveKey: scryptKey}
}

func scryptKey(password, salt []byte) ([]byte, error) {
	return scrypt.Key(password, salt, scryptN, scryptR, scryptP, vaultKeySize)
}

// Seal implements [VaultCipher].
func (v *vaultCipher) Seal(plaintext, password []byte) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key, err := v.deriveKey(password, salt)
	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}
	defer Wipe(key)

	blob, err := seal(salt, key, plaintext)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(blob), nil
}

// Open implements [VaultCipher].
func (v *vaultCipher) Open(blob string, password []byte) ([]byte, error) {
	raw, err := decodeBlob(blob, vaultHeaderSize+tagSize)
	if err != nil {
		return nil, err
	}

	salt := raw[:saltSize]
	key, err := v.deriveKey(password, salt)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	defer Wipe(key)

	return open(key, raw[saltSize:])
}
