// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

// VaultCipher seals and opens the vault file payload under the user's vault
// password.
//
// Scheme:
//
//	salt  = random(32)
//	key   = scrypt(password, salt, N=2^14, r=8, p=1, 32)
//	nonce = random(12)
//	blob  = base64(salt ‖ nonce ‖ AES-256-GCM(key, nonce, plaintext) ‖ tag)
//
// The key is derived from scratch for every call and never cached.
type VaultCipher interface {
	// Seal encrypts plaintext under password and returns the base64 blob.
	// Sealing the same plaintext twice never yields the same blob.
	Seal(plaintext, password []byte) (string, error)

	// Open decrypts a blob produced by Seal. Returns [ErrMalformedBlob] when
	// the blob cannot possibly be valid (checked before key derivation) and
	// [ErrAuthentication] when the tag does not verify. No plaintext is
	// returned unless the tag verifies.
	Open(blob string, password []byte) ([]byte, error)
}

// MemoryCipher keeps decrypted secrets sealed while they live in the caller
// process. It uses AES-128-GCM under a random session key:
//
//	blob = base64(nonce ‖ AES-128-GCM(key, nonce, plaintext) ‖ tag)
type MemoryCipher interface {
	// GenerateKey returns a fresh random 16-byte session key.
	GenerateKey() ([]byte, error)

	// Seal encrypts plaintext under a 16-byte session key.
	Seal(plaintext, key []byte) (string, error)

	// Open decrypts a blob produced by Seal under the same key.
	Open(blob string, key []byte) ([]byte, error)
}
