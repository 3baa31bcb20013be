// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session holds the secrets of one unlocked vault: the vault
// password and the ephemeral key that seals passwords in the caller's
// memory. Both live in memguard enclaves and are only decrypted for the
// duration of a single worker request.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/awnumar/memguard"

	"github.com/MKhiriev/go-pass-vault/internal/crypto"
)

var (
	// ErrLocked is returned when the vault password is requested from a
	// locked session.
	ErrLocked = errors.New("session is locked")

	// ErrEmptyPassword is returned when an empty vault password is stored.
	ErrEmptyPassword = errors.New("empty vault password")
)

// Session is the per-vault secret holder. The zero value is not usable;
// construct it with [New].
type Session struct {
	mu       sync.RWMutex
	password *memguard.Enclave
	key      *memguard.Enclave
	lastUsed time.Time

	// saveMu allows at most one outstanding save per vault.
	saveMu sync.Mutex

	now func() time.Time
}

// New returns a locked session with a fresh ephemeral key.
func New() *Session {
	s := &Session{now: time.Now}
	s.key = memguard.NewEnclaveRandom(crypto.MemoryKeySize)
	s.lastUsed = s.now()
	return s
}

// SetPassword stores the vault password and unlocks the session. password is
// wiped.
func (s *Session) SetPassword(password []byte) error {
	if len(password) == 0 {
		return ErrEmptyPassword
	}
	enclave := memguard.NewEnclave(password)

	s.mu.Lock()
	s.password = enclave
	s.lastUsed = s.now()
	s.mu.Unlock()
	return nil
}

// Password returns a copy of the vault password. The caller must wipe it.
func (s *Session) Password() ([]byte, error) {
	s.mu.RLock()
	enclave := s.password
	s.mu.RUnlock()

	if enclave == nil {
		return nil, ErrLocked
	}
	return openCopy(enclave)
}

// MemoryKey returns a copy of the ephemeral key. The caller must wipe it.
// The key is available on a locked session too: sealed values created
// before the lock stay unreadable because the key was regenerated.
func (s *Session) MemoryKey() ([]byte, error) {
	s.mu.RLock()
	enclave := s.key
	s.mu.RUnlock()

	return openCopy(enclave)
}

// Unlocked reports whether a vault password is held.
func (s *Session) Unlocked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.password != nil
}

// Lock forgets the vault password and replaces the ephemeral key. Every
// value sealed under the old key becomes permanently unreadable.
func (s *Session) Lock() {
	key := memguard.NewEnclaveRandom(crypto.MemoryKeySize)

	s.mu.Lock()
	s.password = nil
	s.key = key
	s.mu.Unlock()
}

// WithSave runs fn while holding the save lock of this vault.
func (s *Session) WithSave(fn func() error) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	return fn()
}

// Touch records user activity.
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastUsed = s.now()
	s.mu.Unlock()
}

// IdleFor returns the time since the last recorded activity.
func (s *Session) IdleFor() time.Duration {
	s.mu.RLock()
	last := s.lastUsed
	s.mu.RUnlock()
	return s.now().Sub(last)
}

func openCopy(enclave *memguard.Enclave) ([]byte, error) {
	buf, err := enclave.Open()
	if err != nil {
		return nil, err
	}
	defer buf.Destroy()

	out := make([]byte, buf.Size())
	copy(out, buf.Bytes())
	return out, nil
}
