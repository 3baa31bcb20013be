// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package leaks

import (
	"errors"

	"github.com/MKhiriev/go-pass-vault/models"
)

var (
	// ErrLookupTimeout is returned for an entry whose range request did not
	// complete within the per-request timeout.
	ErrLookupTimeout = errors.New("range lookup timed out")

	// ErrLookupFailed is returned for an entry whose range request failed at
	// the network level or was cancelled.
	ErrLookupFailed = errors.New("range lookup failed")

	// ErrUnexpectedStatus is returned when the range service answers with a
	// non-200 status.
	ErrUnexpectedStatus = errors.New("unexpected range service status")

	// ErrInvalidHash is returned for a candidate whose hash is not 40 hex
	// characters.
	ErrInvalidHash = errors.New("invalid sha1 hash")
)

func kindOf(err error) models.LeakErrorKind {
	switch {
	case errors.Is(err, ErrLookupTimeout):
		return models.LeakKindTimeout
	case errors.Is(err, ErrUnexpectedStatus):
		return models.LeakKindStatus
	case errors.Is(err, ErrInvalidHash):
		return models.LeakKindInvalidHash
	default:
		return models.LeakKindNetwork
	}
}

// resultError is a lookup failure rebuilt from a decoded [models.LeakResult].
type resultError struct {
	sentinel error
	message  string
}

func (e *resultError) Error() string { return e.message }

func (e *resultError) Unwrap() error { return e.sentinel }

// ResultError returns the typed failure of r, or nil when the lookup
// succeeded. It restores Err for results decoded from a worker reply, so
// callers can match them with errors.Is against the package sentinels.
// Unknown kinds are reported as [ErrLookupFailed].
func ResultError(r models.LeakResult) error {
	if r.Err != nil {
		return r.Err
	}
	if !r.Failed() {
		return nil
	}

	sentinel := ErrLookupFailed
	switch r.Kind {
	case models.LeakKindTimeout:
		sentinel = ErrLookupTimeout
	case models.LeakKindStatus:
		sentinel = ErrUnexpectedStatus
	case models.LeakKindInvalidHash:
		sentinel = ErrInvalidHash
	}

	message := r.Error
	if message == "" {
		message = sentinel.Error()
	}
	return &resultError{sentinel: sentinel, message: message}
}
