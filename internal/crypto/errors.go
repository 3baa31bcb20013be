// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrAuthentication is returned when the GCM tag does not verify. It
	// covers both a wrong password and a corrupted or tampered blob; the two
	// are deliberately indistinguishable.
	ErrAuthentication = errors.New("authentication failed")

	// ErrMalformedBlob is returned for input that is not valid base64 or is
	// shorter than header plus tag.
	ErrMalformedBlob = errors.New("malformed cipher blob")

	// ErrInvalidKeySize is returned when a session key is not 16 bytes long.
	ErrInvalidKeySize = errors.New("invalid key size")
)
