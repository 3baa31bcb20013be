// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSHA1Hex_KnownVector(t *testing.T) {
	// sha1("password")
	assert.Equal(t, "5BAA61E4C9B93F3F0682250B6CF8331B7EE68FD8", SHA1Hex([]byte("password")))
}

func TestSHA1Hex_LengthAndCase(t *testing.T) {
	h := SHA1Hex([]byte("hunter2"))
	assert.Len(t, h, 40)
	assert.Regexp(t, "^[0-9A-F]{40}$", h)
}

func TestShortHash(t *testing.T) {
	a := ShortHash("/home/alice/vault.pvault", 16)
	b := ShortHash("/home/alice/other.pvault", 16)

	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, ShortHash("/home/alice/vault.pvault", 16))
	assert.Len(t, ShortHash("x", 0), 64)
	assert.Len(t, ShortHash("x", 100), 64)
}
