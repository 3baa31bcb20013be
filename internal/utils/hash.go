package utils

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SHA1Hex returns the uppercase hex SHA-1 digest of data, the form used by
// breach range services. SHA-1 is used for lookup only, never for
// protection.
func SHA1Hex(data []byte) string {
	sum := sha1.Sum(data)
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// ShortHash returns the first n hex characters of the SHA-256 digest of s.
// Used to derive stable, non-reversible file names from paths.
func ShortHash(s string, n int) string {
	sum := sha256.Sum256([]byte(s))
	h := hex.EncodeToString(sum[:])
	if n <= 0 || n > len(h) {
		return h
	}
	return h[:n]
}
