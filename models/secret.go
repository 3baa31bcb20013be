// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// Secret is sensitive text (a password or a decrypted value) that travels
// inside worker messages. It is encoded as a plain JSON string but kept as a
// byte slice in memory so it can be wiped once the operation is done.
type Secret []byte

// MarshalJSON encodes the secret as a JSON string.
func (s Secret) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// UnmarshalJSON decodes a JSON string into the secret.
func (s *Secret) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*s = Secret(v)
	return nil
}

// Wipe overwrites the secret with zeros.
func (s Secret) Wipe() {
	for i := range s {
		s[i] = 0
	}
}
