// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import "github.com/MKhiriev/go-pass-vault/models"

// MapPasswords replaces every non-empty password in entries and history
// snapshots with fn(password). It stops at the first error. Tables are
// modified in place.
func MapPasswords(t *models.Tables, fn func(string) (string, error)) error {
	for i := range t.Entries {
		if err := mapEntry(&t.Entries[i], fn); err != nil {
			return err
		}
	}
	for i := range t.History {
		if err := mapEntry(&t.History[i].Entry, fn); err != nil {
			return err
		}
	}
	return nil
}

func mapEntry(e *models.Entry, fn func(string) (string, error)) error {
	if e.Password == "" {
		return nil
	}
	p, err := fn(e.Password)
	if err != nil {
		return err
	}
	e.Password = p
	return nil
}
