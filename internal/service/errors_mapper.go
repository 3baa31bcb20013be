// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/session"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/internal/vault"
	"github.com/MKhiriev/go-pass-vault/models"
)

// mapWorkerError translates a runner error into a user-visible service
// error. Authentication failures only mean a wrong password for the
// operations that take one; for string operations they mean a value sealed
// under a key that no longer exists.
func mapWorkerError(op models.OperationKind, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, crypto.ErrAuthentication) && usesVaultPassword(op):
		return ErrInvalidPassword
	case errors.Is(err, vault.ErrSchemaVersionUnsupported):
		return ErrUnsupportedVault
	case errors.Is(err, session.ErrLocked):
		return ErrVaultLocked
	case errors.Is(err, store.ErrVaultFileNotFound):
		return ErrVaultNotFound
	default:
		return ErrOperationFailed
	}
}

func usesVaultPassword(op models.OperationKind) bool {
	return op == models.DecryptDatabase || op == models.EncryptDatabase
}
