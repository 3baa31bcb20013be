// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing message strings of the vault CLI.
//
// Service errors are deliberately generic; Message turns them into the text
// printed to the terminal so every command words the same failure the same
// way.
package app

import (
	"errors"

	"github.com/MKhiriev/go-pass-vault/internal/service"
)

const (
	// MsgInvalidPassword is printed when the vault password does not open
	// the file. It does not say whether the password or the file was wrong.
	MsgInvalidPassword = "invalid password"

	// MsgUnsupportedVault is printed for a vault written by a newer build.
	MsgUnsupportedVault = "this vault was created by a newer version and cannot be opened"

	// MsgVaultNotFound is printed when the vault file does not exist. The
	// path is also dropped from the recent list.
	MsgVaultNotFound = "vault file not found"

	// MsgVaultLocked is printed when an operation needs the vault password
	// but the session was locked.
	MsgVaultLocked = "vault is locked, open it again"

	// MsgEmptyPassword is printed when an empty password is entered.
	MsgEmptyPassword = "password must not be empty"

	// MsgPasswordMismatch is printed when the confirmation differs from the
	// new password.
	MsgPasswordMismatch = "passwords do not match"

	// MsgInvalidVaultData is printed when the tables to save have duplicate
	// ids or dangling references.
	MsgInvalidVaultData = "vault data is inconsistent and was not saved"

	// MsgVaultExists is printed when new would overwrite an existing file.
	MsgVaultExists = "a file already exists at this path"

	// MsgOperationFailed is printed for every other failure. Details are in
	// the log file.
	MsgOperationFailed = "operation failed, see the log for details"

	// MsgUsage is printed for an unknown command or missing arguments.
	MsgUsage = "usage: vault <new|open|add|passwd|recover|scan-leaks|scan-weak|recent|version> [flags] [args]"
)

// Message returns the text shown to the user for err.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrInvalidPassword):
		return MsgInvalidPassword
	case errors.Is(err, service.ErrUnsupportedVault):
		return MsgUnsupportedVault
	case errors.Is(err, service.ErrVaultNotFound):
		return MsgVaultNotFound
	case errors.Is(err, service.ErrVaultLocked):
		return MsgVaultLocked
	case errors.Is(err, service.ErrEmptyPassword):
		return MsgEmptyPassword
	case errors.Is(err, service.ErrInvalidVaultData):
		return MsgInvalidVaultData
	default:
		return MsgOperationFailed
	}
}
