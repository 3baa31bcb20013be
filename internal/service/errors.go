package service

import "errors"

// User-visible errors. They never reveal which part of an operation failed.
var (
	ErrInvalidPassword  = errors.New("invalid password")
	ErrUnsupportedVault = errors.New("unsupported vault file")
	ErrOperationFailed  = errors.New("operation failed")

	ErrVaultNotFound = errors.New("vault file not found")
	ErrVaultLocked   = errors.New("vault is locked")
	ErrEmptyPassword = errors.New("password is empty")

	ErrInvalidVaultData = errors.New("vault data is inconsistent")
)
