package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidVaultConfigs indicates an unsupported schema version or an
	// empty recovery directory.
	ErrInvalidVaultConfigs = errors.New("invalid vault configuration")
	// ErrInvalidWorkerConfigs indicates an unknown worker mode or a
	// non-positive reply timeout.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidLeaksConfigs indicates a missing range endpoint or a
	// non-positive request timeout.
	ErrInvalidLeaksConfigs = errors.New("invalid leaks configuration")
	// ErrInvalidStorageConfigs indicates an empty or in-memory DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidSessionConfigs indicates a non-positive idle timeout or
	// recent files limit.
	ErrInvalidSessionConfigs = errors.New("invalid session configuration")
	// ErrInvalidRangeMockConfigs indicates an empty listen address.
	ErrInvalidRangeMockConfigs = errors.New("invalid range mock configuration")
)
