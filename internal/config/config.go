// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Worker execution modes.
const (
	// WorkerModeProcess runs every operation in a fresh child process.
	WorkerModeProcess = "process"

	// WorkerModeInProcess runs every operation in an isolated goroutine of
	// the calling process. Intended for debugging only.
	WorkerModeInProcess = "inprocess"
)

// StructuredConfig is the top-level configuration container. It aggregates
// all sub-configurations and is populated by merging values from flags,
// environment variables, an optional JSON file and defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Vault holds settings for the vault file format and recovery files.
	Vault Vault `envPrefix:"VAULT_"`

	// Worker holds settings for the crypto worker process.
	Worker Worker `envPrefix:"WORKER_"`

	// Leaks holds settings for the breach range lookup.
	Leaks Leaks `envPrefix:"LEAKS_"`

	// Storage holds the workspace database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Session holds settings for unlocked vault sessions.
	Session Session `envPrefix:"SESSION_"`

	// RangeMock holds settings for the development range server.
	RangeMock RangeMock `envPrefix:"RANGEMOCK_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`

	// Args are the positional command-line arguments left after flags.
	Args []string
}

// Vault holds vault file settings.
type Vault struct {
	// SchemaVersion is the vault schema version written on save.
	// Env: VAULT_SCHEMA_VERSION
	SchemaVersion int `env:"SCHEMA_VERSION"`

	// RecoveryDir is the directory that receives encrypted recovery
	// snapshots of unsaved changes.
	// Env: VAULT_RECOVERY_DIR
	RecoveryDir string `env:"RECOVERY_DIR"`
}

// Worker holds crypto worker settings.
type Worker struct {
	// BinaryPath is the executable started for every operation. Empty means
	// the running executable itself.
	// Env: WORKER_BINARY
	BinaryPath string `env:"BINARY"`

	// Mode is either "process" or "inprocess".
	// Env: WORKER_MODE
	Mode string `env:"MODE"`

	// Timeout bounds the wait for a reply to any non-scan operation.
	// Env: WORKER_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`

	// ScanTimeout bounds the wait for a breach scan reply. It must exceed
	// Leaks.RequestTimeout.
	// Env: WORKER_SCAN_TIMEOUT
	ScanTimeout time.Duration `env:"SCAN_TIMEOUT"`

	// Verbose enables debug logging inside the worker process.
	// Env: WORKER_VERBOSE
	Verbose bool `env:"VERBOSE"`
}

// Leaks holds breach range lookup settings.
type Leaks struct {
	// BaseURL is the range endpoint; the hash prefix is appended as the
	// last path segment.
	// Env: LEAKS_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout bounds every single range request.
	// Env: LEAKS_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// MaxConcurrent caps in-flight range requests. Zero, the default, means
	// one goroutine per entry so a stalled service costs one RequestTimeout
	// per scan. A cap makes hanging lookups run in waves, and the scan must
	// then fit ceil(entries/cap) timeouts into Worker.ScanTimeout.
	// Env: LEAKS_MAX_CONCURRENT
	MaxConcurrent int `env:"MAX_CONCURRENT"`
}

// Storage groups the configuration for storage backends.
type Storage struct {
	// DB holds the workspace database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the workspace database.
type DB struct {
	// DSN is the SQLite database file path.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Session holds unlocked session settings.
type Session struct {
	// IdleTimeout locks the session after this much inactivity.
	// Env: SESSION_IDLE_TIMEOUT
	IdleTimeout time.Duration `env:"IDLE_TIMEOUT"`

	// RecentLimit caps the number of remembered vault files.
	// Env: SESSION_RECENT_LIMIT
	RecentLimit int `env:"RECENT_LIMIT"`
}

// RangeMock holds settings for cmd/rangemock.
type RangeMock struct {
	// Address is the listen address in host:port form.
	// Env: RANGEMOCK_ADDRESS
	Address string `env:"ADDRESS"`

	// FixturePath is an optional file of "<40 hex sha1>:<count>" lines
	// served instead of the built-in fixture.
	// Env: RANGEMOCK_FIXTURE
	FixturePath string `env:"FIXTURE"`
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all available sources. args are the command-line arguments without the
// program name.
func GetStructuredConfig(name string, args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags(name, args).
		withEnv().
		withJSON().
		withDefaults().
		build()
}
