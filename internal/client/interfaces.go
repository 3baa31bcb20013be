// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the lifecycle contract of the vault CLI.
type Client interface {
	// Run executes command with the positional arguments from the config
	// and blocks until it is done.
	Run(ctx context.Context, command string) error

	// Close releases the workspace database.
	Close() error
}

// Prompter reads secrets from the user.
type Prompter interface {
	// ReadPassword prints prompt and reads one line without echo. The caller
	// must wipe the result.
	ReadPassword(prompt string) ([]byte, error)
}
