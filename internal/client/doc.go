// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the vault command-line application.
//
// It wires configuration, the workspace database, the worker runner and the
// vault services into a single process, and runs one command per
// invocation. Every cryptographic operation goes through the worker; the
// client only ever holds passwords sealed under the session key.
package client
