// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import "errors"

var (
	// ErrSchemaVersionUnsupported is returned for a vault document whose
	// schemaVersion this build cannot interpret.
	ErrSchemaVersionUnsupported = errors.New("unsupported vault schema version")

	// ErrInvalidDocument is returned when a vault document or row is not
	// valid JSON of the expected shape.
	ErrInvalidDocument = errors.New("invalid vault document")
)
