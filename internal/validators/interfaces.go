// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks vault data before it is sealed into a file.
//
// The worker normalizes whatever rows the caller exports; validation here
// catches rows that would make the saved vault inconsistent, such as
// duplicate ids or entries pointing at groups that do not exist.
package validators

import "context"

// Validator validates a value, optionally restricted to the named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
