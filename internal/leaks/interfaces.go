// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package leaks

//go:generate mockgen -source=interfaces.go -destination=../mock/leaks_finder_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

// Finder looks up how often each candidate's password appears in a breach
// corpus.
type Finder interface {
	// FindLeaks returns one result per candidate, in input order. A failed
	// lookup only affects its own result; the error is carried on the result
	// and never aborts the batch.
	FindLeaks(ctx context.Context, candidates []models.LeakCandidate) []models.LeakResult
}
