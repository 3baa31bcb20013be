// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package weak scores password strength with the zxcvbn estimator.
package weak

import (
	"github.com/nbutton23/zxcvbn-go"

	"github.com/MKhiriev/go-pass-vault/models"
)

// Score bounds.
const (
	MinScore = 0
	MaxScore = 4

	// WeakThreshold is the highest score still reported as weak.
	WeakThreshold = 2
)

// maxScoredLength caps the input handed to the estimator. zxcvbn's matching
// is superlinear in input length and anything this long is strong anyway.
const maxScoredLength = 256

// Scorer rates candidate passwords from 0 (weakest) to 4 (strongest).
type Scorer interface {
	Score(candidates []models.WeakCandidate) []models.WeakResult
}

type scorer struct{}

// NewScorer constructs a [Scorer].
func NewScorer() Scorer {
	return scorer{}
}

// Score implements [Scorer]. Results follow input order.
func (scorer) Score(candidates []models.WeakCandidate) []models.WeakResult {
	results := make([]models.WeakResult, len(candidates))
	for i, c := range candidates {
		results[i] = models.WeakResult{ID: c.ID, Score: score(c.Password, c.UserInputs)}
	}
	return results
}

func score(password string, userInputs []string) int {
	if password == "" {
		return MinScore
	}
	if len(password) > maxScoredLength {
		return MaxScore
	}

	inputs := make([]string, 0, len(userInputs))
	for _, in := range userInputs {
		if in != "" {
			inputs = append(inputs, in)
		}
	}

	s := zxcvbn.PasswordStrength(password, inputs).Score
	return min(max(s, MinScore), MaxScore)
}

// IsWeak reports whether a score counts as weak in reports.
func IsWeak(score int) bool {
	return score <= WeakThreshold
}
