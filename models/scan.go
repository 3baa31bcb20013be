// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// LeakCandidate is an entry submitted to the breach lookup. Hash is the
// hex-encoded SHA-1 of the entry password; only its first five characters
// ever leave the process.
type LeakCandidate struct {
	ID   int64  `json:"id"`
	Hash string `json:"hash"`
}

// LeakErrorKind classifies a failed lookup so the category survives the
// trip from the worker back to the caller.
type LeakErrorKind string

const (
	LeakKindTimeout     LeakErrorKind = "timeout"
	LeakKindNetwork     LeakErrorKind = "network"
	LeakKindStatus      LeakErrorKind = "status"
	LeakKindInvalidHash LeakErrorKind = "invalid-hash"
)

// LeakResult is the outcome of a breach lookup for a single entry.
type LeakResult struct {
	ID          int64 `json:"id"`
	Occurrences int   `json:"occurrences"`

	// Error describes why the lookup for this entry failed. Empty on success.
	Error string        `json:"error,omitempty"`
	Kind  LeakErrorKind `json:"kind,omitempty"`

	// Err is the typed failure. It is not encoded; callers on the other side
	// of the worker rebuild it from Kind and Error.
	Err error `json:"-"`
}

// Failed reports whether the lookup for this entry did not complete.
func (r LeakResult) Failed() bool {
	return r.Err != nil || r.Error != "" || r.Kind != ""
}

// WeakCandidate is a decrypted password submitted to strength scoring.
// UserInputs are entry-specific words (title, username) that make a
// password weaker when it contains them.
type WeakCandidate struct {
	ID         int64
	Password   string
	UserInputs []string
}

// WeakResult is the strength score of a single entry, 0 (weakest) to 4.
type WeakResult struct {
	ID    int64 `json:"id"`
	Score int   `json:"score"`
}
