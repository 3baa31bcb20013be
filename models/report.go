// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ReportType identifies which scan produced a [Report].
type ReportType int

const (
	// ExposedPasswordsReport holds the result of a breach lookup scan.
	ExposedPasswordsReport ReportType = 1

	// WeakPasswordsReport holds the result of a strength scoring scan.
	WeakPasswordsReport ReportType = 2
)

// Report is a persisted scan result. Payload is a JSON array of either
// [LeakResult] or [WeakResult] values depending on Type.
type Report struct {
	ID           int64      `json:"id"`
	Type         ReportType `json:"type"`
	CreationDate time.Time  `json:"creationDate"`
	Payload      string     `json:"payload"`
}
