// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/MKhiriev/go-pass-vault/models"
)

// Default values applied when no other source sets a field.
const (
	DefaultLeaksBaseURL        = "https://api.pwnedpasswords.com/range"
	DefaultLeaksRequestTimeout = 30 * time.Second
	DefaultLeaksMaxConcurrent  = 0
	DefaultWorkerTimeout       = 30 * time.Second
	DefaultWorkerScanTimeout   = 5 * time.Minute
	DefaultIdleTimeout         = 10 * time.Minute
	DefaultRecentLimit         = 10
	DefaultRangeMockAddress    = "localhost:8089"

	appDirName = "go-pass-vault"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Vault: Vault{
			SchemaVersion: models.CurrentSchemaVersion,
			RecoveryDir:   filepath.Join(os.TempDir(), appDirName),
		},
		Worker: Worker{
			Mode:        WorkerModeProcess,
			Timeout:     DefaultWorkerTimeout,
			ScanTimeout: DefaultWorkerScanTimeout,
		},
		Leaks: Leaks{
			BaseURL:        DefaultLeaksBaseURL,
			RequestTimeout: DefaultLeaksRequestTimeout,
			MaxConcurrent:  DefaultLeaksMaxConcurrent,
		},
		Storage: Storage{
			DB: DB{DSN: defaultDSN()},
		},
		Session: Session{
			IdleTimeout: DefaultIdleTimeout,
			RecentLimit: DefaultRecentLimit,
		},
		RangeMock: RangeMock{
			Address: DefaultRangeMockAddress,
		},
	}
}

func defaultDSN() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, appDirName, "workspace.db")
}
