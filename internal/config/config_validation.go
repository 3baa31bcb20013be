// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"strings"

	"github.com/MKhiriev/go-pass-vault/models"
)

// validate checks the merged [StructuredConfig]. Section-specific checks
// live on the views returned by [GetClientConfig], [GetWorkerConfig] and
// [GetRangeMockConfig], so a binary only fails on settings it uses.
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Vault.SchemaVersion != models.CurrentSchemaVersion || cfg.Vault.RecoveryDir == "" {
		return ErrInvalidVaultConfigs
	}

	if err := cfg.Worker.validate(); err != nil {
		return err
	}

	if err := cfg.Leaks.validate(); err != nil {
		return err
	}

	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Session.IdleTimeout <= 0 || cfg.Session.RecentLimit <= 0 {
		return ErrInvalidSessionConfigs
	}

	return nil
}

func (w Worker) validate() error {
	if w.Mode != WorkerModeProcess && w.Mode != WorkerModeInProcess {
		return ErrInvalidWorkerConfigs
	}
	if w.Timeout <= 0 || w.ScanTimeout <= 0 {
		return ErrInvalidWorkerConfigs
	}
	return nil
}

func (l Leaks) validate() error {
	if l.BaseURL == "" || l.RequestTimeout <= 0 || l.MaxConcurrent < 0 {
		return ErrInvalidLeaksConfigs
	}
	return nil
}

func (cfg *WorkerConfig) validate() error {
	return cfg.Leaks.validate()
}

func (cfg *RangeMockConfig) validate() error {
	if cfg.Address == "" {
		return ErrInvalidRangeMockConfigs
	}
	return nil
}
