// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package worker

import (
	"fmt"
	"os"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/leaks"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/weak"
)

// Command is the subcommand that turns the vault binary into a worker.
const Command = "worker"

// NewRunner builds the [Runner] selected by cfg.Worker.Mode.
func NewRunner(cfg *config.ClientConfig, log *logger.Logger) (Runner, error) {
	switch cfg.Worker.Mode {
	case config.WorkerModeProcess:
		binary := cfg.Worker.BinaryPath
		if binary == "" {
			self, err := os.Executable()
			if err != nil {
				return nil, fmt.Errorf("resolve worker binary: %w", err)
			}
			binary = self
		}
		return NewProcessRunner(ProcessConfig{
			Binary:      binary,
			Args:        []string{Command},
			Env:         cfg.WorkerEnviron(),
			Timeout:     cfg.Worker.Timeout,
			ScanTimeout: cfg.Worker.ScanTimeout,
		}, log), nil

	case config.WorkerModeInProcess:
		finder, err := leaks.NewChecker(cfg.Leaks, log)
		if err != nil {
			return nil, fmt.Errorf("create leaks checker: %w", err)
		}
		newRouter := func() *Router {
			return NewRouter(Deps{
				VaultCipher:  crypto.NewVaultCipher(),
				MemoryCipher: crypto.NewMemoryCipher(),
				Leaks:        finder,
				Scorer:       weak.NewScorer(),
				Logger:       log,
			})
		}
		return NewInProcessRunner(newRouter, cfg.Worker.Timeout, cfg.Worker.ScanTimeout, log), nil

	default:
		return nil, fmt.Errorf("%w: unknown worker mode %q", config.ErrInvalidWorkerConfigs, cfg.Worker.Mode)
	}
}
