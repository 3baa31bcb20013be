// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strconv"
)

// ClientConfig is the configuration view used by the vault CLI.
type ClientConfig struct {
	Vault   Vault
	Worker  Worker
	Leaks   Leaks
	Storage Storage
	Session Session

	// Args are the positional arguments of the command.
	Args []string
}

// GetClientConfig builds and validates the CLI config view from flags in
// args, the environment, an optional JSON file and defaults.
func GetClientConfig(name string, args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(name, args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Vault:   cfg.Vault,
		Worker:  cfg.Worker,
		Leaks:   cfg.Leaks,
		Storage: cfg.Storage,
		Session: cfg.Session,
		Args:    cfg.Args,
	}

	return clientCfg, clientCfg.validate()
}

// WorkerEnviron returns the environment entries a worker child process needs
// to rebuild its [WorkerConfig]. Secrets never go through here.
func (cfg *ClientConfig) WorkerEnviron() []string {
	return []string{
		"LEAKS_BASE_URL=" + cfg.Leaks.BaseURL,
		"LEAKS_REQUEST_TIMEOUT=" + cfg.Leaks.RequestTimeout.String(),
		"LEAKS_MAX_CONCURRENT=" + strconv.Itoa(cfg.Leaks.MaxConcurrent),
		"WORKER_VERBOSE=" + strconv.FormatBool(cfg.Worker.Verbose),
	}
}

// WorkerConfig is the configuration view used inside the worker process.
type WorkerConfig struct {
	Leaks   Leaks
	Verbose bool
}

// GetWorkerConfig builds the worker config view from the environment and
// defaults only. The worker never reads flags or files.
func GetWorkerConfig() (*WorkerConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withDefaults().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	workerCfg := &WorkerConfig{
		Leaks:   cfg.Leaks,
		Verbose: cfg.Worker.Verbose,
	}
	return workerCfg, workerCfg.validate()
}

// RangeMockConfig is the configuration view used by cmd/rangemock.
type RangeMockConfig struct {
	Address     string
	FixturePath string
}

// GetRangeMockConfig builds and validates the range server config view.
func GetRangeMockConfig(name string, args []string) (*RangeMockConfig, error) {
	cfg, err := GetStructuredConfig(name, args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	rmCfg := &RangeMockConfig{
		Address:     cfg.RangeMock.Address,
		FixturePath: cfg.RangeMock.FixturePath,
	}
	return rmCfg, rmCfg.validate()
}
