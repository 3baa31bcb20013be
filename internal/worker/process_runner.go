// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

// waitDelay bounds how long Wait keeps draining pipes after the worker was
// killed.
const waitDelay = 2 * time.Second

// ProcessConfig describes how to start a worker process.
type ProcessConfig struct {
	// Binary is the executable to start. Usually the running executable.
	Binary string

	// Args are passed to Binary, e.g. ["worker"].
	Args []string

	// Env is appended to the parent environment. It must never carry
	// secrets; those travel over stdin only.
	Env []string

	// Timeout bounds every operation except scans.
	Timeout time.Duration

	// ScanTimeout bounds get-leaks and get-weak-passwords.
	ScanTimeout time.Duration
}

// ProcessRunner is a [Runner] that starts a fresh worker process for every
// request.
type ProcessRunner struct {
	cfg    ProcessConfig
	ids    *utils.UUIDGenerator
	logger *logger.Logger
}

// NewProcessRunner constructs a [ProcessRunner].
func NewProcessRunner(cfg ProcessConfig, log *logger.Logger) *ProcessRunner {
	return &ProcessRunner{cfg: cfg, ids: utils.NewUUIDGenerator(), logger: log}
}

// Run implements [Runner]. The request is written to the worker's stdin and
// the single reply is read from its stdout. When the bound for the
// operation elapses or ctx is cancelled the worker is killed and reaped.
func (p *ProcessRunner) Run(ctx context.Context, req models.WorkerRequest) (models.WorkerReply, error) {
	if req.ID == "" {
		req.ID = p.ids.Generate()
	}
	log := p.logger.With().Str("op_id", req.ID).Str("op", string(req.Type)).Logger()

	payload, err := json.Marshal(req)
	if err != nil {
		return models.WorkerReply{}, fmt.Errorf("%w: marshal request: %v", ErrWorkerTransport, err)
	}
	defer crypto.Wipe(payload)

	timeout := timeoutFor(req.Type, p.cfg.Timeout, p.cfg.ScanTimeout)
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout bytes.Buffer
	cmd := exec.CommandContext(runCtx, p.cfg.Binary, p.cfg.Args...)
	cmd.Env = append(os.Environ(), p.cfg.Env...)
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = &stdout
	cmd.Stderr = p.logger.Writer("worker")
	cmd.WaitDelay = waitDelay

	started := time.Now()
	runErr := cmd.Run()

	if runCtx.Err() != nil {
		if ctx.Err() != nil {
			log.Warn().Str("func", "ProcessRunner.Run").Msg("worker abandoned by caller")
			return models.WorkerReply{}, fmt.Errorf("%w: %w", ErrWorkerTransport, ctx.Err())
		}
		log.Warn().Dur("timeout", timeout).Str("func", "ProcessRunner.Run").Msg("worker timed out")
		return models.WorkerReply{}, fmt.Errorf("%w after %v", ErrWorkerTimeout, timeout)
	}

	reply, decodeErr := decodeReply(&stdout)
	if decodeErr != nil {
		log.Error().Err(decodeErr).AnErr("exit", runErr).Str("func", "ProcessRunner.Run").Msg("worker produced no usable reply")
		return models.WorkerReply{}, fmt.Errorf("%w: %v (exit: %v)", ErrWorkerTransport, decodeErr, runErr)
	}

	log.Debug().Dur("elapsed", time.Since(started)).Bool("failed", reply.Failed()).Str("func", "ProcessRunner.Run").Msg("worker replied")
	return reply, replyErr(reply)
}

// decodeReply reads exactly one reply. Empty output or trailing data count
// as a protocol violation.
func decodeReply(r io.Reader) (models.WorkerReply, error) {
	dec := json.NewDecoder(r)

	var reply models.WorkerReply
	if err := dec.Decode(&reply); err != nil {
		if errors.Is(err, io.EOF) {
			return models.WorkerReply{}, errors.New("no reply")
		}
		return models.WorkerReply{}, fmt.Errorf("decode reply: %w", err)
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return models.WorkerReply{}, errors.New("more than one reply")
	}
	return reply, nil
}

func timeoutFor(kind models.OperationKind, timeout, scanTimeout time.Duration) time.Duration {
	switch kind {
	case models.GetLeaks, models.GetWeakPasswords:
		return scanTimeout
	default:
		return timeout
	}
}
