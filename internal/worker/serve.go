// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/leaks"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/weak"
	"github.com/MKhiriev/go-pass-vault/models"
)

// MaxRequestSize caps the request a worker will read.
const MaxRequestSize = 256 << 20

// Serve reads exactly one request from in, handles it and writes exactly one
// reply to out. Secrets carried by the request are wiped before returning.
// It returns the reply that was written; the error only reports a failure to
// write it.
func Serve(ctx context.Context, in io.Reader, out io.Writer, router *Router) (models.WorkerReply, error) {
	var req models.WorkerRequest
	defer req.Wipe()

	var reply models.WorkerReply
	if err := json.NewDecoder(io.LimitReader(in, MaxRequestSize)).Decode(&req); err != nil {
		reply = errorReply(req.ID, fmt.Errorf("%w: decode request: %v", ErrInvalidRequest, err))
	} else {
		reply = router.Handle(ctx, &req)
	}

	if err := json.NewEncoder(out).Encode(reply); err != nil {
		return reply, fmt.Errorf("write reply: %w", err)
	}
	return reply, nil
}

// Exit codes of the worker process.
const (
	ExitOK          = 0
	ExitReplyFailed = 1
	ExitNoReply     = 2
)

// Main is the body of the worker process: it builds the router from the
// environment, serves one request from stdin to stdout and returns the
// process exit code. ExitReplyFailed means a reply describing a failure was
// written; ExitNoReply means nothing could be written.
func Main(ctx context.Context, stdin io.Reader, stdout io.Writer) int {
	cfg, err := config.GetWorkerConfig()
	if err != nil {
		return writeStartupFailure(stdout, err)
	}

	log := logger.NewWorkerLogger("worker", cfg.Verbose)

	finder, err := leaks.NewChecker(cfg.Leaks, log)
	if err != nil {
		log.Err(err).Str("func", "worker.Main").Msg("error creating leaks checker")
		return writeStartupFailure(stdout, err)
	}

	router := NewRouter(Deps{
		VaultCipher:  crypto.NewVaultCipher(),
		MemoryCipher: crypto.NewMemoryCipher(),
		Leaks:        finder,
		Scorer:       weak.NewScorer(),
		Logger:       log,
	})

	reply, err := Serve(ctx, stdin, stdout, router)
	if err != nil {
		log.Err(err).Str("func", "worker.Main").Msg("error writing reply")
		return ExitNoReply
	}
	if reply.Failed() {
		return ExitReplyFailed
	}
	return ExitOK
}

func writeStartupFailure(stdout io.Writer, err error) int {
	reply := models.WorkerReply{Error: "worker startup: " + err.Error(), Kind: models.KindInternal}
	if json.NewEncoder(stdout).Encode(reply) != nil {
		return ExitNoReply
	}
	return ExitReplyFailed
}
