// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

// InProcessRunner is a [Runner] that serves each request in its own
// goroutine with a freshly built router. The request still crosses a JSON
// boundary so the caller never shares memory with the handler. A handler
// that hangs past the timeout cannot be killed; its goroutine is abandoned.
type InProcessRunner struct {
	newRouter   func() *Router
	timeout     time.Duration
	scanTimeout time.Duration
	ids         *utils.UUIDGenerator
	logger      *logger.Logger
}

// NewInProcessRunner constructs an [InProcessRunner]. newRouter is called
// once per request.
func NewInProcessRunner(newRouter func() *Router, timeout, scanTimeout time.Duration, log *logger.Logger) *InProcessRunner {
	return &InProcessRunner{
		newRouter:   newRouter,
		timeout:     timeout,
		scanTimeout: scanTimeout,
		ids:         utils.NewUUIDGenerator(),
		logger:      log,
	}
}

type inProcessResult struct {
	out []byte
	err error
}

// Run implements [Runner].
func (r *InProcessRunner) Run(ctx context.Context, req models.WorkerRequest) (models.WorkerReply, error) {
	if req.ID == "" {
		req.ID = r.ids.Generate()
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return models.WorkerReply{}, fmt.Errorf("%w: marshal request: %v", ErrWorkerTransport, err)
	}

	timeout := timeoutFor(req.Type, r.timeout, r.scanTimeout)
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan inProcessResult, 1)
	go func() {
		defer crypto.Wipe(payload)
		defer func() {
			if rec := recover(); rec != nil {
				done <- inProcessResult{err: fmt.Errorf("worker panicked: %v", rec)}
			}
		}()

		var out bytes.Buffer
		_, err := Serve(runCtx, bytes.NewReader(payload), &out, r.newRouter())
		done <- inProcessResult{out: out.Bytes(), err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return models.WorkerReply{}, fmt.Errorf("%w: %v", ErrWorkerTransport, res.err)
		}
		reply, err := decodeReply(bytes.NewReader(res.out))
		if err != nil {
			return models.WorkerReply{}, fmt.Errorf("%w: %v", ErrWorkerTransport, err)
		}
		return reply, replyErr(reply)
	case <-runCtx.Done():
		if ctx.Err() != nil {
			return models.WorkerReply{}, fmt.Errorf("%w: %w", ErrWorkerTransport, ctx.Err())
		}
		r.logger.Warn().Str("op_id", req.ID).Dur("timeout", timeout).Str("func", "InProcessRunner.Run").Msg("in-process worker timed out")
		return models.WorkerReply{}, fmt.Errorf("%w after %v", ErrWorkerTimeout, timeout)
	}
}
