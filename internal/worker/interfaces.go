// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package worker

//go:generate mockgen -source=interfaces.go -destination=../mock/runner_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

// Runner performs one worker operation and returns its single reply.
//
// Run never retries. It returns [ErrWorkerTimeout] or [ErrWorkerTransport]
// when no usable reply was received, and a *[ReplyError] when the worker
// replied with an error. On any error the returned reply must be ignored.
type Runner interface {
	Run(ctx context.Context, req models.WorkerRequest) (models.WorkerReply, error)
}
