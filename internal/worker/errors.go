// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package worker

import (
	"errors"

	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/leaks"
	"github.com/MKhiriev/go-pass-vault/internal/vault"
	"github.com/MKhiriev/go-pass-vault/models"
)

var (
	// ErrWorkerTimeout is returned when no reply arrived within the bound
	// for the operation. The worker has been killed and reaped.
	ErrWorkerTimeout = errors.New("worker timed out")

	// ErrWorkerTransport is returned when the worker could not be started,
	// crashed, or did not produce exactly one well-formed reply.
	ErrWorkerTransport = errors.New("worker transport failure")

	// ErrInvalidRequest is returned for a request that is missing required
	// fields or names an unknown operation.
	ErrInvalidRequest = errors.New("invalid worker request")

	// ErrWorkerInternal is returned when the worker failed for a reason not
	// covered by a more specific kind.
	ErrWorkerInternal = errors.New("worker internal error")
)

// ReplyError is the caller-side form of a failed reply. It unwraps to the
// sentinel error of its kind so callers can use errors.Is across the
// process boundary.
type ReplyError struct {
	Kind    models.ErrorKind
	Message string
}

func (e *ReplyError) Error() string {
	return "worker: " + e.Message
}

// Unwrap returns the sentinel error for the reply kind.
func (e *ReplyError) Unwrap() error {
	switch e.Kind {
	case models.KindAuthentication:
		return crypto.ErrAuthentication
	case models.KindMalformed:
		return crypto.ErrMalformedBlob
	case models.KindSchemaVersion:
		return vault.ErrSchemaVersionUnsupported
	case models.KindInvalidRequest:
		return ErrInvalidRequest
	case models.KindNetwork:
		return leaks.ErrLookupFailed
	default:
		return ErrWorkerInternal
	}
}

// classify maps a handler error to the reply kind and the description sent
// to the caller. Authentication failures get a fixed description that does
// not reveal whether the password or the data was wrong.
func classify(err error) (models.ErrorKind, string) {
	switch {
	case errors.Is(err, crypto.ErrAuthentication):
		return models.KindAuthentication, "cannot decrypt"
	case errors.Is(err, crypto.ErrMalformedBlob):
		return models.KindMalformed, err.Error()
	case errors.Is(err, vault.ErrSchemaVersionUnsupported):
		return models.KindSchemaVersion, err.Error()
	case errors.Is(err, leaks.ErrLookupFailed), errors.Is(err, leaks.ErrLookupTimeout):
		return models.KindNetwork, err.Error()
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, crypto.ErrInvalidKeySize),
		errors.Is(err, vault.ErrInvalidDocument):
		return models.KindInvalidRequest, err.Error()
	default:
		return models.KindInternal, err.Error()
	}
}

// replyErr converts a failed reply into a *ReplyError, or nil on success.
func replyErr(reply models.WorkerReply) error {
	if !reply.Failed() {
		return nil
	}
	return &ReplyError{Kind: reply.Kind, Message: reply.Error}
}
