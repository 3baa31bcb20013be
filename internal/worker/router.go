// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package worker

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/leaks"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/weak"
	"github.com/MKhiriev/go-pass-vault/models"
)

// HandlerFunc performs one operation kind. Handlers keep no state between
// calls.
type HandlerFunc func(ctx context.Context, req *models.WorkerRequest) (models.WorkerReply, error)

// Router dispatches a request to the handler registered for its type.
type Router struct {
	routes map[models.OperationKind]HandlerFunc
	logger *logger.Logger
}

// Deps are the leaf components the handlers work with.
type Deps struct {
	VaultCipher  crypto.VaultCipher
	MemoryCipher crypto.MemoryCipher
	Leaks        leaks.Finder
	Scorer       weak.Scorer
	Logger       *logger.Logger
}

// NewRouter builds the routing table over deps.
func NewRouter(deps Deps) *Router {
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	h := &handlers{
		vault:  deps.VaultCipher,
		memory: deps.MemoryCipher,
		leaks:  deps.Leaks,
		scorer: deps.Scorer,
	}

	return &Router{
		routes: map[models.OperationKind]HandlerFunc{
			models.DecryptDatabase:   h.decryptDatabase,
			models.EncryptDatabase:   h.encryptDatabase,
			models.EncryptString:     h.encryptString,
			models.DecryptString:     h.decryptString,
			models.BulkDecryptString: h.bulkDecryptString,
			models.GetLeaks:          h.getLeaks,
			models.GetWeakPasswords:  h.getWeakPasswords,
		},
		logger: deps.Logger,
	}
}

// Handle runs the handler for req and always returns exactly one reply.
// Errors and panics are converted into the {error, kind} reply shape.
func (r *Router) Handle(ctx context.Context, req *models.WorkerRequest) (reply models.WorkerReply) {
	log := r.logger.With().Str("op_id", req.ID).Str("op", string(req.Type)).Logger()

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Str("func", "Router.Handle").Interface("panic", rec).Msg("handler panicked")
			reply = models.WorkerReply{ID: req.ID, Error: "internal error", Kind: models.KindInternal}
		}
	}()

	handler, ok := r.routes[req.Type]
	if !ok {
		return errorReply(req.ID, fmt.Errorf("%w: unknown operation %q", ErrInvalidRequest, req.Type))
	}

	reply, err := handler(ctx, req)
	if err != nil {
		log.Warn().Err(err).Str("func", "Router.Handle").Msg("operation failed")
		return errorReply(req.ID, err)
	}

	log.Debug().Str("func", "Router.Handle").Msg("operation completed")
	reply.ID = req.ID
	return reply
}

func errorReply(id string, err error) models.WorkerReply {
	kind, msg := classify(err)
	return models.WorkerReply{ID: id, Error: msg, Kind: kind}
}
