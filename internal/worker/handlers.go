// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/leaks"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/internal/vault"
	"github.com/MKhiriev/go-pass-vault/internal/weak"
	"github.com/MKhiriev/go-pass-vault/models"
)

type handlers struct {
	vault  crypto.VaultCipher
	memory crypto.MemoryCipher
	leaks  leaks.Finder
	scorer weak.Scorer
}

func requireKey(req *models.WorkerRequest) error {
	if len(req.MemoryKey) != crypto.MemoryKeySize {
		return fmt.Errorf("%w: memory key must be %d bytes", ErrInvalidRequest, crypto.MemoryKeySize)
	}
	return nil
}

func requirePassword(req *models.WorkerRequest) error {
	if len(req.Password) == 0 {
		return fmt.Errorf("%w: password is required", ErrInvalidRequest)
	}
	return nil
}

// decryptDatabase opens the vault file payload and hands the document back
// with every password re-sealed under the session key.
func (h *handlers) decryptDatabase(_ context.Context, req *models.WorkerRequest) (models.WorkerReply, error) {
	if err := requireKey(req); err != nil {
		return models.WorkerReply{}, err
	}
	if err := requirePassword(req); err != nil {
		return models.WorkerReply{}, err
	}

	plaintext, err := h.vault.Open(req.Data, req.Password)
	if err != nil {
		return models.WorkerReply{}, fmt.Errorf("open vault: %w", err)
	}
	defer crypto.Wipe(plaintext)

	schema, err := vault.Decode(plaintext)
	if err != nil {
		return models.WorkerReply{}, err
	}

	err = vault.MapPasswords(&schema.Tables, func(p string) (string, error) {
		return h.memory.Seal([]byte(p), req.MemoryKey)
	})
	if err != nil {
		return models.WorkerReply{}, fmt.Errorf("seal passwords: %w", err)
	}

	out, err := json.Marshal(schema)
	if err != nil {
		return models.WorkerReply{}, fmt.Errorf("marshal vault: %w", err)
	}
	return models.WorkerReply{Decrypted: string(out)}, nil
}

// encryptDatabase normalizes the caller's tables, opens every session-sealed
// password and seals the versioned document under the vault password.
func (h *handlers) encryptDatabase(_ context.Context, req *models.WorkerRequest) (models.WorkerReply, error) {
	if err := requireKey(req); err != nil {
		return models.WorkerReply{}, err
	}
	if err := requirePassword(req); err != nil {
		return models.WorkerReply{}, err
	}

	tables, err := vault.ParseTables(req.Database)
	if err != nil {
		return models.WorkerReply{}, err
	}

	err = vault.MapPasswords(&tables, func(p string) (string, error) {
		plain, err := h.memory.Open(p, req.MemoryKey)
		if err != nil {
			return "", err
		}
		return string(plain), nil
	})
	if err != nil {
		return models.WorkerReply{}, fmt.Errorf("open passwords: %w", err)
	}

	version := req.SchemaVersion
	if version == 0 {
		version = models.CurrentSchemaVersion
	}
	schema, err := vault.ToVaultSchema(tables, version)
	if err != nil {
		return models.WorkerReply{}, err
	}
	doc, err := vault.Encode(schema)
	if err != nil {
		return models.WorkerReply{}, err
	}
	defer crypto.Wipe(doc)

	blob, err := h.vault.Seal(doc, req.Password)
	if err != nil {
		return models.WorkerReply{}, fmt.Errorf("seal vault: %w", err)
	}
	return models.WorkerReply{Encrypted: blob}, nil
}

func (h *handlers) encryptString(_ context.Context, req *models.WorkerRequest) (models.WorkerReply, error) {
	if err := requireKey(req); err != nil {
		return models.WorkerReply{}, err
	}

	blob, err := h.memory.Seal(req.Plain, req.MemoryKey)
	if err != nil {
		return models.WorkerReply{}, fmt.Errorf("seal string: %w", err)
	}
	return models.WorkerReply{Encrypted: blob}, nil
}

func (h *handlers) decryptString(_ context.Context, req *models.WorkerRequest) (models.WorkerReply, error) {
	if err := requireKey(req); err != nil {
		return models.WorkerReply{}, err
	}

	plain, err := h.memory.Open(req.Encrypted, req.MemoryKey)
	if err != nil {
		return models.WorkerReply{}, fmt.Errorf("open string: %w", err)
	}
	return models.WorkerReply{Decrypted: string(plain)}, nil
}

// bulkDecryptString opens every value and replies with a JSON array of the
// plaintexts in input order.
func (h *handlers) bulkDecryptString(_ context.Context, req *models.WorkerRequest) (models.WorkerReply, error) {
	if err := requireKey(req); err != nil {
		return models.WorkerReply{}, err
	}

	out := make([]string, len(req.Values))
	for i, v := range req.Values {
		plain, err := h.memory.Open(v, req.MemoryKey)
		if err != nil {
			return models.WorkerReply{}, fmt.Errorf("open value %d: %w", i, err)
		}
		out[i] = string(plain)
	}

	data, err := json.Marshal(out)
	if err != nil {
		return models.WorkerReply{}, fmt.Errorf("marshal values: %w", err)
	}
	return models.WorkerReply{Data: string(data)}, nil
}

// getLeaks hashes every password entry inside the worker and replies with
// the per-entry breach counts.
func (h *handlers) getLeaks(ctx context.Context, req *models.WorkerRequest) (models.WorkerReply, error) {
	entries, err := h.passwordEntries(req)
	if err != nil {
		return models.WorkerReply{}, err
	}

	candidates := make([]models.LeakCandidate, 0, len(entries))
	for _, e := range entries {
		plain, err := h.memory.Open(e.Password, req.MemoryKey)
		if err != nil {
			return models.WorkerReply{}, fmt.Errorf("open password of entry %d: %w", e.ID, err)
		}
		candidates = append(candidates, models.LeakCandidate{ID: e.ID, Hash: utils.SHA1Hex(plain)})
		crypto.Wipe(plain)
	}

	data, err := json.Marshal(h.leaks.FindLeaks(ctx, candidates))
	if err != nil {
		return models.WorkerReply{}, fmt.Errorf("marshal leaks: %w", err)
	}
	return models.WorkerReply{Data: string(data)}, nil
}

// getWeakPasswords scores every password entry inside the worker.
func (h *handlers) getWeakPasswords(_ context.Context, req *models.WorkerRequest) (models.WorkerReply, error) {
	entries, err := h.passwordEntries(req)
	if err != nil {
		return models.WorkerReply{}, err
	}

	candidates := make([]models.WeakCandidate, 0, len(entries))
	for _, e := range entries {
		plain, err := h.memory.Open(e.Password, req.MemoryKey)
		if err != nil {
			return models.WorkerReply{}, fmt.Errorf("open password of entry %d: %w", e.ID, err)
		}
		candidates = append(candidates, models.WeakCandidate{
			ID:         e.ID,
			Password:   string(plain),
			UserInputs: []string{e.Title, e.Username},
		})
		crypto.Wipe(plain)
	}

	data, err := json.Marshal(h.scorer.Score(candidates))
	if err != nil {
		return models.WorkerReply{}, fmt.Errorf("marshal scores: %w", err)
	}
	return models.WorkerReply{Data: string(data)}, nil
}

func (h *handlers) passwordEntries(req *models.WorkerRequest) ([]models.Entry, error) {
	if err := requireKey(req); err != nil {
		return nil, err
	}
	tables, err := vault.ParseTables(req.Database)
	if err != nil {
		return nil, err
	}

	out := make([]models.Entry, 0, len(tables.Entries))
	for _, e := range tables.Entries {
		if e.HasPassword() {
			out = append(out, e)
		}
	}
	return out, nil
}
