package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/session"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/internal/validators"
	"github.com/MKhiriev/go-pass-vault/internal/vault"
	"github.com/MKhiriev/go-pass-vault/internal/worker"
	"github.com/MKhiriev/go-pass-vault/models"
)

// FileExtension is appended to saved vault paths that lack it.
const FileExtension = ".pvault"

// recoveryNameLength is the number of hash characters in a recovery file
// name.
const recoveryNameLength = 16

type vaultService struct {
	runner    worker.Runner
	files     store.VaultFileStorage
	workspace store.WorkspaceRepository
	session   *session.Session
	cfg       config.Vault
	validator validators.Validator
	ids       *utils.UUIDGenerator
	now       func() time.Time
	logger    *logger.Logger
}

// NewVaultService constructs a [VaultService] over one session.
func NewVaultService(
	runner worker.Runner,
	files store.VaultFileStorage,
	workspace store.WorkspaceRepository,
	sess *session.Session,
	cfg config.Vault,
	log *logger.Logger,
) VaultService {
	return &vaultService{
		runner:    runner,
		files:     files,
		workspace: workspace,
		session:   sess,
		cfg:       cfg,
		validator: validators.NewVaultValidator(),
		ids:       utils.NewUUIDGenerator(),
		now:       time.Now,
		logger:    log,
	}
}

// run sends req through the runner with the session key attached.
func (s *vaultService) run(ctx context.Context, req models.WorkerRequest) (models.WorkerReply, error) {
	key, err := s.session.MemoryKey()
	if err != nil {
		return models.WorkerReply{}, fmt.Errorf("open session key: %w", err)
	}
	defer crypto.Wipe(key)

	id, ok := utils.GetOperationIDFromContext(ctx)
	if !ok {
		id = s.ids.Generate()
	}
	req.ID = id
	req.MemoryKey = key
	s.session.Touch()

	reply, err := s.runner.Run(ctx, req)
	if err != nil {
		s.logger.Err(err).
			Str("func", "vaultService.run").
			Str("op", string(req.Type)).
			Msg("worker operation failed")
		return models.WorkerReply{}, mapWorkerError(req.Type, err)
	}
	return reply, nil
}

func (s *vaultService) Open(ctx context.Context, path string, password []byte) (models.Tables, error) {
	if len(password) == 0 {
		return models.Tables{}, ErrEmptyPassword
	}

	raw, err := s.files.Read(ctx, path)
	if errors.Is(err, store.ErrVaultFileNotFound) {
		if rmErr := s.workspace.Remove(ctx, path); rmErr != nil {
			s.logger.Warn().Err(rmErr).Str("func", "vaultService.Open").Msg("failed to forget missing vault")
		}
		return models.Tables{}, ErrVaultNotFound
	}
	if err != nil {
		s.logger.Err(err).Str("func", "vaultService.Open").Msg("failed to read vault file")
		return models.Tables{}, ErrOperationFailed
	}

	pw := bytes.Clone(password)
	defer crypto.Wipe(pw)

	reply, err := s.run(ctx, models.WorkerRequest{
		Type:     models.DecryptDatabase,
		Data:     base64.StdEncoding.EncodeToString(raw),
		Password: models.Secret(pw),
	})
	if err != nil {
		return models.Tables{}, err
	}

	tables, err := decodeSchema(reply.Decrypted)
	if err != nil {
		s.logger.Err(err).Str("func", "vaultService.Open").Msg("failed to decode decrypted vault")
		return models.Tables{}, ErrOperationFailed
	}

	if err := s.session.SetPassword(pw); err != nil {
		return models.Tables{}, ErrOperationFailed
	}
	if err := s.workspace.Touch(ctx, path); err != nil {
		s.logger.Warn().Err(err).Str("func", "vaultService.Open").Msg("failed to record recent vault")
	}

	return tables, nil
}

// encrypt seals tables under password and returns the raw file contents.
func (s *vaultService) encrypt(ctx context.Context, tables models.Tables, password []byte) ([]byte, error) {
	if err := s.validator.Validate(ctx, tables); err != nil {
		s.logger.Warn().Err(err).Str("func", "vaultService.encrypt").Msg("refusing to seal invalid tables")
		return nil, fmt.Errorf("%w: %w", ErrInvalidVaultData, err)
	}

	database, err := json.Marshal(tables)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal tables", ErrOperationFailed)
	}

	reply, err := s.run(ctx, models.WorkerRequest{
		Type:          models.EncryptDatabase,
		Database:      database,
		Password:      models.Secret(password),
		SchemaVersion: s.cfg.SchemaVersion,
	})
	if err != nil {
		return nil, err
	}

	raw, err := base64.StdEncoding.DecodeString(reply.Encrypted)
	if err != nil {
		s.logger.Err(err).Str("func", "vaultService.encrypt").Msg("worker returned invalid blob")
		return nil, ErrOperationFailed
	}
	return raw, nil
}

// sessionPassword returns newPassword when set, the session password
// otherwise. The result is always a copy the caller must wipe.
func (s *vaultService) sessionPassword(newPassword []byte) ([]byte, error) {
	if len(newPassword) > 0 {
		return bytes.Clone(newPassword), nil
	}
	pw, err := s.session.Password()
	if err != nil {
		return nil, mapWorkerError("", err)
	}
	return pw, nil
}

func (s *vaultService) Save(ctx context.Context, path string, tables models.Tables, newPassword []byte) (string, error) {
	path, err := s.savePath(ctx, path)
	if err != nil {
		return "", err
	}

	err = s.session.WithSave(func() error {
		pw, err := s.sessionPassword(newPassword)
		if err != nil {
			return err
		}
		defer crypto.Wipe(pw)

		raw, err := s.encrypt(ctx, tables, pw)
		if err != nil {
			return err
		}
		if err := s.files.Write(ctx, path, raw); err != nil {
			s.logger.Err(err).Str("func", "vaultService.Save").Msg("failed to write vault file")
			return ErrOperationFailed
		}

		if len(newPassword) > 0 {
			if err := s.session.SetPassword(pw); err != nil {
				return ErrOperationFailed
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	if err := s.RemoveRecovery(ctx, path); err != nil {
		s.logger.Warn().Err(err).Str("func", "vaultService.Save").Msg("failed to remove recovery file")
	}
	if err := s.workspace.Touch(ctx, path); err != nil {
		s.logger.Warn().Err(err).Str("func", "vaultService.Save").Msg("failed to record recent vault")
	}
	return path, nil
}

func (s *vaultService) Snapshot(ctx context.Context, path string, tables models.Tables) error {
	pw, err := s.sessionPassword(nil)
	if err != nil {
		return err
	}
	defer crypto.Wipe(pw)

	raw, err := s.encrypt(ctx, tables, pw)
	if err != nil {
		return err
	}
	if err := s.files.Write(ctx, s.RecoveryFile(path), raw); err != nil {
		s.logger.Err(err).Str("func", "vaultService.Snapshot").Msg("failed to write recovery file")
		return ErrOperationFailed
	}
	return nil
}

// RecoveryFile names the recovery copy after a hash of the absolute vault
// path so the path itself does not leak into the recovery directory.
func (s *vaultService) RecoveryFile(path string) string {
	return filepath.Join(s.cfg.RecoveryDir, "~"+utils.ShortHash(store.CanonicalPath(path), recoveryNameLength)+".tmp")
}

func (s *vaultService) Recover(ctx context.Context, path string) (models.Tables, error) {
	raw, err := s.files.Read(ctx, s.RecoveryFile(path))
	if err != nil {
		return models.Tables{}, mapWorkerError("", err)
	}

	pw, err := s.sessionPassword(nil)
	if err != nil {
		return models.Tables{}, err
	}
	defer crypto.Wipe(pw)

	reply, err := s.run(ctx, models.WorkerRequest{
		Type:     models.DecryptDatabase,
		Data:     base64.StdEncoding.EncodeToString(raw),
		Password: models.Secret(pw),
	})
	if err != nil {
		return models.Tables{}, err
	}

	tables, err := decodeSchema(reply.Decrypted)
	if err != nil {
		return models.Tables{}, ErrOperationFailed
	}
	return tables, nil
}

func (s *vaultService) RemoveRecovery(ctx context.Context, path string) error {
	if err := s.files.Remove(ctx, s.RecoveryFile(path)); err != nil {
		return fmt.Errorf("remove recovery file: %w", err)
	}
	return nil
}

func (s *vaultService) EncryptString(ctx context.Context, plain []byte) (string, error) {
	reply, err := s.run(ctx, models.WorkerRequest{
		Type:  models.EncryptString,
		Plain: models.Secret(plain),
	})
	if err != nil {
		return "", err
	}
	return reply.Encrypted, nil
}

func (s *vaultService) DecryptString(ctx context.Context, blob string) ([]byte, error) {
	reply, err := s.run(ctx, models.WorkerRequest{
		Type:      models.DecryptString,
		Encrypted: blob,
	})
	if err != nil {
		return nil, err
	}
	return []byte(reply.Decrypted), nil
}

func (s *vaultService) BulkDecryptStrings(ctx context.Context, blobs []string) ([]string, error) {
	if len(blobs) == 0 {
		return []string{}, nil
	}

	reply, err := s.run(ctx, models.WorkerRequest{
		Type:   models.BulkDecryptString,
		Values: blobs,
	})
	if err != nil {
		return nil, err
	}

	var values []string
	if err := json.Unmarshal([]byte(reply.Data), &values); err != nil || len(values) != len(blobs) {
		s.logger.Error().AnErr("decode", err).Str("func", "vaultService.BulkDecryptStrings").Msg("worker returned invalid values")
		return nil, ErrOperationFailed
	}
	return values, nil
}

func (s *vaultService) Recent(ctx context.Context) ([]models.RecentVault, error) {
	vaults, err := s.workspace.List(ctx)
	if err != nil {
		s.logger.Err(err).Str("func", "vaultService.Recent").Msg("failed to list recent vaults")
		return nil, ErrOperationFailed
	}
	return vaults, nil
}

func (s *vaultService) Lock() {
	s.session.Lock()
	s.logger.Info().Str("func", "vaultService.Lock").Msg("session locked")
}

func decodeSchema(decrypted string) (models.Tables, error) {
	var schema models.VaultSchema
	if err := json.Unmarshal([]byte(decrypted), &schema); err != nil {
		return models.Tables{}, err
	}
	return vault.FromVaultSchema(schema)
}

// savePath returns the file Save writes to. An existing file is rewritten
// in place whatever its name; only a new vault gets [FileExtension].
func (s *vaultService) savePath(ctx context.Context, path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), FileExtension) {
		return path, nil
	}

	exists, err := s.files.Exists(ctx, path)
	if err != nil {
		s.logger.Err(err).Str("func", "vaultService.savePath").Msg("failed to stat vault file")
		return "", ErrOperationFailed
	}
	if exists {
		return path, nil
	}
	return WithExtension(path), nil
}

// WithExtension appends [FileExtension] to path unless it already ends with
// it, compared case-insensitively.
func WithExtension(path string) string {
	if strings.EqualFold(filepath.Ext(path), FileExtension) {
		return path
	}
	return path + FileExtension
}
