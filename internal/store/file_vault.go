package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
)

const (
	vaultFileMode = 0o600
	vaultDirMode  = 0o700
)

// vaultFileStorage is the local filesystem implementation of
// [VaultFileStorage].
type vaultFileStorage struct {
	logger *logger.Logger
}

// NewVaultFileStorage constructs a new [VaultFileStorage] instance.
func NewVaultFileStorage(log *logger.Logger) VaultFileStorage {
	return &vaultFileStorage{logger: log}
}

func (v *vaultFileStorage) Read(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrVaultFileNotFound, path)
	}
	if err != nil {
		v.logger.Err(err).Str("func", "vaultFileStorage.Read").Str("path", path).Msg("error reading vault file")
		return nil, fmt.Errorf("read vault file: %w", err)
	}
	return data, nil
}

// Write writes data to a temporary file next to path, syncs it and renames
// it over path.
func (v *vaultFileStorage) Write(ctx context.Context, path string, data []byte) (err error) {
	if path == "" {
		return ErrEmptyPath
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, vaultDirMode); err != nil {
		return fmt.Errorf("create vault dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
			v.logger.Err(err).Str("func", "vaultFileStorage.Write").Str("path", path).Msg("error writing vault file")
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmpName, vaultFileMode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func (v *vaultFileStorage) Remove(_ context.Context, path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove vault file: %w", err)
	}
	return nil
}

func (v *vaultFileStorage) Exists(_ context.Context, path string) (bool, error) {
	if path == "" {
		return false, ErrEmptyPath
	}
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat vault file: %w", err)
	}
}
