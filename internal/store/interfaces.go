package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

// VaultFileStorage reads and writes encrypted vault files. Contents are
// opaque ciphertext; the storage never inspects them.
type VaultFileStorage interface {
	// Read returns the file contents or [ErrVaultFileNotFound].
	Read(ctx context.Context, path string) ([]byte, error)

	// Write replaces the file atomically: readers see either the old or the
	// new contents, never a partial write.
	Write(ctx context.Context, path string, data []byte) error

	// Remove deletes the file. A missing file is not an error.
	Remove(ctx context.Context, path string) error

	// Exists reports whether the file is present.
	Exists(ctx context.Context, path string) (bool, error)
}

// WorkspaceRepository remembers recently opened vault files.
type WorkspaceRepository interface {
	// Touch marks path as opened now. Only the most recent entries up to the
	// configured limit are kept.
	Touch(ctx context.Context, path string) error

	// List returns the remembered vaults, most recent first.
	List(ctx context.Context) ([]models.RecentVault, error)

	// Remove forgets path.
	Remove(ctx context.Context, path string) error
}
