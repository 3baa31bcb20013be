package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-pass-vault/models"
)

// VaultService is the caller side of the vault: it owns the session of the
// open vault and performs every cryptographic operation through the worker.
// Returned errors are generic and safe to show to the user; details are
// logged.
type VaultService interface {
	// Open decrypts the vault file at path with password and unlocks the
	// session. Passwords in the returned tables are sealed under the session
	// key. password is not retained by the caller's slice.
	Open(ctx context.Context, path string, password []byte) (models.Tables, error)

	// Save encrypts tables and atomically replaces the vault file. When
	// newPassword is empty the session password is used; otherwise the vault
	// is re-keyed and the session password replaced. Saves of one vault never
	// overlap. An existing file at path is rewritten in place; a new one gets
	// FileExtension appended when missing. It returns the final file path.
	Save(ctx context.Context, path string, tables models.Tables, newPassword []byte) (string, error)

	// Snapshot writes an encrypted recovery copy of unsaved tables.
	Snapshot(ctx context.Context, path string, tables models.Tables) error

	// RecoveryFile returns the recovery file path for the vault at path.
	RecoveryFile(path string) string

	// Recover decrypts the recovery copy of path with the session password.
	Recover(ctx context.Context, path string) (models.Tables, error)

	// RemoveRecovery deletes the recovery copy of path, if any.
	RemoveRecovery(ctx context.Context, path string) error

	// EncryptString seals plain under the session key.
	EncryptString(ctx context.Context, plain []byte) (string, error)

	// DecryptString opens a value sealed under the session key. The caller
	// must wipe the result.
	DecryptString(ctx context.Context, blob string) ([]byte, error)

	// BulkDecryptStrings opens several values in one worker round trip.
	BulkDecryptStrings(ctx context.Context, blobs []string) ([]string, error)

	// ScanLeaks looks up every entry password in the breach corpus and
	// returns the results with a report ready to be added to the tables.
	ScanLeaks(ctx context.Context, tables models.Tables) ([]models.LeakResult, models.Report, error)

	// ScanWeakPasswords scores every entry password and returns the results
	// with a report ready to be added to the tables.
	ScanWeakPasswords(ctx context.Context, tables models.Tables) ([]models.WeakResult, models.Report, error)

	// Recent returns the recently opened vaults, most recent first.
	Recent(ctx context.Context) ([]models.RecentVault, error)

	// Lock forgets the vault password and rotates the session key.
	Lock()
}

// IdleLockJob locks the session after a period of inactivity.
type IdleLockJob interface {
	// Start launches the background check. A running job is stopped first.
	Start(ctx context.Context, idleTimeout time.Duration)

	// Stop cancels the job and waits for it to exit.
	Stop()
}
