package store

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

// DefaultRecentLimit is used when the repository is created with a
// non-positive limit.
const DefaultRecentLimit = 10

// workspaceRepository is the SQLite-backed implementation of
// [WorkspaceRepository].
type workspaceRepository struct {
	db     *DB
	limit  int
	now    func() time.Time
	logger *logger.Logger
}

// NewWorkspaceRepository constructs a [WorkspaceRepository] that keeps at
// most limit recent vaults.
func NewWorkspaceRepository(db *DB, limit int, log *logger.Logger) WorkspaceRepository {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return &workspaceRepository{
		db:     db,
		limit:  limit,
		now:    time.Now,
		logger: log,
	}
}

// CanonicalPath returns the absolute, cleaned form of path, so that every
// spelling of one vault file maps to a single recent entry and a single
// recovery file. Paths that cannot be resolved are only cleaned.
func CanonicalPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// Touch upserts path and trims the list in one transaction.
func (r *workspaceRepository) Touch(ctx context.Context, path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	path = CanonicalPath(path)

	touchQuery, touchArgs, err := buildTouchRecentVaultQuery(path, r.now().UnixNano())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}
	trimQuery, trimArgs, err := buildTrimRecentVaultsQuery(r.limit)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Err(err).Str("func", "workspaceRepository.Touch").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err = tx.ExecContext(ctx, touchQuery, touchArgs...); err != nil {
		r.logger.Err(err).Str("func", "workspaceRepository.Touch").Msg("failed to upsert recent vault")
		return fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}
	if _, err = tx.ExecContext(ctx, trimQuery, trimArgs...); err != nil {
		r.logger.Err(err).Str("func", "workspaceRepository.Touch").Msg("failed to trim recent vaults")
		return fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrExecutingQuery, err)
	}
	return nil
}

func (r *workspaceRepository) List(ctx context.Context) ([]models.RecentVault, error) {
	query, args, err := buildListRecentVaultsQuery(r.limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Str("func", "workspaceRepository.List").Msg("failed to query recent vaults")
		return nil, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}
	defer rows.Close()

	vaults := make([]models.RecentVault, 0, r.limit)
	for rows.Next() {
		var (
			v        models.RecentVault
			openedAt int64
		)
		if err := rows.Scan(&v.Path, &openedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrScanningRows, err)
		}
		v.OpenedAt = time.Unix(0, openedAt)
		vaults = append(vaults, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScanningRows, err)
	}
	return vaults, nil
}

func (r *workspaceRepository) Remove(ctx context.Context, path string) error {
	if path == "" {
		return ErrEmptyPath
	}

	query, args, err := buildRemoveRecentVaultQuery(CanonicalPath(path))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "workspaceRepository.Remove").Msg("failed to remove recent vault")
		return fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}
	return nil
}
