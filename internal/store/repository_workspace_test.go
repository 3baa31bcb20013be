package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
)

func newTestWorkspaceRepo(t *testing.T, limit int) *workspaceRepository {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "state", "workspace.db")
	db, err := NewConnectSQLite(context.Background(), config.DB{DSN: dsn}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewWorkspaceRepository(db, limit, logger.Nop()).(*workspaceRepository)

	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return repo
}

func TestWorkspaceRepository_TouchAndList(t *testing.T) {
	repo := newTestWorkspaceRepo(t, 10)
	ctx := context.Background()

	require.NoError(t, repo.Touch(ctx, "/vaults/a.pvault"))
	require.NoError(t, repo.Touch(ctx, "/vaults/b.pvault"))
	require.NoError(t, repo.Touch(ctx, "/vaults/a.pvault"))

	vaults, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, vaults, 2)
	assert.Equal(t, "/vaults/a.pvault", vaults[0].Path)
	assert.Equal(t, "/vaults/b.pvault", vaults[1].Path)
	assert.True(t, vaults[0].OpenedAt.After(vaults[1].OpenedAt))
}

func TestWorkspaceRepository_Limit(t *testing.T) {
	repo := newTestWorkspaceRepo(t, 3)
	ctx := context.Background()

	for _, p := range []string{"/1", "/2", "/3", "/4", "/5"} {
		require.NoError(t, repo.Touch(ctx, p))
	}

	vaults, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, vaults, 3)
	assert.Equal(t, "/5", vaults[0].Path)
	assert.Equal(t, "/3", vaults[2].Path)

	var total int
	require.NoError(t, repo.db.QueryRow(`SELECT COUNT(*) FROM recent_vaults`).Scan(&total))
	assert.Equal(t, 3, total)
}

func TestWorkspaceRepository_Remove(t *testing.T) {
	repo := newTestWorkspaceRepo(t, 10)
	ctx := context.Background()

	require.NoError(t, repo.Touch(ctx, "/vaults/a.pvault"))
	require.NoError(t, repo.Touch(ctx, "/vaults/b.pvault"))
	require.NoError(t, repo.Remove(ctx, "/vaults/a.pvault"))
	require.NoError(t, repo.Remove(ctx, "/vaults/never-seen.pvault"))

	vaults, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, vaults, 1)
	assert.Equal(t, "/vaults/b.pvault", vaults[0].Path)
}

// TestWorkspaceRepository_RelativePaths checks that different spellings of
// one file share a single recent entry stored under the absolute path.
func TestWorkspaceRepository_RelativePaths(t *testing.T) {
	repo := newTestWorkspaceRepo(t, 10)
	ctx := context.Background()

	wd, err := os.Getwd()
	require.NoError(t, err)
	abs := filepath.Join(wd, "v.pvault")

	require.NoError(t, repo.Touch(ctx, "./v.pvault"))
	require.NoError(t, repo.Touch(ctx, "v.pvault"))
	require.NoError(t, repo.Touch(ctx, "sub/../v.pvault"))

	vaults, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, vaults, 1)
	assert.Equal(t, abs, vaults[0].Path)

	require.NoError(t, repo.Remove(ctx, "./v.pvault"))
	vaults, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, vaults)
}

func TestWorkspaceRepository_EmptyPath(t *testing.T) {
	repo := newTestWorkspaceRepo(t, 10)
	assert.ErrorIs(t, repo.Touch(context.Background(), ""), ErrEmptyPath)
	assert.ErrorIs(t, repo.Remove(context.Background(), ""), ErrEmptyPath)
}

func TestCanonicalPath(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, "/vaults/a.pvault", CanonicalPath("/vaults/./x/../a.pvault"))
	assert.Equal(t, filepath.Join(wd, "a.pvault"), CanonicalPath("a.pvault"))
	assert.Equal(t, CanonicalPath("./a.pvault"), CanonicalPath("a.pvault"))
}

func TestNewWorkspaceRepository_DefaultLimit(t *testing.T) {
	repo := NewWorkspaceRepository(&DB{}, 0, logger.Nop()).(*workspaceRepository)
	assert.Equal(t, DefaultRecentLimit, repo.limit)
}

func newMockWorkspaceRepo(t *testing.T) (*workspaceRepository, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	l := logger.Nop()
	repo := NewWorkspaceRepository(&DB{DB: conn, logger: l}, 10, l).(*workspaceRepository)
	return repo, mock
}

func TestWorkspaceRepository_TouchRollsBackOnError(t *testing.T) {
	repo, mock := newMockWorkspaceRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO recent_vaults").
		WithArgs("/vaults/a.pvault", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("DELETE FROM recent_vaults").
		WithArgs(10).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.Touch(context.Background(), "/vaults/a.pvault")
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceRepository_ListQueryError(t *testing.T) {
	repo, mock := newMockWorkspaceRepo(t)

	mock.ExpectQuery("SELECT path, opened_at FROM recent_vaults").
		WillReturnError(assert.AnError)

	_, err := repo.List(context.Background())
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceRepository_ListScanError(t *testing.T) {
	repo, mock := newMockWorkspaceRepo(t)

	mock.ExpectQuery("SELECT path, opened_at FROM recent_vaults").
		WillReturnRows(sqlmock.NewRows([]string{"path", "opened_at"}).AddRow("a", "not a number"))

	_, err := repo.List(context.Background())
	assert.ErrorIs(t, err, ErrScanningRows)
}

func TestWorkspaceRepository_RemoveError(t *testing.T) {
	repo, mock := newMockWorkspaceRepo(t)

	mock.ExpectExec("DELETE FROM recent_vaults WHERE path").
		WithArgs("/vaults/a.pvault").
		WillReturnError(assert.AnError)

	assert.ErrorIs(t, repo.Remove(context.Background(), "/vaults/a.pvault"), ErrExecutingQuery)
}
