package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/leaks"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/mock"
	"github.com/MKhiriev/go-pass-vault/internal/session"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/internal/validators"
	"github.com/MKhiriev/go-pass-vault/internal/weak"
	"github.com/MKhiriev/go-pass-vault/internal/worker"
	"github.com/MKhiriev/go-pass-vault/models"
)

type vaultFixture struct {
	svc       *vaultService
	session   *session.Session
	workspace *mock.MockWorkspaceRepository
	finder    *mock.MockFinder
	dir       string
}

func newVaultFixture(t *testing.T) *vaultFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	finder := mock.NewMockFinder(ctrl)
	workspace := mock.NewMockWorkspaceRepository(ctrl)
	dir := t.TempDir()

	newRouter := func() *worker.Router {
		return worker.NewRouter(worker.Deps{
			VaultCipher:  crypto.NewVaultCipher(),
			MemoryCipher: crypto.NewMemoryCipher(),
			Leaks:        finder,
			Scorer:       weak.NewScorer(),
		})
	}
	runner := worker.NewInProcessRunner(newRouter, time.Minute, time.Minute, logger.Nop())
	sess := session.New()

	svc := NewVaultService(
		runner,
		store.NewVaultFileStorage(logger.Nop()),
		workspace,
		sess,
		config.Vault{SchemaVersion: models.CurrentSchemaVersion, RecoveryDir: filepath.Join(dir, "recovery")},
		logger.Nop(),
	).(*vaultService)

	return &vaultFixture{svc: svc, session: sess, workspace: workspace, finder: finder, dir: dir}
}

// tables returns a vault with two password entries sealed under the current
// session key and one card.
func (f *vaultFixture) tables(t *testing.T) models.Tables {
	t.Helper()
	ctx := context.Background()

	weakPw, err := f.svc.EncryptString(ctx, []byte("hunter2"))
	require.NoError(t, err)
	strongPw, err := f.svc.EncryptString(ctx, []byte("x7#Qp!2vLm@9Zr$Tk4&Wn"))
	require.NoError(t, err)

	return models.Tables{
		Entries: []models.Entry{
			{ID: 1, GroupID: 1, Type: models.PasswordEntry, Title: "mail", Username: "loki", Password: weakPw},
			{ID: 2, GroupID: 1, Type: models.CardEntry, Title: "visa", Number: "4111111111111111"},
			{ID: 3, GroupID: 1, Type: models.PasswordEntry, Title: "bank", Username: "thor", Password: strongPw},
		},
		Groups: []models.Group{{ID: 1, Name: "Root"}},
	}
}

func (f *vaultFixture) decrypt(t *testing.T, blob string) string {
	t.Helper()
	plain, err := f.svc.DecryptString(context.Background(), blob)
	require.NoError(t, err)
	return string(plain)
}

func TestVaultService_SaveThenOpen(t *testing.T) {
	f := newVaultFixture(t)
	ctx := context.Background()
	f.workspace.EXPECT().Touch(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	path, err := f.svc.Save(ctx, filepath.Join(f.dir, "vault"), f.tables(t), []byte("master"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.dir, "vault.pvault"), path)
	assert.True(t, f.session.Unlocked())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	f.svc.Lock()
	assert.False(t, f.session.Unlocked())

	password := []byte("master")
	tables, err := f.svc.Open(ctx, path, password)
	require.NoError(t, err)
	assert.Equal(t, []byte("master"), password, "caller's password must be left intact")

	require.Len(t, tables.Entries, 3)
	assert.Equal(t, "hunter2", f.decrypt(t, tables.Entries[0].Password))
	assert.Equal(t, "x7#Qp!2vLm@9Zr$Tk4&Wn", f.decrypt(t, tables.Entries[2].Password))
	assert.Equal(t, "4111111111111111", tables.Entries[1].Number)
	assert.Equal(t, "Root", tables.Groups[0].Name)
	assert.NotNil(t, tables.Reports)
}

func TestVaultService_SaveKeepsExtension(t *testing.T) {
	f := newVaultFixture(t)
	f.workspace.EXPECT().Touch(gomock.Any(), gomock.Any()).Return(nil)

	path, err := f.svc.Save(context.Background(), filepath.Join(f.dir, "work.PVAULT"), models.Tables{}, []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.dir, "work.PVAULT"), path)
}

// TestVaultService_SaveRewritesFileWithoutExtension checks that a vault
// opened from a path without the extension is saved back to that same file
// and that its recovery copy is cleared by the save.
func TestVaultService_SaveRewritesFileWithoutExtension(t *testing.T) {
	f := newVaultFixture(t)
	ctx := context.Background()
	f.workspace.EXPECT().Touch(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	created, err := f.svc.Save(ctx, filepath.Join(f.dir, "vault"), models.Tables{}, []byte("master"))
	require.NoError(t, err)
	legacy := filepath.Join(f.dir, "legacy")
	require.NoError(t, os.Rename(created, legacy))
	f.svc.Lock()

	_, err = f.svc.Open(ctx, legacy, []byte("master"))
	require.NoError(t, err)
	before, err := os.ReadFile(legacy)
	require.NoError(t, err)

	tables := f.tables(t)
	require.NoError(t, f.svc.Snapshot(ctx, legacy, tables))
	_, err = os.Stat(f.svc.RecoveryFile(legacy))
	require.NoError(t, err)

	path, err := f.svc.Save(ctx, legacy, tables, nil)
	require.NoError(t, err)
	assert.Equal(t, legacy, path)

	after, err := os.ReadFile(legacy)
	require.NoError(t, err)
	assert.NotEqual(t, before, after)

	_, err = os.Stat(legacy + FileExtension)
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = os.Stat(f.svc.RecoveryFile(legacy))
	assert.ErrorIs(t, err, os.ErrNotExist)

	f.svc.Lock()
	reopened, err := f.svc.Open(ctx, legacy, []byte("master"))
	require.NoError(t, err)
	assert.Len(t, reopened.Entries, 3)
}

func TestVaultService_RecoveryFileIgnoresPathSpelling(t *testing.T) {
	f := newVaultFixture(t)

	wd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, f.svc.RecoveryFile(filepath.Join(wd, "v.pvault")), f.svc.RecoveryFile("./v.pvault"))
	assert.Equal(t, f.svc.RecoveryFile("v.pvault"), f.svc.RecoveryFile("sub/../v.pvault"))
}

func TestWithExtension(t *testing.T) {
	assert.Equal(t, "v.pvault", WithExtension("v"))
	assert.Equal(t, "v.PVault", WithExtension("v.PVault"))
	assert.Equal(t, "v.txt.pvault", WithExtension("v.txt"))
}

func TestVaultService_SaveReusesSessionPassword(t *testing.T) {
	f := newVaultFixture(t)
	ctx := context.Background()
	f.workspace.EXPECT().Touch(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	path, err := f.svc.Save(ctx, filepath.Join(f.dir, "vault"), f.tables(t), []byte("first"))
	require.NoError(t, err)

	// A second save without a new password keeps the first one.
	_, err = f.svc.Save(ctx, path, models.Tables{}, nil)
	require.NoError(t, err)

	f.svc.Lock()
	_, err = f.svc.Open(ctx, path, []byte("first"))
	require.NoError(t, err)
}

func TestVaultService_ChangePassword(t *testing.T) {
	f := newVaultFixture(t)
	ctx := context.Background()
	f.workspace.EXPECT().Touch(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	path, err := f.svc.Save(ctx, filepath.Join(f.dir, "vault"), models.Tables{}, []byte("old"))
	require.NoError(t, err)
	_, err = f.svc.Save(ctx, path, models.Tables{}, []byte("new"))
	require.NoError(t, err)

	pw, err := f.session.Password()
	require.NoError(t, err)
	assert.Equal(t, "new", string(pw))

	f.svc.Lock()
	_, err = f.svc.Open(ctx, path, []byte("old"))
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestVaultService_SaveLocked(t *testing.T) {
	f := newVaultFixture(t)

	_, err := f.svc.Save(context.Background(), filepath.Join(f.dir, "vault"), models.Tables{}, nil)
	assert.ErrorIs(t, err, ErrVaultLocked)
}

func TestVaultService_OpenErrors(t *testing.T) {
	f := newVaultFixture(t)
	ctx := context.Background()
	f.workspace.EXPECT().Touch(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	path, err := f.svc.Save(ctx, filepath.Join(f.dir, "vault"), models.Tables{}, []byte("master"))
	require.NoError(t, err)
	f.svc.Lock()

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.svc.Open(ctx, path, []byte("guess"))
		assert.ErrorIs(t, err, ErrInvalidPassword)
		assert.False(t, f.session.Unlocked())
	})

	t.Run("empty password", func(t *testing.T) {
		_, err := f.svc.Open(ctx, path, nil)
		assert.ErrorIs(t, err, ErrEmptyPassword)
	})

	t.Run("missing file is forgotten", func(t *testing.T) {
		missing := filepath.Join(f.dir, "gone.pvault")
		f.workspace.EXPECT().Remove(gomock.Any(), missing).Return(nil)

		_, err := f.svc.Open(ctx, missing, []byte("master"))
		assert.ErrorIs(t, err, ErrVaultNotFound)
	})

	t.Run("not a vault", func(t *testing.T) {
		junk := filepath.Join(f.dir, "junk.pvault")
		require.NoError(t, os.WriteFile(junk, []byte("short"), 0o600))

		_, err := f.svc.Open(ctx, junk, []byte("master"))
		assert.ErrorIs(t, err, ErrOperationFailed)
	})
}

func TestVaultService_SnapshotAndRecover(t *testing.T) {
	f := newVaultFixture(t)
	ctx := context.Background()
	f.workspace.EXPECT().Touch(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	path, err := f.svc.Save(ctx, filepath.Join(f.dir, "vault"), models.Tables{}, []byte("master"))
	require.NoError(t, err)

	unsaved := f.tables(t)
	require.NoError(t, f.svc.Snapshot(ctx, path, unsaved))

	recovery := f.svc.RecoveryFile(path)
	assert.Equal(t, filepath.Join(f.dir, "recovery"), filepath.Dir(recovery))
	assert.NotContains(t, recovery, "vault.pvault")
	_, err = os.Stat(recovery)
	require.NoError(t, err)

	recovered, err := f.svc.Recover(ctx, path)
	require.NoError(t, err)
	require.Len(t, recovered.Entries, 3)
	assert.Equal(t, "hunter2", f.decrypt(t, recovered.Entries[0].Password))

	// Saving clears the recovery copy.
	_, err = f.svc.Save(ctx, path, recovered, nil)
	require.NoError(t, err)
	_, err = os.Stat(recovery)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = f.svc.Recover(ctx, path)
	assert.ErrorIs(t, err, ErrVaultNotFound)
}

func TestVaultService_RecoveryFileIsStable(t *testing.T) {
	f := newVaultFixture(t)

	a := f.svc.RecoveryFile(filepath.Join(f.dir, "a.pvault"))
	assert.Equal(t, a, f.svc.RecoveryFile(filepath.Join(f.dir, "a.pvault")))
	assert.NotEqual(t, a, f.svc.RecoveryFile(filepath.Join(f.dir, "b.pvault")))
	assert.Regexp(t, `^~[0-9a-f]{16}\.tmp$`, filepath.Base(a))
}

func TestVaultService_SnapshotLocked(t *testing.T) {
	f := newVaultFixture(t)

	err := f.svc.Snapshot(context.Background(), filepath.Join(f.dir, "vault.pvault"), models.Tables{})
	assert.ErrorIs(t, err, ErrVaultLocked)
}

func TestVaultService_Strings(t *testing.T) {
	f := newVaultFixture(t)
	ctx := context.Background()

	a, err := f.svc.EncryptString(ctx, []byte("alpha"))
	require.NoError(t, err)
	b, err := f.svc.EncryptString(ctx, []byte("beta"))
	require.NoError(t, err)

	values, err := f.svc.BulkDecryptStrings(ctx, []string{b, a})
	require.NoError(t, err)
	assert.Equal(t, []string{"beta", "alpha"}, values)

	values, err = f.svc.BulkDecryptStrings(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, values)

	// Values sealed before a lock are unreadable after it.
	f.svc.Lock()
	_, err = f.svc.DecryptString(ctx, a)
	assert.ErrorIs(t, err, ErrOperationFailed)
	assert.NotErrorIs(t, err, ErrInvalidPassword)
}

func TestVaultService_ScanLeaks(t *testing.T) {
	f := newVaultFixture(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return now }

	f.finder.EXPECT().
		FindLeaks(gomock.Any(), gomock.Len(2)).
		Return([]models.LeakResult{
			{ID: 1, Occurrences: 17},
			{ID: 3, Error: "range lookup timed out after 30s", Kind: models.LeakKindTimeout},
		})

	results, r, err := f.svc.ScanLeaks(context.Background(), f.tables(t))
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.True(t, results[1].Failed())
	assert.ErrorIs(t, results[1].Err, leaks.ErrLookupTimeout)
	assert.EqualError(t, results[1].Err, "range lookup timed out after 30s")
	assert.Equal(t, models.ExposedPasswordsReport, r.Type)
	assert.Equal(t, now, r.CreationDate)
	assert.JSONEq(t, `[{"id":1,"occurrences":17}]`, r.Payload)
}

func TestVaultService_ScanWeakPasswords(t *testing.T) {
	f := newVaultFixture(t)

	results, r, err := f.svc.ScanWeakPasswords(context.Background(), f.tables(t))
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.True(t, weak.IsWeak(results[0].Score))
	assert.False(t, weak.IsWeak(results[1].Score))
	assert.Equal(t, models.WeakPasswordsReport, r.Type)
	assert.Contains(t, r.Payload, `"id":1`)
	assert.NotContains(t, r.Payload, `"id":3`)
}

func TestVaultService_Recent(t *testing.T) {
	f := newVaultFixture(t)
	ctx := context.Background()
	want := []models.RecentVault{{Path: "/a.pvault"}, {Path: "/b.pvault"}}

	f.workspace.EXPECT().List(gomock.Any()).Return(want, nil)
	got, err := f.svc.Recent(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	f.workspace.EXPECT().List(gomock.Any()).Return(nil, assert.AnError)
	_, err = f.svc.Recent(ctx)
	assert.ErrorIs(t, err, ErrOperationFailed)
}

func TestVaultService_RunnerErrors(t *testing.T) {
	tests := []struct {
		name    string
		runErr  error
		wantErr error
	}{
		{
			name:    "authentication",
			runErr:  &worker.ReplyError{Kind: models.KindAuthentication, Message: "cannot decrypt"},
			wantErr: ErrInvalidPassword,
		},
		{
			name:    "newer schema",
			runErr:  &worker.ReplyError{Kind: models.KindSchemaVersion, Message: "unsupported schema version: 2"},
			wantErr: ErrUnsupportedVault,
		},
		{name: "timeout", runErr: worker.ErrWorkerTimeout, wantErr: ErrOperationFailed},
		{name: "transport", runErr: worker.ErrWorkerTransport, wantErr: ErrOperationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			runner := mock.NewMockRunner(ctrl)
			files := mock.NewMockVaultFileStorage(ctrl)
			workspace := mock.NewMockWorkspaceRepository(ctrl)
			sess := session.New()

			svc := NewVaultService(runner, files, workspace, sess, config.Vault{SchemaVersion: 1}, logger.Nop())

			files.EXPECT().Read(gomock.Any(), "/v.pvault").Return([]byte("blob"), nil)
			runner.EXPECT().
				Run(gomock.Any(), gomock.Cond(func(req models.WorkerRequest) bool {
					return req.Type == models.DecryptDatabase && len(req.MemoryKey) == crypto.MemoryKeySize && req.ID != ""
				})).
				Return(models.WorkerReply{}, tt.runErr)

			_, err := svc.Open(context.Background(), "/v.pvault", []byte("pw"))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, sess.Unlocked())
		})
	}
}

func TestVaultService_WriteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mock.NewMockRunner(ctrl)
	files := mock.NewMockVaultFileStorage(ctrl)
	workspace := mock.NewMockWorkspaceRepository(ctrl)

	svc := NewVaultService(runner, files, workspace, session.New(), config.Vault{SchemaVersion: 1}, logger.Nop())

	files.EXPECT().Exists(gomock.Any(), "/v").Return(false, nil)
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(models.WorkerReply{Encrypted: "AAAA"}, nil)
	files.EXPECT().Write(gomock.Any(), "/v.pvault", []byte{0, 0, 0}).Return(assert.AnError)

	_, err := svc.Save(context.Background(), "/v", models.Tables{}, []byte("pw"))
	assert.ErrorIs(t, err, ErrOperationFailed)
}

func TestVaultService_SaveStatFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	files := mock.NewMockVaultFileStorage(ctrl)

	svc := NewVaultService(mock.NewMockRunner(ctrl), files, mock.NewMockWorkspaceRepository(ctrl),
		session.New(), config.Vault{SchemaVersion: 1}, logger.Nop())

	files.EXPECT().Exists(gomock.Any(), "/v").Return(false, assert.AnError)

	_, err := svc.Save(context.Background(), "/v", models.Tables{}, []byte("pw"))
	assert.ErrorIs(t, err, ErrOperationFailed)
}

func TestVaultService_SaveRejectsInvalidTables(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mock.NewMockRunner(ctrl)
	files := mock.NewMockVaultFileStorage(ctrl)
	workspace := mock.NewMockWorkspaceRepository(ctrl)

	svc := NewVaultService(runner, files, workspace, session.New(), config.Vault{SchemaVersion: 1}, logger.Nop())

	tables := models.Tables{
		Entries: []models.Entry{{ID: 1, GroupID: 9, Type: models.PasswordEntry}},
		Groups:  []models.Group{{ID: 1, Name: "Root"}},
	}
	files.EXPECT().Exists(gomock.Any(), "/v").Return(false, nil)

	_, err := svc.Save(context.Background(), "/v", tables, []byte("pw"))
	require.ErrorIs(t, err, ErrInvalidVaultData)
	assert.ErrorIs(t, err, validators.ErrUnknownGroup)

	err = svc.Snapshot(context.Background(), "/v", tables)
	assert.ErrorIs(t, err, ErrVaultLocked)
}
