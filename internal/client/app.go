package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-pass-vault/internal/app"
	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/internal/worker"
	"github.com/MKhiriev/go-pass-vault/models"
)

// ErrUsage is returned for an unknown command or missing arguments.
var ErrUsage = errors.New(app.MsgUsage)

type commandFunc func(ctx context.Context, args []string) error

// App is the vault CLI. One App runs one command.
type App struct {
	cfg       *config.ClientConfig
	db        *store.DB
	files     store.VaultFileStorage
	services  *service.Services
	prompt    Prompter
	out       io.Writer
	buildInfo models.AppBuildInfo
	commands  map[string]commandFunc

	logger *logger.Logger
}

// NewApp wires the workspace database, the worker runner and the vault
// services described by cfg.
func NewApp(ctx context.Context, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, prompt Prompter, out io.Writer, log *logger.Logger) (*App, error) {
	db, err := store.NewConnectSQLite(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, fmt.Errorf("open workspace database: %w", err)
	}

	runner, err := worker.NewRunner(cfg, log)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create worker runner: %w", err)
	}

	files := store.NewVaultFileStorage(log)
	workspace := store.NewWorkspaceRepository(db, cfg.Session.RecentLimit, log)

	a := &App{
		cfg:       cfg,
		db:        db,
		files:     files,
		services:  service.NewServices(runner, files, workspace, cfg.Vault, log),
		prompt:    prompt,
		out:       out,
		buildInfo: buildInfo,
		logger:    log,
	}
	a.commands = map[string]commandFunc{
		"new":        a.newVault,
		"open":       a.open,
		"add":        a.addEntry,
		"passwd":     a.changePassword,
		"recover":    a.recoverVault,
		"scan-leaks": a.scanLeaks,
		"scan-weak":  a.scanWeak,
		"recent":     a.recent,
		"version":    a.version,
	}
	return a, nil
}

// Run executes command. The session is locked when the command returns or
// after the configured idle timeout, whichever comes first.
func (a *App) Run(ctx context.Context, command string) error {
	cmd, ok := a.commands[command]
	if !ok {
		return ErrUsage
	}

	a.services.IdleLock.Start(ctx, a.cfg.Session.IdleTimeout)
	defer func() {
		a.services.IdleLock.Stop()
		a.services.Vault.Lock()
	}()

	// Every worker call of one command logs the same operation id.
	opID := utils.NewUUIDGenerator().Generate()
	ctx = utils.WithOperationID(ctx, opID)

	a.logger.Info().Str("command", command).Str("op_id", opID).Str("func", "App.Run").Msg("running command")
	if err := cmd(ctx, a.cfg.Args); err != nil {
		a.logger.Err(err).Str("command", command).Str("func", "App.Run").Msg("command failed")
		return err
	}
	return nil
}

// Close releases the workspace database.
func (a *App) Close() error {
	return a.db.Close()
}

// UserMessage returns the text printed to the terminal for err.
func UserMessage(err error) string {
	if errors.Is(err, ErrUsage) || errors.Is(err, ErrPasswordMismatch) || errors.Is(err, ErrVaultExists) {
		return err.Error()
	}
	return app.Message(err)
}
