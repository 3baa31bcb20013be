package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/awnumar/memguard"

	"github.com/MKhiriev/go-pass-vault/internal/app"
	"github.com/MKhiriev/go-pass-vault/internal/client"
	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/worker"
	"github.com/MKhiriev/go-pass-vault/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	os.Exit(run())
}

func run() int {
	defer memguard.Purge()

	// The worker reads one request from stdin and must not touch flags,
	// config files or the terminal.
	if len(os.Args) > 1 && os.Args[1] == worker.Command {
		return worker.Main(context.Background(), os.Stdin, os.Stdout)
	}

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, app.MsgUsage)
		return 2
	}
	command := os.Args[1]

	cfg, err := config.GetClientConfig("vault "+command, os.Args[2:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		return 2
	}

	log := logger.NewClientLogger("vault", filepath.Dir(cfg.Storage.DB.DSN))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := client.NewApp(ctx, cfg, buildInfo(), client.NewTerminalPrompter(os.Stdin, os.Stderr), os.Stdout, log)
	if err != nil {
		log.Err(err).Msg("init client app error")
		fmt.Fprintln(os.Stderr, app.MsgOperationFailed)
		return 1
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Err(err).Msg("error closing client app")
		}
	}()

	if err := a.Run(ctx, command); err != nil {
		fmt.Fprintln(os.Stderr, client.UserMessage(err))
		if errors.Is(err, client.ErrUsage) {
			return 2
		}
		return 1
	}
	return 0
}

func buildInfo() models.AppBuildInfo {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}
	return models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
}
