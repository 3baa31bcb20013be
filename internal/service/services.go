package service

import (
	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/session"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/internal/worker"
)

// Services groups the caller-side services of one vault session.
type Services struct {
	Session  *session.Session
	Vault    VaultService
	IdleLock IdleLockJob
}

// NewServices wires the services over a fresh session.
func NewServices(runner worker.Runner, files store.VaultFileStorage, workspace store.WorkspaceRepository, cfg config.Vault, log *logger.Logger) *Services {
	sess := session.New()
	vaultSvc := NewVaultService(runner, files, workspace, sess, cfg, log)

	return &Services{
		Session:  sess,
		Vault:    vaultSvc,
		IdleLock: NewIdleLockJob(sess, vaultSvc, log),
	}
}
