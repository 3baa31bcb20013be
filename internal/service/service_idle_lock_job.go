package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/session"
)

const (
	defaultIdleTimeout = 10 * time.Minute
	maxIdleCheckPeriod = time.Second
)

type idleLockJob struct {
	session *session.Session
	vault   VaultService
	logger  *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewIdleLockJob creates an idleLockJob that locks vault once sess has been
// idle long enough. The job is idle until Start is called.
func NewIdleLockJob(sess *session.Session, vault VaultService, log *logger.Logger) IdleLockJob {
	return &idleLockJob{session: sess, vault: vault, logger: log}
}

// Start implements IdleLockJob. The session is checked several times per
// timeout so the lock happens close to the deadline.
func (j *idleLockJob) Start(ctx context.Context, idleTimeout time.Duration) {
	if idleTimeout <= 0 {
		idleTimeout = defaultIdleTimeout
	}
	period := min(idleTimeout/4, maxIdleCheckPeriod)
	if period <= 0 {
		period = idleTimeout
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(period)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if j.session.Unlocked() && j.session.IdleFor() >= idleTimeout {
					j.logger.Info().Dur("idle_timeout", idleTimeout).Str("func", "idleLockJob").Msg("locking idle session")
					j.vault.Lock()
				}
			}
		}
	}()
}

// Stop implements IdleLockJob. Safe to call when the job is not running.
func (j *idleLockJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
