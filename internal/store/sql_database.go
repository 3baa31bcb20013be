package store

import (
	"database/sql"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/migrations"
)

// DB is the workspace database handle.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate applies all pending workspace migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
