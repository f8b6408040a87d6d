package store

import (
	"context"

	"github.com/voteworks/ballotbox/internal/config"
	"github.com/voteworks/ballotbox/internal/logger"
)

// Storages aggregates every repository backed by the shared database handle.
type Storages struct {
	UserRepository      UserRepository
	CandidateRepository CandidateRepository

	db *DB
}

// NewStorages opens the database connection, applies pending migrations, and
// wires up all repositories. The returned value owns the connection; call
// [Storages.Close] on shutdown.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		return nil, err
	}

	return &Storages{
		UserRepository:      NewUserRepository(db, log),
		CandidateRepository: NewCandidateRepository(db, log),
		db:                  db,
	}, nil
}

// Ping verifies database connectivity; used by the health endpoint.
func (s *Storages) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the underlying database connection.
func (s *Storages) Close() error {
	return s.db.Close()
}
