// Package repomanager wires concrete repository implementations to a storage
// backend and owns opening the connection and bootstrapping the schema.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/facevault/internal/dbx"
	"github.com/dmitrijs2005/facevault/internal/server/config"
	"github.com/dmitrijs2005/facevault/internal/server/repositories/embeddings"
	"github.com/dmitrijs2005/facevault/internal/server/repositories/users"
)

// RepositoryManager vends per-entity repositories for one storage backend.
//
// Bootstrap creates the tables if they are absent; there is no migration
// engine, matching the create-on-start behavior of the schema owner.
type RepositoryManager interface {
	Open(dsn string) (*sql.DB, error)
	Bootstrap(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Embeddings(db dbx.DBTX) embeddings.Repository
}

// New returns the RepositoryManager for the configured driver name.
func New(driver string) (RepositoryManager, error) {
	switch driver {
	case config.DriverSQLite:
		return &SQLiteRepositoryManager{}, nil
	case config.DriverPostgres:
		return &PostgresRepositoryManager{}, nil
	default:
		return nil, fmt.Errorf("unknown database driver: %q", driver)
	}
}
