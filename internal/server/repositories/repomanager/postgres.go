package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/facevault/internal/dbx"
	"github.com/dmitrijs2005/facevault/internal/server/repositories/embeddings"
	"github.com/dmitrijs2005/facevault/internal/server/repositories/users"
	_ "github.com/lib/pq"
	"go.nhat.io/otelsql"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories for
// deployments where an embedded file database is not enough.
type PostgresRepositoryManager struct{}

var (
	pgDriverOnce sync.Once
	pgDriver     string
	pgDriverErr  error
)

// tracedDriver registers the pq driver wrapped with otelsql once and returns
// the registered driver name.
func tracedDriver() (string, error) {
	pgDriverOnce.Do(func() {
		pgDriver, pgDriverErr = otelsql.Register(
			"postgres",
			otelsql.TraceQueryWithoutArgs(),
			otelsql.TraceRowsClose(),
			otelsql.TraceRowsAffected(),
			otelsql.WithSystem(semconv.DBSystemPostgreSQL),
		)
	})
	return pgDriver, pgDriverErr
}

// Open opens a traced connection to the PostgreSQL server at dsn.
func (m *PostgresRepositoryManager) Open(dsn string) (*sql.DB, error) {
	driver, err := tracedDriver()
	if err != nil {
		return nil, fmt.Errorf("failed to register traced pg driver: %w", err)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// Bootstrap creates the users and embeddings tables if they do not exist.
func (m *PostgresRepositoryManager) Bootstrap(ctx context.Context, db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name TEXT,
		email TEXT UNIQUE,
		phone TEXT UNIQUE,
		birthday TEXT,
		date_added TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS embeddings (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT,
		vector BYTEA NOT NULL
	);
	`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// Embeddings returns an embeddings.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Embeddings(db dbx.DBTX) embeddings.Repository {
	return embeddings.NewPostgresRepository(db)
}
