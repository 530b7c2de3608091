package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/facevault/internal/dbx"
	"github.com/dmitrijs2005/facevault/internal/server/repositories/embeddings"
	"github.com/dmitrijs2005/facevault/internal/server/repositories/users"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends SQLite-backed repositories. This is the
// default backend: a single local file, no external services.
type SQLiteRepositoryManager struct{}

// Open opens (creating if needed) the SQLite database file at dsn. The parent
// directory is created if absent so a fresh checkout can start directly.
func (m *SQLiteRepositoryManager) Open(dsn string) (*sql.DB, error) {
	if dir := filepath.Dir(dsn); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Bootstrap creates the users and embeddings tables if they do not exist.
func (m *SQLiteRepositoryManager) Bootstrap(ctx context.Context, db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT,
		email TEXT UNIQUE,
		phone TEXT UNIQUE,
		birthday TEXT,
		date_added TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS embeddings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER,
		vector BLOB NOT NULL
	);
	`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

// Embeddings returns an embeddings.Repository bound to the provided DBTX.
func (m *SQLiteRepositoryManager) Embeddings(db dbx.DBTX) embeddings.Repository {
	return embeddings.NewSQLiteRepository(db)
}
