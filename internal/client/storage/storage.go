// Package storage opens the local SQLite database, applies migrations and
// wires up the repositories.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/notedrive/internal/client/migrations"
	"github.com/dmitrijs2005/notedrive/internal/client/repositories/notes"
	"github.com/dmitrijs2005/notedrive/internal/client/repositories/syncstate"
)

type Repositories struct {
	Notes     notes.Repository
	SyncState syncstate.Repository
	DB        *sql.DB
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the database at dsn, migrates it and returns the
// repository set. The caller owns the returned DB handle.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Repositories{
		Notes:     notes.NewSQLiteRepository(db),
		SyncState: syncstate.NewSQLiteRepository(db),
		DB:        db,
	}, nil
}
