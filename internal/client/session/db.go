// Package session persists the logged-in user and bearer token of the diary
// CLI in a local SQLite file, so a login survives restarts until the token
// expires or the user logs out.
package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/diary/internal/client/session/migrations"
	"github.com/dmitrijs2005/diary/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// RunMigrations brings the session schema up to date.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// OpenDatabase opens the SQLite file at dsn, creating its directory if
// needed, and applies migrations.
func OpenDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	if err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
