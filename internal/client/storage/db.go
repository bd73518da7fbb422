// Package storage wires the on-device SQLite database for the fieldshift
// client: it opens the file, applies the embedded goose migrations and
// constructs the repositories used by the services.
package storage

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/fieldshift/internal/client/migrations"
	"github.com/dmitrijs2005/fieldshift/internal/client/repositories/activeshift"
	"github.com/dmitrijs2005/fieldshift/internal/client/repositories/outbox"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Repositories bundles the durable stores backed by one database handle.
type Repositories struct {
	ActiveShift activeshift.Store
	Outbox      outbox.Repository
	DB          *sql.DB
}

// RunMigrations applies the embedded migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the device database at dsn and returns the
// repositories. The pool is capped at one connection: the client is a
// single-writer, and in-memory databases would otherwise split across
// connections.
func Open(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Repositories{
		ActiveShift: activeshift.NewSQLiteStore(db),
		Outbox:      outbox.NewSQLiteRepository(db),
		DB:          db,
	}, nil
}

// Close closes the underlying database handle.
func (r *Repositories) Close() error {
	return r.DB.Close()
}
