// Package devicestore is the on-device SQLite database: small per-account
// key/value state plus the generation metrics tables. It covers what does
// not belong in the remote document store.
package devicestore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite" // Pure Go sqlite driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrKeyNotFound is returned by Get for keys never written.
var ErrKeyNotFound = errors.New("device key not found")

// DB wraps the device database connection.
type DB struct {
	sql *sql.DB
}

// Open creates the database file if needed, applies pending migrations and
// opens the connection.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// _time_format=sqlite stores time.Time values in the format SQLite's
	// date/time functions parse; the driver default is not parseable there.
	db, err := sql.Open("sqlite", dbPath+"?_time_format=sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &DB{sql: db}, nil
}

// SQL exposes the underlying connection for other stores sharing the file.
func (d *DB) SQL() *sql.DB {
	return d.sql
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

// Get reads the value stored for (accountID, key).
func (d *DB) Get(ctx context.Context, accountID, key string) (string, error) {
	var value string
	err := d.sql.QueryRowContext(ctx,
		`SELECT value FROM device_values WHERE account_id = ? AND key = ?`,
		accountID, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read device value: %w", err)
	}
	return value, nil
}

// Put stores the value for (accountID, key), replacing any previous value.
func (d *DB) Put(ctx context.Context, accountID, key, value string) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO device_values (account_id, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(account_id, key) DO UPDATE SET value = excluded.value`,
		accountID, key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to store device value: %w", err)
	}
	return nil
}

// Delete removes the value for (accountID, key). Deleting an absent key is
// not an error.
func (d *DB) Delete(ctx context.Context, accountID, key string) error {
	_, err := d.sql.ExecContext(ctx,
		`DELETE FROM device_values WHERE account_id = ? AND key = ?`,
		accountID, key,
	)
	if err != nil {
		return fmt.Errorf("failed to delete device value: %w", err)
	}
	return nil
}

func runMigrations(databasePath string) error {
	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create iofs driver: %w", err)
	}

	m, err := migrate.NewWithSourceInstance(
		"iofs",
		d,
		fmt.Sprintf("sqlite://%s", databasePath),
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
