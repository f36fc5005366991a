package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/empower_finance_app/migrations"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// RunPostgresMigrations applies the embedded postgres migrations.
// It uses its own database/sql connection because the migrate driver closes it when done.
func RunPostgresMigrations(databaseURL string) error {
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	if err := migrationDB.Ping(); err != nil {
		migrationDB.Close()
		return fmt.Errorf("ping migration database: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		migrationDB.Close()
		return fmt.Errorf("create postgres driver: %w", err)
	}
	return runMigrations("postgres", driver)
}

// RunSQLiteMigrations applies the embedded sqlite migrations to the file at path.
func RunSQLiteMigrations(path string) error {
	// A separate connection keeps the migrator from closing the main one.
	migrationDB, err := sql.Open("sqlite", "file:"+path+sqlitePragmas)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}

	driver, err := sqlite.WithInstance(migrationDB, &sqlite.Config{})
	if err != nil {
		migrationDB.Close()
		return fmt.Errorf("create sqlite driver: %w", err)
	}
	return runMigrations("sqlite", driver)
}

func runMigrations(dialect string, driver database.Driver) error {
	src, err := iofs.New(migrations.FS, dialect)
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, dialect, driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	upErr := m.Up()
	version, dirty, versionErr := m.Version()
	sourceErr, dbErr := m.Close()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("run %s migrations: %w", dialect, upErr)
	}
	if sourceErr != nil {
		return fmt.Errorf("close migration source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("close migration database: %w", dbErr)
	}
	if versionErr != nil {
		return fmt.Errorf("read %s migration version: %w", dialect, versionErr)
	}
	if dirty {
		return fmt.Errorf("%s schema is dirty at version %d", dialect, version)
	}

	slog.Info("Database migrations applied", slog.String("dialect", dialect), slog.Uint64("version", uint64(version)))
	return nil
}
