// Package backend opens the storage selected by STORAGE_BACKEND and wires its repositories.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/empower_finance_app/internal/core/ports/repositories"
	"github.com/SscSPs/empower_finance_app/internal/platform/config"
	"github.com/SscSPs/empower_finance_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/empower_finance_app/internal/repositories/database/sqlite"
	"github.com/SscSPs/empower_finance_app/internal/repositories/memory"
	"github.com/SscSPs/empower_finance_app/pkg/database"
)

// Result carries the repositories of an opened backend and how to release it.
type Result struct {
	Repositories portsrepo.RepositoryProvider
	Cleanup      func()
}

// Open migrates and connects the configured backend.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.StorageBackend {
	case config.BackendPostgres:
		return openPostgres(ctx, cfg, logger)
	case config.BackendSQLite:
		return openSQLite(cfg, logger)
	case config.BackendMemory:
		logger.Warn("Using in-memory storage, data is lost on restart")
		return &Result{
			Repositories: memory.NewRepositoryProvider(memory.NewStore()),
			Cleanup:      func() {},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.StorageBackend)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Result, error) {
	logger.Info("Running database migrations...", slog.String("backend", config.BackendPostgres))
	if err := database.RunPostgresMigrations(cfg.DatabaseURL); err != nil {
		return nil, fmt.Errorf("failed to migrate postgres: %w", err)
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database connection pool: %w", err)
	}

	logger.Info("Initialized Postgres backend")
	return &Result{
		Repositories: pgsql.NewRepositoryProvider(pool),
		Cleanup:      func() { database.ClosePgxPool(pool) },
	}, nil
}

func openSQLite(cfg *config.Config, logger *slog.Logger) (*Result, error) {
	db, err := database.OpenSQLite(cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	logger.Info("Running database migrations...", slog.String("backend", config.BackendSQLite))
	if err := database.RunSQLiteMigrations(cfg.SQLitePath); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate sqlite: %w", err)
	}

	logger.Info("Initialized SQLite backend", slog.String("db_path", cfg.SQLitePath))
	return &Result{
		Repositories: sqlite.NewRepositoryProvider(db),
		Cleanup: func() {
			if err := db.Close(); err != nil {
				logger.Error("Error closing SQLite database", slog.String("error", err.Error()))
			}
		},
	}, nil
}
