package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/skyburst-games/popmeta/internal/config"
	"github.com/skyburst-games/popmeta/internal/database"
	"github.com/skyburst-games/popmeta/internal/store"
)

// SetupStorage selects and initializes the persistence layer from config.
// For the postgres backend it connects the pool and applies migrations; for
// the memory backend the returned database.Pool is nil, which readiness
// checks treat as always-ready.
func SetupStorage(cfg *config.Config) (store.Store, database.Pool, error) {
	switch cfg.StorageBackend {
	case config.StorageBackendMemory:
		slog.Info(LogMsgStorageInitialized, "backend", cfg.StorageBackend)
		return store.NewMemoryStore(), nil, nil

	case config.StorageBackendPostgres:
		connString := cfg.GetDBConnString()

		if err := database.RunMigrations(connString); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedRunMigrations, err)
		}

		pool, err := database.NewPool(connString, DBMaxConnections, DBMaxIdleTime, DBMaxLifetime)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDatabase, err)
		}

		slog.Info(LogMsgStorageInitialized, "backend", cfg.StorageBackend, "db_host", cfg.DBHost)
		return store.NewPostgresStore(pool), pool, nil

	default:
		return nil, nil, fmt.Errorf("%s: %q", ErrMsgUnknownStorageBackend, cfg.StorageBackend)
	}
}
