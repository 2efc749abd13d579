package storage

import (
	"fmt"

	"github.com/danivc/BioHackerBack/internal/config"
	"github.com/danivc/BioHackerBack/internal/database"
	"go.uber.org/zap"
)

// New builds the storage backend selected by configuration.
func New(cfg *config.Config, logger *zap.SugaredLogger) (Store, error) {
	switch cfg.StorageBackend {
	case "postgres":
		pool, err := database.Connect(cfg.DBUrl)
		if err != nil {
			return nil, err
		}
		logger.Infof("connected to postgres")
		return NewPostgresStore(pool, logger), nil
	case "memory":
		store := NewMemStore(logger)
		if cfg.SeedDemoData {
			store.SeedDemoData()
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.StorageBackend)
	}
}
