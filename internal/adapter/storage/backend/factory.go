package backend

import (
	"fmt"

	"farmstand/internal/adapter/storage/memory"
	"farmstand/internal/adapter/storage/mongodb"
	"farmstand/internal/adapter/storage/oracle"
	"farmstand/internal/adapter/storage/postgres"
	"farmstand/internal/domain/storage"
	"farmstand/pkg/config"
)

// New builds the storage implementation named by cfg.StorageBackend. The
// caller still owns Init; selection and connection are separate failures.
func New(cfg *config.Config) (storage.Storage, error) {
	var store storage.Storage

	switch cfg.StorageBackend {
	case config.BackendMemory:
		store = memory.New()
	case config.BackendPostgres:
		store = postgres.New(cfg.DatabaseURL, cfg.StorageTimeout)
	case config.BackendOracle:
		store = oracle.New(cfg.OracleURL, cfg.StorageTimeout)
	case config.BackendHybrid:
		store = NewComposite(
			oracle.New(cfg.OracleURL, cfg.StorageTimeout),
			mongodb.New(cfg.MongoURI, cfg.MongoDatabase, cfg.StorageTimeout))
	case config.BackendMongo:
		store = NewComposite(
			memory.New(),
			mongodb.New(cfg.MongoURI, cfg.MongoDatabase, cfg.StorageTimeout))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	return NewResilient(store), nil
}
