package core

import (
	"fmt"
	"os"

	"github.com/mcasademont9/nomad-forematics/internal/persistence/memory"
	"github.com/mcasademont9/nomad-forematics/internal/persistence/postgres"
	"github.com/mcasademont9/nomad-forematics/internal/persistence/sqlite"
	"github.com/mcasademont9/nomad-forematics/pkg/domain"
)

// StorageDriver identifies a concrete persistent storage implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
)

// OpenPersistentStore selects a backend using environment variables.
// Defaults to sqlite when unset.
//
//	FOREMATICS_STORAGE_DRIVER: memory|sqlite|postgres (default sqlite)
//	FOREMATICS_SQLITE_PATH: path to sqlite file (default ./forematics.db)
//	FOREMATICS_POSTGRES_DSN: postgres DSN when driver=postgres
func OpenPersistentStore(rules *domain.RulesEngine, normalizers *domain.NormalizerEngine) (PersistentStore, error) {
	driver := os.Getenv("FOREMATICS_STORAGE_DRIVER")
	if driver == "" {
		driver = string(StorageSQLite)
	}
	switch StorageDriver(driver) {
	case StorageMemory:
		return memory.NewStore(rules, normalizers), nil
	case StorageSQLite:
		path := os.Getenv("FOREMATICS_SQLITE_PATH")
		return sqlite.NewStore(path, rules, normalizers)
	case StoragePostgres:
		dsn := os.Getenv("FOREMATICS_POSTGRES_DSN")
		return postgres.NewStore(dsn, rules, normalizers)
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}

// NewInMemoryService creates a service over a fresh in-memory store wired to
// the given engines.
func NewInMemoryService(rules *RulesEngine, normalizers *NormalizerEngine, opts ...ServiceOption) *Service {
	return NewService(memory.NewStore(rules, normalizers), rules, normalizers, opts...)
}
