package core

import (
	"context"
	"fmt"
	"os"

	blobcore "synapsecore/internal/blob/core"
	blobfs "synapsecore/internal/infra/blob/fs"
	blobmemory "synapsecore/internal/infra/blob/memory"
	blobs3 "synapsecore/internal/infra/blob/s3"
	"synapsecore/internal/infra/persistence/memory"
	"synapsecore/internal/infra/persistence/postgres"
	"synapsecore/internal/infra/persistence/sqlite"
	"synapsecore/pkg/domain"
)

// StorageDriver identifies a concrete persistent storage implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
)

type (
	Transaction     = domain.Transaction
	TransactionView = domain.TransactionView
	PersistentStore = domain.PersistentStore
	BlobStore       = blobcore.Store
)

// OpenPersistentStore selects a pair-store backend using environment
// variables. Defaults to sqlite when unset.
//
//	SYNAPSECORE_STORAGE_DRIVER: memory|sqlite|postgres (default sqlite)
//	SYNAPSECORE_SQLITE_PATH: path to sqlite file (default ./synapsecore.db)
//	SYNAPSECORE_POSTGRES_DSN: postgres DSN when driver=postgres
func OpenPersistentStore(ctx context.Context) (PersistentStore, error) {
	driver := os.Getenv("SYNAPSECORE_STORAGE_DRIVER")
	if driver == "" {
		driver = string(StorageSQLite)
	}
	switch StorageDriver(driver) {
	case StorageMemory:
		return memory.NewStore(), nil
	case StorageSQLite:
		return sqlite.NewStore(os.Getenv("SYNAPSECORE_SQLITE_PATH"))
	case StoragePostgres:
		return postgres.NewStore(ctx, os.Getenv("SYNAPSECORE_POSTGRES_DSN"))
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}

// OpenBlobStore selects an artifact-store backend using environment
// variables.
//
//	SYNAPSECORE_BLOB_DRIVER: fs|s3|memory (default fs)
//	SYNAPSECORE_BLOB_FS_ROOT: directory root when driver=fs (default ./reportdata)
//	(S3 specific variables documented in internal/infra/blob/s3)
func OpenBlobStore(ctx context.Context) (BlobStore, error) {
	driver := os.Getenv("SYNAPSECORE_BLOB_DRIVER")
	if driver == "" {
		driver = string(blobcore.DriverFilesystem)
	}
	switch blobcore.Driver(driver) {
	case blobcore.DriverFilesystem:
		return blobfs.New(os.Getenv("SYNAPSECORE_BLOB_FS_ROOT"))
	case blobcore.DriverS3:
		return blobs3.OpenFromEnv(ctx)
	case blobcore.DriverMemory:
		return blobmemory.New(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}
