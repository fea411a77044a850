package core

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mcasademont9/nomad-forematics/pkg/domain"
)

func TestOpenPersistentStoreMemoryDriver(t *testing.T) {
	t.Setenv("FOREMATICS_STORAGE_DRIVER", "memory")
	store, err := OpenPersistentStore(NewRulesEngine(), NewNormalizerEngine())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := store.RunInTransaction(context.Background(), func(tx Transaction) error {
		_, err := tx.CreateSubstrate(domain.Substrate{Name: "glass"})
		return err
	}); err != nil {
		t.Fatalf("transaction: %v", err)
	}
	if len(store.ListSubstrates()) != 1 {
		t.Fatalf("record not stored")
	}
}

func TestOpenPersistentStoreSQLiteDriver(t *testing.T) {
	t.Setenv("FOREMATICS_STORAGE_DRIVER", "sqlite")
	t.Setenv("FOREMATICS_SQLITE_PATH", filepath.Join(t.TempDir(), "lab.db"))
	store, err := OpenPersistentStore(NewRulesEngine(), NewNormalizerEngine())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if store == nil {
		t.Fatalf("nil store")
	}
}

func TestOpenPersistentStoreUnknownDriver(t *testing.T) {
	t.Setenv("FOREMATICS_STORAGE_DRIVER", "bogus")
	if _, err := OpenPersistentStore(NewRulesEngine(), NewNormalizerEngine()); err == nil {
		t.Fatalf("unknown driver should fail")
	}
}
