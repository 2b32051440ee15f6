package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"synapsecore/pkg/domain"
)

func floatPtr(v float64) *float64 { return &v }

func seedStore(t *testing.T, store *Store) {
	t.Helper()
	_, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		if _, err := tx.CreateExperiment(domain.Experiment{ID: "e1", Species: domain.SpeciesMouse, ACSF: "2mM Ca & Mg"}); err != nil {
			return err
		}
		_, err := tx.CreatePair(domain.Pair{
			ID:           "p1",
			ExperimentID: "e1",
			PreCell:      domain.Cell{ID: "c1", TargetLayer: "2/3"},
			PostCell:     domain.Cell{ID: "c2", TargetLayer: "2/3"},
			Distance:     floatPtr(42e-6),
			Connected:    true,
		})
		return err
	})
	if err != nil {
		t.Fatalf("seed transaction failed: %v", err)
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synapsecore.db")

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	seedStore(t, store)
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	reopened, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	pairs := reopened.ListPairs()
	if len(pairs) != 1 {
		t.Fatalf("reloaded %d pairs, want 1", len(pairs))
	}
	p := pairs[0]
	if p.ID != "p1" || !p.Connected || p.Distance == nil || *p.Distance != 42e-6 {
		t.Fatalf("reloaded pair mismatch: %+v", p)
	}
	if p.PreCell.TargetLayer != "2/3" {
		t.Fatalf("cell attributes lost on reload: %+v", p.PreCell)
	}
	exps := reopened.ListExperiments()
	if len(exps) != 1 || exps[0].ACSF != "2mM Ca & Mg" {
		t.Fatalf("reloaded experiments mismatch: %v", exps)
	}
}

func TestStoreDefaultPath(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "nested", "dir", "state.db"))
	if err != nil {
		t.Fatalf("open store with nested path: %v", err)
	}
	defer func() { _ = store.Close() }()
	if store.Path() == "" {
		t.Fatalf("expected non-empty path")
	}
	if store.DB() == nil {
		t.Fatalf("expected usable database handle")
	}
}

func TestStorePersistErrorSurfaces(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.DB().Close(); err != nil {
		t.Fatalf("close handle: %v", err)
	}

	_, err = store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateExperiment(domain.Experiment{ID: "e1", Species: domain.SpeciesMouse})
		return err
	})
	if err == nil {
		t.Fatalf("expected persist error after closed handle")
	}
}
