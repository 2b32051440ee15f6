package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"synapsecore/pkg/domain"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func boolPtr(v bool) *bool { return &v }

func classPairs(ds *domain.Dataset, expID, prefix string, cell domain.Cell) {
	cells := make([]domain.Cell, 3)
	for i := range cells {
		c := cell
		c.ID = fmt.Sprintf("%s-c%d", prefix, i)
		cells[i] = c
	}
	ds.Pairs = append(ds.Pairs,
		domain.Pair{ID: prefix + "-p0", ExperimentID: expID, PreCell: cells[0], PostCell: cells[1], Distance: floatPtr(30e-6), Connected: true},
		domain.Pair{ID: prefix + "-p1", ExperimentID: expID, PreCell: cells[0], PostCell: cells[2], Distance: floatPtr(70e-6)},
		domain.Pair{ID: prefix + "-p2", ExperimentID: expID, PreCell: cells[1], PostCell: cells[2], Distance: floatPtr(130e-6), Connected: true},
	)
}

func writeSeedFile(t *testing.T) string {
	t.Helper()
	ds := domain.Dataset{
		Experiments: []domain.Experiment{
			{ID: "e-mouse", Species: domain.SpeciesMouse, ACSF: "2mM Ca & Mg", AgeDays: intPtr(45)},
			{ID: "e-human", Species: domain.SpeciesHuman},
		},
	}
	classPairs(&ds, "e-mouse", "m-l23", domain.Cell{TargetLayer: "2/3", Pyramidal: boolPtr(true)})
	classPairs(&ds, "e-mouse", "m-rorb", domain.Cell{TargetLayer: "4", CreType: "rorb"})
	classPairs(&ds, "e-mouse", "m-tlx3", domain.Cell{TargetLayer: "5", CreType: "tlx3"})
	classPairs(&ds, "e-mouse", "m-sim1", domain.Cell{TargetLayer: "5", CreType: "sim1"})
	classPairs(&ds, "e-mouse", "m-ntsr1", domain.Cell{TargetLayer: "6", CreType: "ntsr1"})
	for _, layer := range []string{"2", "3", "4", "5", "6"} {
		classPairs(&ds, "e-human", "h-l"+layer, domain.Cell{TargetLayer: layer, Pyramidal: boolPtr(true)})
	}

	payload, err := json.Marshal(ds)
	if err != nil {
		t.Fatalf("marshal dataset: %v", err)
	}
	path := filepath.Join(t.TempDir(), "dataset.json")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func TestRunBadFlag(t *testing.T) {
	if code := run([]string{"-definitely-not-a-flag"}); code != 2 {
		t.Fatalf("run returned %d, want 2", code)
	}
}

func TestRunUnknownStorageDriver(t *testing.T) {
	t.Setenv("SYNAPSECORE_STORAGE_DRIVER", "tape")
	if code := run(nil); code != 1 {
		t.Fatalf("run returned %d, want 1", code)
	}
}

func TestRunMissingSeedFile(t *testing.T) {
	t.Setenv("SYNAPSECORE_STORAGE_DRIVER", "memory")
	t.Setenv("SYNAPSECORE_BLOB_DRIVER", "memory")
	if code := run([]string{"-seed", filepath.Join(t.TempDir(), "missing.json")}); code != 1 {
		t.Fatalf("run returned %d, want 1", code)
	}
}

func TestRunEndToEnd(t *testing.T) {
	blobRoot := t.TempDir()
	t.Setenv("SYNAPSECORE_STORAGE_DRIVER", "memory")
	t.Setenv("SYNAPSECORE_BLOB_DRIVER", "fs")
	t.Setenv("SYNAPSECORE_BLOB_FS_ROOT", blobRoot)

	if code := run([]string{"-seed", writeSeedFile(t), "-prefix", "run1/"}); code != 0 {
		t.Fatalf("run returned %d, want 0", code)
	}

	csvPath := filepath.Join(blobRoot, "run1", "manuscript_fig_4.csv")
	csvData, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("read stored CSV: %v", err)
	}
	if len(csvData) == 0 {
		t.Fatalf("stored CSV is empty")
	}
	if _, err := os.Stat(filepath.Join(blobRoot, "run1", "manuscript_fig_4.png")); err != nil {
		t.Fatalf("stored figure missing: %v", err)
	}
}
