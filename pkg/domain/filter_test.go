package domain

import (
	"math"
	"testing"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestPairFilterMatches(t *testing.T) {
	age := intPtr(45)
	exp := Experiment{ID: "e1", Species: SpeciesMouse, ACSF: "2mM Ca & Mg", AgeDays: age}

	cases := []struct {
		name   string
		filter PairFilter
		exp    Experiment
		pair   Pair
		want   bool
	}{
		{"empty filter matches", PairFilter{}, exp, Pair{}, true},
		{"species match", PairFilter{Species: SpeciesMouse}, exp, Pair{}, true},
		{"species mismatch", PairFilter{Species: SpeciesHuman}, exp, Pair{}, false},
		{"acsf mismatch", PairFilter{ACSF: "1.3mM Ca & 1mM Mg"}, exp, Pair{}, false},
		{"min age met", PairFilter{MinAgeDays: intPtr(40)}, exp, Pair{}, true},
		{"min age unmet", PairFilter{MinAgeDays: intPtr(50)}, exp, Pair{}, false},
		{"age bound excludes unreported age", PairFilter{MinAgeDays: intPtr(40)}, Experiment{Species: SpeciesMouse}, Pair{}, false},
		{"max distance exclusive", PairFilter{MaxDistance: floatPtr(100e-6)}, exp, Pair{Distance: floatPtr(100e-6)}, false},
		{"max distance below bound", PairFilter{MaxDistance: floatPtr(100e-6)}, exp, Pair{Distance: floatPtr(99e-6)}, true},
		{"min distance inclusive", PairFilter{MinDistance: floatPtr(50e-6)}, exp, Pair{Distance: floatPtr(50e-6)}, true},
		{"distance bound excludes unreported distance", PairFilter{MaxDistance: floatPtr(100e-6)}, exp, Pair{}, false},
		{"infinite max still requires distance", PairFilter{MaxDistance: floatPtr(math.Inf(1))}, exp, Pair{}, false},
		{"infinite max passes any distance", PairFilter{MaxDistance: floatPtr(math.Inf(1))}, exp, Pair{Distance: floatPtr(5e-3)}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.filter.Matches(tc.exp, tc.pair); got != tc.want {
				t.Fatalf("Matches = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPairFilterHasDistanceBound(t *testing.T) {
	if (PairFilter{}).HasDistanceBound() {
		t.Fatalf("empty filter should have no distance bound")
	}
	if !(PairFilter{MinDistance: floatPtr(0)}).HasDistanceBound() {
		t.Fatalf("min-only filter should report a distance bound")
	}
	if !(PairFilter{MaxDistance: floatPtr(1)}).HasDistanceBound() {
		t.Fatalf("max-only filter should report a distance bound")
	}
}
