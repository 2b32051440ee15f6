package domain

import "testing"

func boolPtr(v bool) *bool { return &v }

func TestCellClassMatches(t *testing.T) {
	pyr := CellClass{TargetLayer: "2/3", Pyramidal: TriTrue}
	cre := CellClass{CreType: "rorb"}

	cases := []struct {
		name  string
		class CellClass
		cell  Cell
		want  bool
	}{
		{"layer and morphology match", pyr, Cell{TargetLayer: "2/3", Pyramidal: boolPtr(true)}, true},
		{"wrong layer", pyr, Cell{TargetLayer: "5", Pyramidal: boolPtr(true)}, false},
		{"morphology call missing", pyr, Cell{TargetLayer: "2/3"}, false},
		{"morphology call negative", pyr, Cell{TargetLayer: "2/3", Pyramidal: boolPtr(false)}, false},
		{"cre match ignores layer", cre, Cell{TargetLayer: "4", CreType: "rorb"}, true},
		{"cre mismatch", cre, Cell{CreType: "tlx3"}, false},
		{"empty class matches anything", CellClass{}, Cell{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.class.Matches(tc.cell); got != tc.want {
				t.Fatalf("Matches = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCellClassName(t *testing.T) {
	cases := []struct {
		class CellClass
		want  string
	}{
		{CellClass{TargetLayer: "2/3", Pyramidal: TriTrue}, "L2/3 pyramidal"},
		{CellClass{CreType: "sim1"}, "sim1"},
		{CellClass{TargetLayer: "5", CreType: "tlx3", Pyramidal: TriFalse}, "L5 tlx3 nonpyramidal"},
		{CellClass{DisplayName: "custom"}, "custom"},
		{CellClass{}, "all cells"},
	}
	for _, tc := range cases {
		if got := tc.class.Name(); got != tc.want {
			t.Fatalf("Name() = %q, want %q", got, tc.want)
		}
	}
}

func TestClassifyCellsFirstMatchWins(t *testing.T) {
	broad := CellClass{TargetLayer: "2/3"}
	narrow := CellClass{TargetLayer: "2/3", Pyramidal: TriTrue}
	cell := Cell{ID: "c1", TargetLayer: "2/3", Pyramidal: boolPtr(true)}
	pairs := []Pair{{ID: "p1", PreCell: cell, PostCell: Cell{ID: "c2", CreType: "rorb"}}}

	classes := ClassifyCells([]CellClass{broad, narrow}, pairs)
	if got := classes["c1"]; got != broad {
		t.Fatalf("expected earlier class to win, got %+v", got)
	}
	if _, ok := classes["c2"]; ok {
		t.Fatalf("expected unmatched cell to be absent")
	}
}

func TestClassifyCellsTotalAndDeterministic(t *testing.T) {
	classes := []CellClass{{CreType: "rorb"}, {TargetLayer: "5"}}
	pairs := []Pair{
		{ID: "p1", PreCell: Cell{ID: "a", CreType: "rorb"}, PostCell: Cell{ID: "b", TargetLayer: "5"}},
		{ID: "p2", PreCell: Cell{ID: "b", TargetLayer: "5"}, PostCell: Cell{ID: "c"}},
	}
	first := ClassifyCells(classes, pairs)
	second := ClassifyCells(classes, pairs)
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected two classified cells, got %d and %d", len(first), len(second))
	}
	for id, class := range first {
		if second[id] != class {
			t.Fatalf("classification not deterministic for %s", id)
		}
	}
}
