package domain

import "strings"

// Tri is a three-valued predicate operand: unset (no constraint), true, or
// false. It keeps CellClass comparable so classes can key result maps.
type Tri int8

// Tri states.
const (
	TriUnset Tri = iota
	TriTrue
	TriFalse
)

// TriOf converts a required boolean into its Tri representation.
func TriOf(v bool) Tri {
	if v {
		return TriTrue
	}
	return TriFalse
}

// CellClass is a named predicate over cell attributes. Its identity is its
// filter parameters; two classes with equal parameters are the same class.
// Immutable once constructed.
type CellClass struct {
	// TargetLayer, when non-empty, requires an exact layer match.
	TargetLayer string
	// CreType, when non-empty, requires an exact driver-line match.
	CreType string
	// Pyramidal, when set, requires a matching morphology call.
	Pyramidal Tri
	// DisplayName overrides the derived name when non-empty.
	DisplayName string
}

// Matches reports whether the cell satisfies every criterion of the class.
func (c CellClass) Matches(cell Cell) bool {
	if c.TargetLayer != "" && cell.TargetLayer != c.TargetLayer {
		return false
	}
	if c.CreType != "" && cell.CreType != c.CreType {
		return false
	}
	if c.Pyramidal != TriUnset {
		if cell.Pyramidal == nil {
			return false
		}
		if TriOf(*cell.Pyramidal) != c.Pyramidal {
			return false
		}
	}
	return true
}

// Name returns the display name when set, otherwise a name derived from the
// filter criteria, e.g. "L2/3 pyramidal" or "rorb".
func (c CellClass) Name() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	var parts []string
	if c.TargetLayer != "" {
		parts = append(parts, "L"+c.TargetLayer)
	}
	if c.CreType != "" {
		parts = append(parts, c.CreType)
	}
	switch c.Pyramidal {
	case TriTrue:
		parts = append(parts, "pyramidal")
	case TriFalse:
		parts = append(parts, "nonpyramidal")
	}
	if len(parts) == 0 {
		return "all cells"
	}
	return strings.Join(parts, " ")
}

// ClassPair keys connectivity results by an ordered (presynaptic,
// postsynaptic) pair of classes. Probing is directional, so ordered keys are
// used; for the same-class diagonal consumed by the figure the ordering is
// immaterial.
type ClassPair struct {
	Pre  CellClass
	Post CellClass
}

// ClassMap records the class assigned to each cell, keyed by cell ID.
// Unclassified cells are absent.
type ClassMap map[string]CellClass

// ClassifyCells assigns every cell appearing in any pair to the first class
// in order that matches it. The result is deterministic and total: a cell
// either maps to exactly one class or is absent.
func ClassifyCells(classes []CellClass, pairs []Pair) ClassMap {
	out := make(ClassMap)
	seen := make(map[string]bool)
	assign := func(cell Cell) {
		if seen[cell.ID] {
			return
		}
		seen[cell.ID] = true
		for _, class := range classes {
			if class.Matches(cell) {
				out[cell.ID] = class
				return
			}
		}
	}
	for _, pair := range pairs {
		assign(pair.PreCell)
		assign(pair.PostCell)
	}
	return out
}
