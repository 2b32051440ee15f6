package domain

// PairFilter selects pairs by experiment and pair attributes. Zero-valued
// (nil or empty) fields impose no constraint.
type PairFilter struct {
	Species Species `json:"species,omitempty"`
	// ACSF restricts to experiments recorded in the named solution.
	ACSF string `json:"acsf,omitempty"`
	// MinAgeDays / MaxAgeDays bound the subject age inclusively; pairs from
	// experiments without a reported age are excluded when either is set.
	MinAgeDays *int `json:"min_age_days,omitempty"`
	MaxAgeDays *int `json:"max_age_days,omitempty"`
	// MinDistance / MaxDistance bound the intersomatic distance in meters
	// (inclusive lower, exclusive upper). Setting either excludes pairs
	// without a reported distance.
	MinDistance *float64 `json:"min_distance,omitempty"`
	MaxDistance *float64 `json:"max_distance,omitempty"`
}

// HasDistanceBound reports whether the filter constrains distance at all.
func (f PairFilter) HasDistanceBound() bool {
	return f.MinDistance != nil || f.MaxDistance != nil
}

// Matches reports whether the pair, recorded under the given experiment,
// satisfies every supplied constraint.
func (f PairFilter) Matches(exp Experiment, pair Pair) bool {
	if f.Species != "" && exp.Species != f.Species {
		return false
	}
	if f.ACSF != "" && exp.ACSF != f.ACSF {
		return false
	}
	if f.MinAgeDays != nil || f.MaxAgeDays != nil {
		if exp.AgeDays == nil {
			return false
		}
		if f.MinAgeDays != nil && *exp.AgeDays < *f.MinAgeDays {
			return false
		}
		if f.MaxAgeDays != nil && *exp.AgeDays > *f.MaxAgeDays {
			return false
		}
	}
	if f.HasDistanceBound() {
		if pair.Distance == nil {
			return false
		}
		if f.MinDistance != nil && *pair.Distance < *f.MinDistance {
			return false
		}
		if f.MaxDistance != nil && *pair.Distance >= *f.MaxDistance {
			return false
		}
	}
	return true
}
