package domain

import "math"

// Estimate is a two-sided confidence-interval estimate of a proportion.
// Invariant: 0 <= Lower <= Point <= Upper <= 1 for any probed count > 0.
type Estimate struct {
	Point float64 `json:"point"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// ProportionEstimator computes a confidence interval for a binomial
// proportion. The interval method is pluggable; implementations must return
// a defined degenerate estimate when probed is zero rather than failing.
type ProportionEstimator interface {
	Estimate(connected, probed int) Estimate
}

// z for a two-sided 95% interval.
const z95 = 1.959963984540054

// WilsonEstimator computes Wilson score intervals, the default interval
// method for connection probabilities.
type WilsonEstimator struct {
	// Z is the standard-normal quantile for the desired coverage; zero
	// selects the two-sided 95% value.
	Z float64
}

// Estimate returns the Wilson score interval around the sample proportion.
// A zero probed count yields the degenerate all-zero estimate.
func (w WilsonEstimator) Estimate(connected, probed int) Estimate {
	if probed <= 0 {
		return Estimate{}
	}
	z := w.Z
	if z == 0 {
		z = z95
	}
	n := float64(probed)
	p := float64(connected) / n
	z2 := z * z
	denom := 1 + z2/n
	center := (p + z2/(2*n)) / denom
	half := z / denom * math.Sqrt(p*(1-p)/n+z2/(4*n*n))
	lower := center - half
	upper := center + half
	if lower < 0 {
		lower = 0
	}
	if upper > 1 {
		upper = 1
	}
	return Estimate{Point: p, Lower: lower, Upper: upper}
}

// ConnectivityResult aggregates the probing outcome for one ordered class
// pair. Invariants: NConnected <= NProbed and the probability estimate
// bounds satisfy Lower <= Point <= Upper, all within [0,1].
type ConnectivityResult struct {
	NProbed               int      `json:"n_probed"`
	NConnected            int      `json:"n_connected"`
	ConnectionProbability Estimate `json:"connection_probability"`
	ProbedPairs           []Pair   `json:"-"`
	ConnectedPairs        []Pair   `json:"-"`
}

// ConnectivityMatrix holds per-class-pair connectivity results keyed by
// ordered (pre, post) class.
type ConnectivityMatrix map[ClassPair]ConnectivityResult

// Result returns the entry for the ordered (pre, post) class pair.
func (m ConnectivityMatrix) Result(pre, post CellClass) (ConnectivityResult, bool) {
	r, ok := m[ClassPair{Pre: pre, Post: post}]
	return r, ok
}

// MeasureConnectivity groups pairs by the classes of their pre- and
// postsynaptic cells and estimates a connection probability per group.
// Pairs with an unclassified cell on either side are skipped. Class pairs
// with zero probed pairs never appear in the matrix; callers that require
// an entry for a specific class pair must treat absence as degenerate.
func MeasureConnectivity(pairs []Pair, classes ClassMap, est ProportionEstimator) ConnectivityMatrix {
	if est == nil {
		est = WilsonEstimator{}
	}
	matrix := make(ConnectivityMatrix)
	for _, pair := range pairs {
		pre, ok := classes[pair.PreCell.ID]
		if !ok {
			continue
		}
		post, ok := classes[pair.PostCell.ID]
		if !ok {
			continue
		}
		key := ClassPair{Pre: pre, Post: post}
		r := matrix[key]
		r.NProbed++
		r.ProbedPairs = append(r.ProbedPairs, pair)
		if pair.Connected {
			r.NConnected++
			r.ConnectedPairs = append(r.ConnectedPairs, pair)
		}
		matrix[key] = r
	}
	for key, r := range matrix {
		r.ConnectionProbability = est.Estimate(r.NConnected, r.NProbed)
		matrix[key] = r
	}
	return matrix
}
