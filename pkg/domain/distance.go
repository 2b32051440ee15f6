package domain

import "math"

// Curve is a sampled connection-probability-versus-distance trace with
// confidence bounds. X values are strictly increasing; windows that
// contained no samples carry NaN in Prob, Lower, and Upper.
type Curve struct {
	X     []float64 `json:"x"`
	Prob  []float64 `json:"prob"`
	Lower []float64 `json:"lower"`
	Upper []float64 `json:"upper"`
}

// Len returns the number of samples in the curve.
func (c Curve) Len() int { return len(c.X) }

// DistanceCurve estimates the local connection probability as a function of
// intersomatic distance. connected and distance are parallel sequences; for
// each sample point x (stepping by spacing from window/2 across the observed
// range) the proportion connected among pairs within window/2 of x is
// estimated with est. Empty windows emit NaN rather than dividing by zero.
func DistanceCurve(connected []bool, distance []float64, window, spacing float64, est ProportionEstimator) Curve {
	if est == nil {
		est = WilsonEstimator{}
	}
	var curve Curve
	if len(distance) == 0 || len(connected) != len(distance) || window <= 0 || spacing <= 0 {
		return curve
	}
	maxDist := distance[0]
	for _, d := range distance[1:] {
		if d > maxDist {
			maxDist = d
		}
	}
	half := window / 2
	for x := half; x <= maxDist+half; x += spacing {
		probed, conn := 0, 0
		for i, d := range distance {
			if math.Abs(d-x) <= half {
				probed++
				if connected[i] {
					conn++
				}
			}
		}
		curve.X = append(curve.X, x)
		if probed == 0 {
			curve.Prob = append(curve.Prob, math.NaN())
			curve.Lower = append(curve.Lower, math.NaN())
			curve.Upper = append(curve.Upper, math.NaN())
			continue
		}
		e := est.Estimate(conn, probed)
		curve.Prob = append(curve.Prob, e.Point)
		curve.Lower = append(curve.Lower, e.Lower)
		curve.Upper = append(curve.Upper, e.Upper)
	}
	return curve
}

// BinEdges generates half-open histogram bin edges from start up to (but not
// including) stop, stepping by step.
func BinEdges(start, stop, step float64) []float64 {
	if step <= 0 {
		return nil
	}
	var edges []float64
	// tolerance guards against float accumulation producing an extra edge
	for x := start; x < stop-step*1e-9; x += step {
		edges = append(edges, x)
	}
	return edges
}

// Histogram counts values into the half-open bins [edges[i], edges[i+1]).
// Values outside the edge range are dropped. The returned counts slice has
// len(edges)-1 entries.
func Histogram(values []float64, edges []float64) []int {
	if len(edges) < 2 {
		return nil
	}
	counts := make([]int, len(edges)-1)
	for _, v := range values {
		if v < edges[0] || v >= edges[len(edges)-1] {
			continue
		}
		// linear scan; bin counts are tiny for figure histograms
		for i := 0; i < len(counts); i++ {
			if v >= edges[i] && v < edges[i+1] {
				counts[i]++
				break
			}
		}
	}
	return counts
}
