package report

import (
	"image/color"

	"synapsecore/pkg/domain"
)

// ClassSpec couples a cell class with its figure short name and color.
type ClassSpec struct {
	Class     domain.CellClass
	ShortName string
	Color     color.RGBA
}

// ConnectivityPanel holds the data for one wide class-connectivity plot:
// per class a probability point with a vertical confidence-interval bar at a
// categorical x position.
type ConnectivityPanel struct {
	ClassNames []string
	Estimates  []domain.Estimate
	Colors     []color.RGBA
	// YMax fixes the probability axis range [0, YMax].
	YMax float64
}

// DistancePanel holds one paired mini-plot: a histogram of probed-pair
// distances above a smoothed probability-vs-distance curve with confidence
// band.
type DistancePanel struct {
	ClassName  string
	Color      color.RGBA
	HistCounts []int
	// HistEdges are the histogram bin edges in meters (len(HistCounts)+1).
	HistEdges []float64
	Curve     domain.Curve
	// XMax fixes the distance axis range [0, XMax] in meters.
	XMax float64
	// YMax fixes the probability axis range; HistYMax the count axis range.
	YMax     float64
	HistYMax float64
}

// SpeciesRow is one figure row: the connectivity panel plus five paired
// distance mini-plots sharing axis ranges.
type SpeciesRow struct {
	Species      domain.Species
	Connectivity ConnectivityPanel
	Distance     []DistancePanel
}

// Figure is the explicit layout object for the manuscript figure: a fixed
// 1200x600 grid with one row per species.
type Figure struct {
	Width  int
	Height int
	Rows   []SpeciesRow
}

// NewFigure returns an empty figure at the manuscript's fixed dimensions.
func NewFigure() *Figure {
	return &Figure{Width: 1200, Height: 600}
}
