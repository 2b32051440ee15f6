package report

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"math"

	"synapsecore/internal/core"
	"synapsecore/pkg/domain"
)

// Query constants for the manuscript: mouse experiments are restricted to
// the standard recording solution and adult subjects.
const (
	mouseACSF   = "2mM Ca & Mg"
	mouseMinAge = 40
	// nearRangeMax is the distance bound for the class-connectivity panels.
	nearRangeMax = 100e-6
	// distanceWindow is both the smoothing window and the sample spacing of
	// the probability-vs-distance curves.
	distanceWindow = 40e-6
	// histMax bounds the distance histograms; bins step by histStep.
	histMax  = 180e-6
	histStep = 20e-6
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

// MouseClasses returns the five mouse cell classes of the figure, in panel
// order.
func MouseClasses() []ClassSpec {
	return []ClassSpec{
		{Class: domain.CellClass{TargetLayer: "2/3", Pyramidal: domain.TriTrue}, ShortName: "L2/3", Color: color.RGBA{249, 144, 92, 255}},
		{Class: domain.CellClass{CreType: "rorb"}, ShortName: "Rorb", Color: color.RGBA{100, 202, 103, 255}},
		{Class: domain.CellClass{CreType: "tlx3"}, ShortName: "Tlx3", Color: color.RGBA{81, 221, 209, 255}},
		{Class: domain.CellClass{CreType: "sim1"}, ShortName: "Sim1", Color: color.RGBA{45, 77, 247, 255}},
		{Class: domain.CellClass{CreType: "ntsr1"}, ShortName: "Ntsr1", Color: color.RGBA{153, 51, 255, 255}},
	}
}

// HumanClasses returns the five human cell classes of the figure, in panel
// order.
func HumanClasses() []ClassSpec {
	return []ClassSpec{
		{Class: domain.CellClass{TargetLayer: "2", Pyramidal: domain.TriTrue}, ShortName: "L2", Color: color.RGBA{247, 118, 118, 255}},
		{Class: domain.CellClass{TargetLayer: "3", Pyramidal: domain.TriTrue}, ShortName: "L3", Color: color.RGBA{246, 197, 97, 255}},
		{Class: domain.CellClass{TargetLayer: "4", Pyramidal: domain.TriTrue}, ShortName: "L4", Color: color.RGBA{100, 202, 103, 255}},
		{Class: domain.CellClass{TargetLayer: "5", Pyramidal: domain.TriTrue}, ShortName: "L5", Color: color.RGBA{107, 155, 250, 255}},
		{Class: domain.CellClass{TargetLayer: "6", Pyramidal: domain.TriTrue}, ShortName: "L6", Color: color.RGBA{153, 51, 255, 255}},
	}
}

// speciesSpec fixes the per-row query, classes, axis ranges, and both panel
// letters (near-range connectivity panel, distance panels).
type speciesSpec struct {
	species    domain.Species
	baseFilter domain.PairFilter
	classes    []ClassSpec
	connLetter string
	distLetter string
	probYMax   float64
	histYMax   float64
}

func speciesSpecs() []speciesSpec {
	return []speciesSpec{
		{
			species:    domain.SpeciesMouse,
			baseFilter: domain.PairFilter{Species: domain.SpeciesMouse, ACSF: mouseACSF, MinAgeDays: intPtr(mouseMinAge)},
			classes:    MouseClasses(),
			connLetter: "A",
			distLetter: "B",
			probYMax:   0.3,
			histYMax:   215,
		},
		{
			species:    domain.SpeciesHuman,
			baseFilter: domain.PairFilter{Species: domain.SpeciesHuman},
			classes:    HumanClasses(),
			connLetter: "C",
			distLetter: "D",
			probYMax:   0.6,
			histYMax:   50,
		},
	}
}

// ClassSummary reports one class's near-range connectivity, mirrored to the
// run log.
type ClassSummary struct {
	Species    domain.Species
	ClassName  string
	NConnected int
	NProbed    int
	Estimate   domain.Estimate
}

// Output bundles the rendered report artifacts.
type Output struct {
	CSV       []byte
	PNG       []byte
	Summaries []ClassSummary
}

// Builder assembles the manuscript figure from the analysis service.
type Builder struct {
	Service *core.Service
	// Log receives per-class summary lines; nil discards them.
	Log io.Writer
}

// Build runs the full fixed orchestration: near-range class connectivity per
// species, then all-distance histograms and smoothed probability-vs-distance
// curves per class; the same numbers drawn into the figure are written to
// the CSV export in a fixed order. Any missing class-pair entry or query
// failure aborts the build.
func (b *Builder) Build(ctx context.Context) (Output, error) {
	figure := NewFigure()
	csv := &csvWriter{}
	var summaries []ClassSummary

	specs := speciesSpecs()

	// near-range connectivity panels
	for i := range specs {
		spec := &specs[i]
		filter := spec.baseFilter
		filter.MaxDistance = floatPtr(nearRangeMax)
		measured, err := b.Service.MeasureClassConnectivity(ctx, filter, classList(spec.classes))
		if err != nil {
			return Output{}, fmt.Errorf("%s near-range connectivity: %w", spec.species, err)
		}

		panel := ConnectivityPanel{YMax: spec.probYMax}
		var nConnected, nProbed []int
		var points, lowers, uppers []float64
		for _, cs := range spec.classes {
			result, ok := measured.Matrix.Result(cs.Class, cs.Class)
			if !ok {
				return Output{}, fmt.Errorf("%s: no probed %s pairs under %.0f um", spec.species, cs.ShortName, nearRangeMax*1e6)
			}
			panel.ClassNames = append(panel.ClassNames, cs.ShortName)
			panel.Estimates = append(panel.Estimates, result.ConnectionProbability)
			panel.Colors = append(panel.Colors, cs.Color)
			nConnected = append(nConnected, result.NConnected)
			nProbed = append(nProbed, result.NProbed)
			points = append(points, result.ConnectionProbability.Point)
			lowers = append(lowers, result.ConnectionProbability.Lower)
			uppers = append(uppers, result.ConnectionProbability.Upper)

			summary := ClassSummary{
				Species:    spec.species,
				ClassName:  cs.Class.Name(),
				NConnected: result.NConnected,
				NProbed:    result.NProbed,
				Estimate:   result.ConnectionProbability,
			}
			summaries = append(summaries, summary)
			if b.Log != nil {
				fmt.Fprintf(b.Log, "Cell class: %s  connected: %d  probed: %d  probability: %0.3f  min_ci: %0.3f  max_ci: %0.3f\n",
					summary.ClassName, summary.NConnected, summary.NProbed,
					summary.Estimate.Point, summary.Estimate.Lower, summary.Estimate.Upper)
			}
		}

		letter := spec.connLetter
		csv.WriteStrings(fmt.Sprintf("Figure 4%s cell classes", letter), panel.ClassNames)
		csv.WriteInts(fmt.Sprintf("Figure 4%s n connected pairs < 100um", letter), nConnected)
		csv.WriteInts(fmt.Sprintf("Figure 4%s n probed pairs < 100um", letter), nProbed)
		csv.WriteFloats(fmt.Sprintf("Figure 4%s connection probability < 100um", letter), points)
		csv.WriteFloats(fmt.Sprintf("Figure 4%s connection probability < 100um lower 95%% confidence interval", letter), lowers)
		csv.WriteFloats(fmt.Sprintf("Figure 4%s connection probability < 100um upper 95%% confidence interval", letter), uppers)

		figure.Rows = append(figure.Rows, SpeciesRow{Species: spec.species, Connectivity: panel})
	}

	// all-distance histograms and probability-vs-distance curves; the
	// distance bound keeps pairs without a reported distance excluded
	for i := range specs {
		spec := &specs[i]
		filter := spec.baseFilter
		filter.MaxDistance = floatPtr(math.Inf(1))
		measured, err := b.Service.MeasureClassConnectivity(ctx, filter, classList(spec.classes))
		if err != nil {
			return Output{}, fmt.Errorf("%s all-distance connectivity: %w", spec.species, err)
		}

		edges := domain.BinEdges(0, histMax, histStep)
		for _, cs := range spec.classes {
			result, ok := measured.Matrix.Result(cs.Class, cs.Class)
			if !ok {
				return Output{}, fmt.Errorf("%s: no probed %s pairs at any distance", spec.species, cs.ShortName)
			}
			connected := make([]bool, len(result.ProbedPairs))
			distances := make([]float64, len(result.ProbedPairs))
			for j, pair := range result.ProbedPairs {
				connected[j] = pair.Connected
				distances[j] = *pair.Distance
			}
			curve := domain.DistanceCurve(connected, distances, distanceWindow, distanceWindow, b.Service.Estimator())
			counts := domain.Histogram(distances, edges)

			panel := DistancePanel{
				ClassName:  cs.ShortName,
				Color:      cs.Color,
				HistCounts: counts,
				HistEdges:  edges,
				Curve:      curve,
				XMax:       histMax,
				YMax:       spec.probYMax,
				HistYMax:   spec.histYMax,
			}
			figure.Rows[i].Distance = append(figure.Rows[i].Distance, panel)

			letter := spec.distLetter
			csv.WriteInts(fmt.Sprintf("Figure 4%s, %s histogram values", letter, cs.ShortName), counts)
			csv.WriteFloats(fmt.Sprintf("Figure 4%s, %s histogram bin edges", letter, cs.ShortName), edges)
			csv.WriteFloats(fmt.Sprintf("Figure 4%s, %s distance plot x vals", letter, cs.ShortName), curve.X)
			csv.WriteFloats(fmt.Sprintf("Figure 4%s, %s distance plot trace", letter, cs.ShortName), curve.Prob)
			csv.WriteFloats(fmt.Sprintf("Figure 4%s, %s distance plot upper CI", letter, cs.ShortName), curve.Upper)
			csv.WriteFloats(fmt.Sprintf("Figure 4%s, %s distance plot lower CI", letter, cs.ShortName), curve.Lower)
		}
	}

	pngBytes, err := figure.RenderPNG()
	if err != nil {
		return Output{}, fmt.Errorf("render figure: %w", err)
	}
	return Output{CSV: csv.Bytes(), PNG: pngBytes, Summaries: summaries}, nil
}

func classList(specs []ClassSpec) []domain.CellClass {
	out := make([]domain.CellClass, len(specs))
	for i, cs := range specs {
		out[i] = cs.Class
	}
	return out
}
