package core

import "synapsecore/pkg/domain"

type (
	Species            = domain.Species
	Experiment         = domain.Experiment
	Cell               = domain.Cell
	Pair               = domain.Pair
	Dataset            = domain.Dataset
	PairFilter         = domain.PairFilter
	CellClass          = domain.CellClass
	ClassPair          = domain.ClassPair
	ClassMap           = domain.ClassMap
	Estimate           = domain.Estimate
	ConnectivityResult = domain.ConnectivityResult
	ConnectivityMatrix = domain.ConnectivityMatrix
	Curve              = domain.Curve
	Change             = domain.Change
	Result             = domain.Result
)

const (
	SpeciesMouse = domain.SpeciesMouse
	SpeciesHuman = domain.SpeciesHuman
)
