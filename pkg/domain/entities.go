// Package domain defines the core entities, value types, and analysis
// primitives for multipatch connectivity datasets.
package domain

// EntityType identifies the type of record stored in the core domain.
type EntityType string

// Supported entity type identifiers used in Change records and persistence buckets.
const (
	// EntityExperiment identifies a recording-session record.
	EntityExperiment EntityType = "experiment"
	// EntityPair identifies a probed cell-pair record.
	EntityPair EntityType = "pair"
)

// Species enumerates the organisms represented in the dataset.
type Species string

// Species values present in connectivity datasets.
const (
	SpeciesMouse Species = "mouse"
	SpeciesHuman Species = "human"
)

// Experiment captures the session-level attributes shared by every pair
// recorded in one multipatch experiment.
type Experiment struct {
	ID      string  `json:"id"`
	Species Species `json:"species"`
	// ACSF names the recording solution, e.g. "2mM Ca & Mg".
	ACSF string `json:"acsf,omitempty"`
	// AgeDays is the subject age in days; nil when unreported.
	AgeDays *int `json:"age_days,omitempty"`
}

// Cell describes one recorded neuron. Attributes may be empty when the
// corresponding annotation was not made for the experiment.
type Cell struct {
	ID           string `json:"id"`
	ExperimentID string `json:"experiment_id"`
	// TargetLayer is the cortical layer the cell was targeted in ("2/3", "5", ...).
	TargetLayer string `json:"target_layer,omitempty"`
	// CreType is the genetic driver line label ("rorb", "tlx3", ...).
	CreType string `json:"cre_type,omitempty"`
	// Pyramidal reports the morphology call; nil when no call was made.
	Pyramidal *bool `json:"pyramidal,omitempty"`
}

// Pair is a directed attempt to detect a synaptic connection from a
// presynaptic to a postsynaptic recorded cell. Pairs are read-only once
// fetched from storage; the pre/post cells are embedded as they were
// recorded.
type Pair struct {
	ID           string `json:"id"`
	ExperimentID string `json:"experiment_id"`
	PreCell      Cell   `json:"pre_cell"`
	PostCell     Cell   `json:"post_cell"`
	// Distance is the intersomatic distance in meters; nil when unreported.
	Distance *float64 `json:"distance,omitempty"`
	// Connected reports whether a synaptic connection was detected.
	Connected bool `json:"connected"`
}

// Dataset bundles the records accepted by a bulk import.
type Dataset struct {
	Experiments []Experiment `json:"experiments"`
	Pairs       []Pair       `json:"pairs"`
}

// Action enumerates mutation kinds recorded in transaction change sets.
type Action string

// Mutation kinds captured per transaction.
const (
	ActionCreate Action = "create"
)

// Change records a single entity mutation applied within a transaction.
type Change struct {
	Entity EntityType `json:"entity"`
	Action Action     `json:"action"`
	ID     string     `json:"id"`
}

// Result summarizes the mutations applied by a committed transaction.
type Result struct {
	Changes []Change `json:"changes,omitempty"`
}
