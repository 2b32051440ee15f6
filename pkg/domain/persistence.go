package domain

import "context"

// Transaction exposes the domain mutations that a persistence
// implementation must support within an atomic scope.
type Transaction interface {
	Snapshot() TransactionView
	CreateExperiment(Experiment) (Experiment, error)
	CreatePair(Pair) (Pair, error)
	FindExperiment(id string) (Experiment, bool)
}

// TransactionView provides read-only access to committed state.
type TransactionView interface {
	ListExperiments() []Experiment
	ListPairs() []Pair
	FindExperiment(id string) (Experiment, bool)
	QueryPairs(PairFilter) []Pair
}

// PersistentStore is a minimal abstraction over durable backends. It mirrors
// the subset of store capabilities used directly by higher layers.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(TransactionView) error) error
	ListExperiments() []Experiment
	ListPairs() []Pair
	QueryPairs(PairFilter) []Pair
	Close() error
}
