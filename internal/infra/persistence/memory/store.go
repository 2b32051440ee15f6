// Package memory provides an in-memory implementation of the pair-store
// persistence contract, used for tests and as the transactional core that
// the durable backends embed.
package memory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"

	"synapsecore/pkg/domain"
)

// Compile-time contract assertion ensuring memory.Store adheres to the domain persistence interface.
var _ domain.PersistentStore = (*Store)(nil)

type (
	// Experiment aliases domain.Experiment for in-memory persistence operations.
	Experiment = domain.Experiment
	// Pair aliases domain.Pair.
	Pair = domain.Pair
	// PairFilter aliases domain.PairFilter.
	PairFilter = domain.PairFilter
	// Change aliases domain.Change captured in transactions.
	Change = domain.Change
	// Result aliases domain.Result summarizing a committed transaction.
	Result = domain.Result
	// Transaction aliases domain.Transaction representing a mutable unit of work.
	Transaction = domain.Transaction
	// TransactionView aliases domain.TransactionView providing read-only state.
	TransactionView = domain.TransactionView
)

type memoryState struct {
	experiments map[string]Experiment
	pairs       map[string]Pair
}

// Snapshot captures a point-in-time clone of the store state.
type Snapshot struct {
	Experiments map[string]Experiment `json:"experiments"`
	Pairs       map[string]Pair       `json:"pairs"`
}

func newMemoryState() memoryState {
	return memoryState{
		experiments: make(map[string]Experiment),
		pairs:       make(map[string]Pair),
	}
}

func (st memoryState) clone() memoryState {
	out := newMemoryState()
	for k, v := range st.experiments {
		out.experiments[k] = cloneExperiment(v)
	}
	for k, v := range st.pairs {
		out.pairs[k] = clonePair(v)
	}
	return out
}

func cloneExperiment(e Experiment) Experiment {
	if e.AgeDays != nil {
		age := *e.AgeDays
		e.AgeDays = &age
	}
	return e
}

func clonePair(p Pair) Pair {
	if p.Distance != nil {
		d := *p.Distance
		p.Distance = &d
	}
	p.PreCell = cloneCell(p.PreCell)
	p.PostCell = cloneCell(p.PostCell)
	return p
}

func cloneCell(c domain.Cell) domain.Cell {
	if c.Pyramidal != nil {
		pyr := *c.Pyramidal
		c.Pyramidal = &pyr
	}
	return c
}

func snapshotFromMemoryState(state memoryState) Snapshot {
	s := Snapshot{
		Experiments: make(map[string]Experiment, len(state.experiments)),
		Pairs:       make(map[string]Pair, len(state.pairs)),
	}
	for k, v := range state.experiments {
		s.Experiments[k] = cloneExperiment(v)
	}
	for k, v := range state.pairs {
		s.Pairs[k] = clonePair(v)
	}
	return s
}

func memoryStateFromSnapshot(s Snapshot) memoryState {
	state := newMemoryState()
	for k, v := range s.Experiments {
		state.experiments[k] = cloneExperiment(v)
	}
	for k, v := range s.Pairs {
		// drop pairs whose experiment is missing from the snapshot
		if _, ok := s.Experiments[v.ExperimentID]; !ok {
			continue
		}
		state.pairs[k] = clonePair(v)
	}
	return state
}

// Store provides an in-memory transactional store for the core domain.
type Store struct {
	mu    sync.RWMutex
	state memoryState
}

// NewStore constructs an empty in-memory store.
func NewStore() *Store {
	return &Store{state: newMemoryState()}
}

func newID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}

// ExportState clones the current store state for external persistence.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromMemoryState(s.state)
}

// ImportState replaces the store state with the provided snapshot.
func (s *Store) ImportState(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = memoryStateFromSnapshot(snapshot)
}

type transaction struct {
	state   memoryState
	changes []Change
}

type transactionView struct {
	state *memoryState
}

func newTransactionView(state *memoryState) TransactionView {
	return transactionView{state: state}
}

// ListExperiments returns all experiments in the snapshot, ordered by ID.
func (v transactionView) ListExperiments() []Experiment {
	out := make([]Experiment, 0, len(v.state.experiments))
	for _, e := range v.state.experiments {
		out = append(out, cloneExperiment(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ListPairs returns all pairs in the snapshot, ordered by ID.
func (v transactionView) ListPairs() []Pair {
	out := make([]Pair, 0, len(v.state.pairs))
	for _, p := range v.state.pairs {
		out = append(out, clonePair(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// FindExperiment retrieves an experiment by ID from the snapshot.
func (v transactionView) FindExperiment(id string) (Experiment, bool) {
	e, ok := v.state.experiments[id]
	if !ok {
		return Experiment{}, false
	}
	return cloneExperiment(e), true
}

// QueryPairs returns the pairs satisfying every supplied filter constraint,
// ordered by ID.
func (v transactionView) QueryPairs(filter PairFilter) []Pair {
	var out []Pair
	for _, p := range v.state.pairs {
		exp, ok := v.state.experiments[p.ExperimentID]
		if !ok {
			continue
		}
		if filter.Matches(exp, p) {
			out = append(out, clonePair(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RunInTransaction executes fn within a transactional copy of the store state.
func (s *Store) RunInTransaction(_ context.Context, fn func(tx Transaction) error) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{state: s.state.clone()}
	if err := fn(tx); err != nil {
		return Result{}, err
	}
	s.state = tx.state
	return Result{Changes: tx.changes}, nil
}

// View executes fn against a read-only snapshot of the store state.
func (s *Store) View(_ context.Context, fn func(TransactionView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.state.clone()
	return fn(newTransactionView(&snapshot))
}

// ListExperiments returns all committed experiments, ordered by ID.
func (s *Store) ListExperiments() []Experiment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newTransactionView(&s.state).ListExperiments()
}

// ListPairs returns all committed pairs, ordered by ID.
func (s *Store) ListPairs() []Pair {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newTransactionView(&s.state).ListPairs()
}

// QueryPairs returns committed pairs matching the filter, ordered by ID.
func (s *Store) QueryPairs(filter PairFilter) []Pair {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newTransactionView(&s.state).QueryPairs(filter)
}

// Close releases store resources; a no-op for the in-memory backend.
func (s *Store) Close() error { return nil }

func (tx *transaction) recordChange(change Change) {
	tx.changes = append(tx.changes, change)
}

// Snapshot returns a read-only view over the transactional state.
func (tx *transaction) Snapshot() TransactionView {
	return newTransactionView(&tx.state)
}

// FindExperiment exposes experiment lookup within the transaction scope.
func (tx *transaction) FindExperiment(id string) (Experiment, bool) {
	e, ok := tx.state.experiments[id]
	if !ok {
		return Experiment{}, false
	}
	return cloneExperiment(e), true
}

// CreateExperiment validates and stores a new experiment, assigning an ID
// when none is supplied.
func (tx *transaction) CreateExperiment(exp Experiment) (Experiment, error) {
	if exp.Species == "" {
		return Experiment{}, fmt.Errorf("experiment species required")
	}
	if exp.ID == "" {
		exp.ID = newID()
	}
	if _, exists := tx.state.experiments[exp.ID]; exists {
		return Experiment{}, fmt.Errorf("experiment %s already exists", exp.ID)
	}
	if exp.AgeDays != nil && *exp.AgeDays < 0 {
		return Experiment{}, fmt.Errorf("experiment age cannot be negative")
	}
	tx.state.experiments[exp.ID] = cloneExperiment(exp)
	tx.recordChange(Change{Entity: domain.EntityExperiment, Action: domain.ActionCreate, ID: exp.ID})
	return cloneExperiment(exp), nil
}

// CreatePair validates and stores a new probed pair, assigning an ID when
// none is supplied. The referenced experiment must exist.
func (tx *transaction) CreatePair(pair Pair) (Pair, error) {
	if pair.ExperimentID == "" {
		return Pair{}, fmt.Errorf("pair experiment id required")
	}
	if _, ok := tx.state.experiments[pair.ExperimentID]; !ok {
		return Pair{}, fmt.Errorf("experiment %s not found", pair.ExperimentID)
	}
	if pair.Distance != nil && *pair.Distance < 0 {
		return Pair{}, fmt.Errorf("pair distance cannot be negative")
	}
	if pair.PreCell.ID == "" || pair.PostCell.ID == "" {
		return Pair{}, fmt.Errorf("pair cells require ids")
	}
	if pair.ID == "" {
		pair.ID = newID()
	}
	if _, exists := tx.state.pairs[pair.ID]; exists {
		return Pair{}, fmt.Errorf("pair %s already exists", pair.ID)
	}
	pair.PreCell.ExperimentID = pair.ExperimentID
	pair.PostCell.ExperimentID = pair.ExperimentID
	tx.state.pairs[pair.ID] = clonePair(pair)
	tx.recordChange(Change{Entity: domain.EntityPair, Action: domain.ActionCreate, ID: pair.ID})
	return clonePair(pair), nil
}
