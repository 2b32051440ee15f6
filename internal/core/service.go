package core

import (
	"context"
	"fmt"
	"time"

	"synapsecore/pkg/domain"
)

// Service exposes the dataset import and analysis operations used by the
// report pipeline, instrumented through the configured metrics recorder and
// tracer.
type Service struct {
	store   PersistentStore
	metrics MetricsRecorder
	tracer  Tracer
	est     domain.ProportionEstimator
}

// Option customizes service construction.
type Option func(*Service)

// WithMetricsRecorder wires a metrics recorder into the service.
func WithMetricsRecorder(rec MetricsRecorder) Option {
	return func(s *Service) { s.metrics = rec }
}

// WithTracer wires a tracer into the service.
func WithTracer(tracer Tracer) Option {
	return func(s *Service) { s.tracer = tracer }
}

// WithProportionEstimator overrides the confidence-interval method used for
// connection probabilities.
func WithProportionEstimator(est domain.ProportionEstimator) Option {
	return func(s *Service) { s.est = est }
}

// NewService constructs a service backed by the supplied store.
func NewService(store PersistentStore, opts ...Option) *Service {
	s := &Service{store: store, est: domain.WilsonEstimator{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying storage implementation.
func (s *Service) Store() PersistentStore {
	return s.store
}

// Estimator returns the configured confidence-interval method.
func (s *Service) Estimator() domain.ProportionEstimator {
	return s.est
}

func (s *Service) observe(ctx context.Context, operation string, fn func(context.Context) error) error {
	start := time.Now()
	var span TraceSpan
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operation)
	}
	err := fn(ctx)
	if span != nil {
		span.End(err)
	}
	if s.metrics != nil {
		s.metrics.Observe(ctx, operation, err == nil, time.Since(start))
	}
	return err
}

// ImportDataset persists the dataset's experiments and pairs within a single
// transaction. Pairs reference experiments by ID; records without IDs are
// assigned fresh ones, in which case pairs must reference experiments by
// their position-assigned IDs supplied in the dataset.
func (s *Service) ImportDataset(ctx context.Context, dataset Dataset) (Result, error) {
	var res Result
	err := s.observe(ctx, "import_dataset", func(ctx context.Context) error {
		var err error
		res, err = s.store.RunInTransaction(ctx, func(tx Transaction) error {
			for _, exp := range dataset.Experiments {
				if _, err := tx.CreateExperiment(exp); err != nil {
					return fmt.Errorf("import experiment: %w", err)
				}
			}
			for _, pair := range dataset.Pairs {
				if _, err := tx.CreatePair(pair); err != nil {
					return fmt.Errorf("import pair: %w", err)
				}
			}
			return nil
		})
		return err
	})
	return res, err
}

// QueryPairs returns the recorded pairs matching every supplied filter
// constraint.
func (s *Service) QueryPairs(ctx context.Context, filter PairFilter) ([]Pair, error) {
	var pairs []Pair
	err := s.observe(ctx, "query_pairs", func(ctx context.Context) error {
		return s.store.View(ctx, func(view TransactionView) error {
			pairs = view.QueryPairs(filter)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return pairs, nil
}

// ClassConnectivity bundles the outcome of one query+classify+measure pass.
type ClassConnectivity struct {
	Pairs   []Pair
	Classes ClassMap
	Matrix  ConnectivityMatrix
}

// MeasureClassConnectivity queries pairs with the filter, classifies every
// cell into the first matching class, and estimates per-class-pair
// connection probabilities.
func (s *Service) MeasureClassConnectivity(ctx context.Context, filter PairFilter, classes []CellClass) (ClassConnectivity, error) {
	var out ClassConnectivity
	err := s.observe(ctx, "measure_class_connectivity", func(ctx context.Context) error {
		return s.store.View(ctx, func(view TransactionView) error {
			out.Pairs = view.QueryPairs(filter)
			out.Classes = domain.ClassifyCells(classes, out.Pairs)
			out.Matrix = domain.MeasureConnectivity(out.Pairs, out.Classes, s.est)
			return nil
		})
	})
	if err != nil {
		return ClassConnectivity{}, err
	}
	return out, nil
}
