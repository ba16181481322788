// Package domain runs workout readings through the calculator and collects the results.
package domain

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"example.com/workout/internal/observability"
	"example.com/workout/internal/report"
	"example.com/workout/internal/training"
)

// Package is one raw sensor reading: a workout code plus its positional fields.
type Package struct {
	WorkoutType string    `json:"workout_type"`
	Data        []float64 `json:"data"`
}

// Outcome is the result of summarizing a single package.
type Outcome struct {
	Index   int
	Package Package
	Summary training.Summary
	Message string
	Err     error
}

// OK reports whether the package produced a summary.
func (o Outcome) OK() bool { return o.Err == nil }

// Batch is a set of packages submitted on behalf of one caller. TenantID and
// RequestedBy are optional and only used to attribute logs and reports.
type Batch struct {
	TenantID    string
	RequestedBy string
	Packages    []Package
}

// Report aggregates the outcomes of a batch in input order.
type Report struct {
	TenantID    string
	RequestedBy string
	Outcomes    []Outcome
	Failed      int
}

// Err joins the per-package errors, or returns nil when every package succeeded.
func (r Report) Err() error {
	var errs []error
	for _, o := range r.Outcomes {
		if o.Err != nil {
			errs = append(errs, fmt.Errorf("package %d (%s): %w", o.Index, o.Package.WorkoutType, o.Err))
		}
	}
	return errors.Join(errs...)
}

// Option configures optional behaviour for the Service.
type Option func(*Service)

// WithLogger overrides the logger used to report rejected readings.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithFailFast makes Run stop at the first rejected package.
func WithFailFast(failFast bool) Option {
	return func(s *Service) {
		s.failFast = failFast
	}
}

// Service orchestrates the calculator for single readings and batches.
type Service struct {
	logger   *zap.Logger
	failFast bool
}

// NewService constructs a Service.
func NewService(opts ...Option) *Service {
	s := &Service{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize reads, computes and formats one package. The returned Outcome carries
// the same error as the second return value.
func (s *Service) Summarize(ctx context.Context, pkg Package) (Outcome, error) {
	return s.summarize(ctx, s.logger, pkg)
}

func (s *Service) summarize(ctx context.Context, logger *zap.Logger, pkg Package) (Outcome, error) {
	out := Outcome{Package: pkg}
	if err := ctx.Err(); err != nil {
		out.Err = err
		return out, err
	}

	rec, err := training.Read(pkg.WorkoutType, pkg.Data)
	if err != nil {
		observability.RecordRejected(err)
		logger.Warn("reading rejected",
			zap.String("workout_type", pkg.WorkoutType),
			zap.Float64s("data", pkg.Data),
			zap.String("reason", training.ErrorType(err)),
			zap.Error(err),
		)
		out.Err = err
		return out, err
	}

	out.Summary = rec.Summary()
	out.Message = report.Message(out.Summary)
	observability.RecordSummary(out.Summary)
	logger.Debug("reading summarized",
		zap.String("workout_type", pkg.WorkoutType),
		zap.Float64("distance_km", out.Summary.DistanceKm),
		zap.Float64("calories_kcal", out.Summary.CaloriesKcal),
	)
	return out, nil
}

// Run summarizes anonymous packages in input order. See RunBatch.
func (s *Service) Run(ctx context.Context, packages []Package) (Report, error) {
	return s.RunBatch(ctx, Batch{Packages: packages})
}

// RunBatch summarizes the batch in input order. A rejected package is recorded
// in the report and processing continues, unless the service is fail-fast, in
// which case RunBatch returns the partial report together with the first error.
// Cancellation of ctx always stops the run.
func (s *Service) RunBatch(ctx context.Context, batch Batch) (Report, error) {
	rep := Report{
		TenantID:    batch.TenantID,
		RequestedBy: batch.RequestedBy,
		Outcomes:    make([]Outcome, 0, len(batch.Packages)),
	}
	logger := s.logger
	if batch.TenantID != "" {
		logger = logger.With(zap.String("tenant_id", batch.TenantID))
	}
	if batch.RequestedBy != "" {
		logger = logger.With(zap.String("requested_by", batch.RequestedBy))
	}

	for i, pkg := range batch.Packages {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		out, err := s.summarize(ctx, logger.With(zap.Int("index", i)), pkg)
		out.Index = i
		rep.Outcomes = append(rep.Outcomes, out)
		if err == nil {
			continue
		}
		rep.Failed++
		if s.failFast || !training.IsRejection(err) {
			return rep, fmt.Errorf("package %d (%s): %w", i, pkg.WorkoutType, err)
		}
	}
	logger.Info("batch summarized", zap.Int("total", len(batch.Packages)), zap.Int("failed", rep.Failed))
	return rep, nil
}
