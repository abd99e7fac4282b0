package application

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/sentriq/maturion/internal/domain"
	"github.com/sentriq/maturion/internal/ports"
)

// Metric names emitted by the scorer.
const (
	// MetricScoringRuns counts scoring runs, labeled by resulting
	// evaluation status or "error".
	MetricScoringRuns = "scoring_runs_total"

	// MetricPersistFailures counts best-effort write-backs that failed.
	MetricPersistFailures = "scoring_persist_failures_total"

	// MetricEvaluationProgress gauges the latest progress percentage
	// per evaluation.
	MetricEvaluationProgress = "evaluation_progress_percent"
)

// Scorer runs the compute-and-persist scoring operation for an
// evaluation: it loads the catalog and responses, aggregates them into
// an EvaluationResult, and writes the computed fields back to the
// evaluation record.
//
// The computation itself is pure (see assembleResult); the write-back
// is best-effort. A failed write is logged and counted but the
// computed result is still returned, so the read path never fails
// because the write path did.
//
// Scorer is stateless apart from its injected collaborators and safe
// for concurrent use.
type Scorer struct {
	catalog     ports.CatalogStore
	responses   ports.ResponseStore
	evaluations ports.EvaluationStore
	metrics     ports.MetricsCollector
	logger      *slog.Logger
	tracer      trace.Tracer

	// now supplies the completion timestamp; replaceable in tests.
	now func() time.Time
}

// NewScorer creates a Scorer with the given collaborators. Passing
// nil metrics or logger selects no-op implementations.
func NewScorer(
	catalog ports.CatalogStore,
	responses ports.ResponseStore,
	evaluations ports.EvaluationStore,
	metrics ports.MetricsCollector,
	logger *slog.Logger,
) *Scorer {
	if metrics == nil {
		metrics = ports.NoopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scorer{
		catalog:     catalog,
		responses:   responses,
		evaluations: evaluations,
		metrics:     metrics,
		logger:      logger,
		tracer:      otel.Tracer("scorer"),
		now:         time.Now,
	}
}

// Score executes one scoring run for the given evaluation and returns
// the assembled result.
//
// Load failures are fatal: the run aborts with a StoreError naming
// what could not be loaded, and no partial result is produced. The
// write-back of computed fields is best-effort as described on Scorer.
func (s *Scorer) Score(ctx context.Context, evaluationID string) (domain.EvaluationResult, error) {
	if evaluationID == "" {
		return domain.EvaluationResult{}, domain.ErrEmptyEvaluationID
	}

	ctx, span := s.tracer.Start(ctx, "Scorer.Score",
		trace.WithAttributes(attribute.String("evaluation.id", evaluationID)),
	)
	defer span.End()

	start := time.Now()

	var (
		domains   []domain.Domain
		questions []domain.Question
		responses []domain.Response
		eval      domain.Evaluation
	)

	// The four loads are independent; fetch them concurrently.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if domains, err = s.catalog.ActiveDomains(gctx); err != nil {
			return ports.NewStoreError("active domains", "load", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if questions, err = s.catalog.ActiveQuestions(gctx); err != nil {
			return ports.NewStoreError("active questions", "load", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if responses, err = s.responses.ResponsesForEvaluation(gctx, evaluationID); err != nil {
			return ports.NewStoreError("responses", "load", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if eval, err = s.evaluations.EvaluationMeta(gctx, evaluationID); err != nil {
			return ports.NewStoreError("evaluation", "load", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		s.metrics.RecordCounter(MetricScoringRuns, 1, map[string]string{"status": "error"})
		return domain.EvaluationResult{}, err
	}

	result := assembleResult(eval, domains, questions, responses, s.now())

	s.persistComputedFields(ctx, result)

	s.metrics.RecordLatency("score", time.Since(start), map[string]string{"status": string(result.Status)})
	s.metrics.RecordCounter(MetricScoringRuns, 1, map[string]string{"status": string(result.Status)})
	s.metrics.RecordGauge(MetricEvaluationProgress, float64(result.Progress), map[string]string{"evaluation_id": result.EvaluationID})

	s.logger.DebugContext(ctx, "scoring run finished",
		"evaluation_id", result.EvaluationID,
		"overall_score", result.OverallScore,
		"progress", result.Progress,
		"status", result.Status,
	)

	return result, nil
}

// persistComputedFields writes the run's output back to the
// evaluation record. Failure is logged and counted, never returned.
func (s *Scorer) persistComputedFields(ctx context.Context, result domain.EvaluationResult) {
	fields := ports.ComputedFields{
		Score:       result.OverallScore,
		Progress:    result.Progress,
		Status:      result.Status,
		CompletedAt: result.CompletedAt,
	}
	if err := s.evaluations.SaveComputedFields(ctx, result.EvaluationID, fields); err != nil {
		perr := ports.NewPersistenceError(result.EvaluationID, err)
		s.metrics.RecordCounter(MetricPersistFailures, 1, nil)
		s.logger.ErrorContext(ctx, "computed fields write-back failed", "error", perr)
	}
}

// assembleResult is the pure computation step: catalog plus responses
// in, immutable EvaluationResult out. It never touches a store, which
// keeps it independently testable.
func assembleResult(
	eval domain.Evaluation,
	domains []domain.Domain,
	questions []domain.Question,
	responses []domain.Response,
	now time.Time,
) domain.EvaluationResult {
	domainResults := domain.AggregateDomains(domains, questions, responses)
	progress := domain.Progress(questions, responses)

	return domain.EvaluationResult{
		EvaluationID:   eval.ID,
		EvaluationName: eval.Name,
		CompanyName:    eval.CompanyName,
		OverallScore:   domain.OverallScore(domainResults),
		Progress:       progress,
		Status:         domain.StatusForProgress(progress),
		Domains:        domainResults,
		CreatedAt:      eval.CreatedAt,
		CompletedAt:    domain.NextCompletedAt(eval.CompletedAt, progress, now),
	}
}
