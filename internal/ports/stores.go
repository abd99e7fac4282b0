// Package ports defines the boundary interfaces between the scoring
// core and its external collaborators: the catalog, response, and
// evaluation stores, plus the metrics collector. Adapters live under
// infrastructure/; fakes for testing live in internal/testutils.
package ports

import (
	"context"
	"time"

	"github.com/sentriq/maturion/internal/domain"
)

// CatalogStore provides read access to the static assessment catalog.
type CatalogStore interface {
	// ActiveDomains returns all active domains ordered by their
	// explicit order index.
	ActiveDomains(ctx context.Context) ([]domain.Domain, error)

	// ActiveQuestions returns all active questions across every
	// domain, ordered by domain and question order index.
	ActiveQuestions(ctx context.Context) ([]domain.Question, error)
}

// UpsertResponseParams carries one answer to be created or updated.
type UpsertResponseParams struct {
	// EvaluationID references the evaluation being answered.
	EvaluationID string

	// QuestionID references the answered question.
	QuestionID string

	// Value is the Likert answer in [1,5].
	Value int

	// Comment is optional free text; empty means no comment.
	Comment string
}

// ResponseStore provides access to raw question responses.
type ResponseStore interface {
	// ResponsesForEvaluation returns every response recorded for the
	// given evaluation. At most one response exists per question.
	ResponsesForEvaluation(ctx context.Context, evaluationID string) ([]domain.Response, error)

	// UpsertResponse creates the response row for the
	// (evaluation, question) pair or updates it in place, returning
	// the stored row. Implementations must make the create-or-update
	// atomic with respect to the pair's uniqueness constraint; a true
	// upsert primitive is preferred over check-then-insert.
	UpsertResponse(ctx context.Context, params UpsertResponseParams) (domain.Response, error)
}

// ComputedFields is the set of evaluation columns owned by the scoring
// run. Nothing else writes these after creation.
type ComputedFields struct {
	// Score is the overall score in [0,5].
	Score float64

	// Progress is the completion percentage in [0,100].
	Progress int

	// Status is derived from Progress.
	Status domain.EvaluationStatus

	// CompletedAt follows the set-once / clear-on-regression policy.
	CompletedAt *time.Time
}

// EvaluationStore provides access to persisted evaluation records.
type EvaluationStore interface {
	// EvaluationMeta loads the evaluation identified by id, including
	// the owning company's display name. Returns ErrNotFound when no
	// such evaluation exists.
	EvaluationMeta(ctx context.Context, id string) (domain.Evaluation, error)

	// SaveComputedFields writes the scoring run's output back to the
	// evaluation record. Callers treat failures as best-effort: they
	// log and keep the computed result.
	SaveComputedFields(ctx context.Context, id string, fields ComputedFields) error
}
