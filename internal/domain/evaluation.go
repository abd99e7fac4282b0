package domain

import "time"

// EvaluationStatus tracks where an evaluation sits in its lifecycle.
// Status is derived from progress on every scoring run; there is no
// terminal state, so any status can be revisited as data changes.
type EvaluationStatus string

// Evaluation lifecycle states.
const (
	// StatusNotStarted means no active question has been answered yet.
	StatusNotStarted EvaluationStatus = "not_started"

	// StatusInProgress means some but not all active questions have
	// been answered.
	StatusInProgress EvaluationStatus = "in_progress"

	// StatusCompleted means every active question has been answered.
	StatusCompleted EvaluationStatus = "completed"
)

// Evaluation is the persisted assessment record for one company.
// Score, Progress, Status, and CompletedAt hold the last computed
// values; the scoring run is their only writer besides creation.
type Evaluation struct {
	// ID uniquely identifies the evaluation.
	ID string `json:"id"`

	// Name is the evaluation's display name.
	Name string `json:"name"`

	// CompanyName is the display name of the assessed company.
	CompanyName string `json:"company_name"`

	// Score is the last computed overall score in [0,5].
	Score float64 `json:"score"`

	// Progress is the last computed completion percentage in [0,100].
	Progress int `json:"progress"`

	// Status is derived from Progress; see StatusForProgress.
	Status EvaluationStatus `json:"status"`

	// CreatedAt records when the evaluation was created.
	CreatedAt time.Time `json:"created_at"`

	// CompletedAt is set when progress first reaches 100 and cleared
	// if progress later drops below 100.
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// DomainResult is the computed outcome for one domain within one
// scoring run. It is derived data, recomputed from scratch on every
// run and never mutated incrementally.
type DomainResult struct {
	// DomainID references the scored Domain.
	DomainID string `json:"domain_id"`

	// DomainName is carried along for presentation.
	DomainName string `json:"domain_name"`

	// Score is the mean of answered response values, rounded to two
	// decimals. Zero when the domain has no answers or no questions.
	Score float64 `json:"score"`

	// TotalQuestions is the number of active questions in the domain.
	TotalQuestions int `json:"total_questions"`

	// AnsweredQuestions is the number of those with a response.
	AnsweredQuestions int `json:"answered_questions"`

	// Maturity is the band for Score, or MaturityNotEvaluated for
	// domains that own zero questions.
	Maturity MaturityLevel `json:"maturity"`
}

// EvaluationResult is the immutable outcome of one scoring run.
// Every dashboard, PDF report, and sector comparison consumes this
// shape; the Domains slice preserves catalog order.
type EvaluationResult struct {
	// EvaluationID references the scored evaluation.
	EvaluationID string `json:"evaluation_id"`

	// EvaluationName is the evaluation's display name.
	EvaluationName string `json:"evaluation_name"`

	// CompanyName is the assessed company's display name.
	CompanyName string `json:"company_name"`

	// OverallScore is the mean of domain scores, including zero-scored
	// empty domains, rounded to two decimals.
	OverallScore float64 `json:"overall_score"`

	// Progress is the percentage of answered active questions.
	Progress int `json:"progress"`

	// Status is the lifecycle state derived from Progress.
	Status EvaluationStatus `json:"status"`

	// Domains holds one result per active domain, in catalog order.
	Domains []DomainResult `json:"domains"`

	// CreatedAt is the evaluation's creation time.
	CreatedAt time.Time `json:"created_at"`

	// CompletedAt reflects the completion policy; see NextCompletedAt.
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// StatusForProgress derives the evaluation status from a progress
// percentage: completed at 100, not started at 0, in progress
// otherwise.
func StatusForProgress(progress int) EvaluationStatus {
	switch {
	case progress >= 100:
		return StatusCompleted
	case progress <= 0:
		return StatusNotStarted
	default:
		return StatusInProgress
	}
}

// NextCompletedAt applies the completion-timestamp policy: the
// timestamp is set exactly once, when progress first reaches 100, and
// is cleared again if progress later drops below 100 (the catalog can
// grow after completion). The clearing is deliberate, not an accident
// of recomputation.
func NextCompletedAt(current *time.Time, progress int, now time.Time) *time.Time {
	if progress < 100 {
		return nil
	}
	if current != nil {
		return current
	}
	return &now
}
