package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/sentriq/maturion/internal/domain"
	"github.com/sentriq/maturion/internal/ports"
)

// SaveResponseInput carries one answer submitted for an evaluation.
type SaveResponseInput struct {
	// EvaluationID references the evaluation being answered.
	EvaluationID string `validate:"required"`

	// QuestionID references the answered question.
	QuestionID string `validate:"required"`

	// Value is the Likert answer, constrained to [1,5].
	Value int `validate:"required,min=1,max=5"`

	// Comment is optional free text attached to the answer.
	Comment string `validate:"max=2000"`
}

// Responses saves answers and keeps evaluation scores current: every
// successful save triggers a scoring run, so the persisted score,
// progress, and status always reflect the latest answers.
type Responses struct {
	store  ports.ResponseStore
	scorer *Scorer
}

// NewResponses creates a Responses service backed by the given store
// and scorer.
func NewResponses(store ports.ResponseStore, scorer *Scorer) *Responses {
	return &Responses{store: store, scorer: scorer}
}

// Save validates and upserts one answer, then re-scores the
// evaluation. The returned result reflects the evaluation state after
// the save. Re-answering a question updates its existing row; exactly
// one response exists per (evaluation, question) pair.
func (r *Responses) Save(ctx context.Context, in SaveResponseInput) (domain.Response, domain.EvaluationResult, error) {
	if err := validate.Struct(in); err != nil {
		return domain.Response{}, domain.EvaluationResult{}, toValidationError(err)
	}

	resp, err := r.store.UpsertResponse(ctx, ports.UpsertResponseParams{
		EvaluationID: in.EvaluationID,
		QuestionID:   in.QuestionID,
		Value:        in.Value,
		Comment:      in.Comment,
	})
	if err != nil {
		return domain.Response{}, domain.EvaluationResult{}, ports.NewStoreError("response", "upsert", err)
	}

	result, err := r.scorer.Score(ctx, in.EvaluationID)
	if err != nil {
		return resp, domain.EvaluationResult{}, fmt.Errorf("re-score after save: %w", err)
	}
	return resp, result, nil
}

// toValidationError converts validator field errors into the domain's
// ValidationError so callers need not depend on the validator package.
func toValidationError(err error) error {
	verr := domain.NewValidationError("Response")
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.AddError(err.Error())
		return verr
	}
	for _, fe := range fieldErrs {
		switch fe.Field() {
		case "Value":
			verr.AddError(fmt.Sprintf("value must be between %d and %d", domain.MinResponseValue, domain.MaxResponseValue))
		default:
			verr.AddError(fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return verr
}
