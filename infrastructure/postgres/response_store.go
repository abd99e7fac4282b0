package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/sentriq/maturion/internal/domain"
	"github.com/sentriq/maturion/internal/ports"
)

var _ ports.ResponseStore = (*DB)(nil)

// ResponsesForEvaluation returns every response recorded for the
// evaluation.
func (db *DB) ResponsesForEvaluation(ctx context.Context, evaluationID string) ([]domain.Response, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, evaluation_id, question_id, value, COALESCE(comment, ''), created_at, updated_at
		FROM responses
		WHERE evaluation_id = $1
	`, evaluationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Response
	for rows.Next() {
		var r domain.Response
		if err := rows.Scan(&r.ID, &r.EvaluationID, &r.QuestionID, &r.Value, &r.Comment, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// UpsertResponse creates or updates the response row for the
// (evaluation, question) pair in a single statement, so the uniqueness
// constraint can never be raced between a check and an insert.
func (db *DB) UpsertResponse(ctx context.Context, params ports.UpsertResponseParams) (domain.Response, error) {
	var r domain.Response
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO responses (id, evaluation_id, question_id, value, comment)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		ON CONFLICT (evaluation_id, question_id) DO UPDATE
		SET value = EXCLUDED.value,
		    comment = EXCLUDED.comment,
		    updated_at = now()
		RETURNING id, evaluation_id, question_id, value, COALESCE(comment, ''), created_at, updated_at
	`, uuid.NewString(), params.EvaluationID, params.QuestionID, params.Value, params.Comment).
		Scan(&r.ID, &r.EvaluationID, &r.QuestionID, &r.Value, &r.Comment, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return domain.Response{}, err
	}
	return r, nil
}
