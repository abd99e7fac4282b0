package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/sentriq/maturion/internal/domain"
	"github.com/sentriq/maturion/internal/ports"
)

var _ ports.EvaluationStore = (*DB)(nil)

// EvaluationMeta loads one evaluation with its company display name.
func (db *DB) EvaluationMeta(ctx context.Context, id string) (domain.Evaluation, error) {
	var e domain.Evaluation
	err := db.Pool.QueryRow(ctx, `
		SELECT e.id, e.name, c.name, e.score, e.progress, e.status, e.created_at, e.completed_at
		FROM evaluations e
		JOIN companies c ON c.id = e.company_id
		WHERE e.id = $1
	`, id).Scan(&e.ID, &e.Name, &e.CompanyName, &e.Score, &e.Progress, &e.Status, &e.CreatedAt, &e.CompletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Evaluation{}, ports.ErrNotFound
	}
	if err != nil {
		return domain.Evaluation{}, err
	}
	return e, nil
}

// SaveComputedFields writes the scoring run's output back to the
// evaluation record. The scoring run is the only writer of these
// columns besides creation.
func (db *DB) SaveComputedFields(ctx context.Context, id string, fields ports.ComputedFields) error {
	tag, err := db.Pool.Exec(ctx, `
		UPDATE evaluations
		SET score = $2, progress = $3, status = $4, completed_at = $5, updated_at = now()
		WHERE id = $1
	`, id, fields.Score, fields.Progress, fields.Status, fields.CompletedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrNotFound
	}
	return nil
}
