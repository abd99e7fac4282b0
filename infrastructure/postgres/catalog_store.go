package postgres

import (
	"context"

	"github.com/sentriq/maturion/internal/domain"
	"github.com/sentriq/maturion/internal/ports"
)

var _ ports.CatalogStore = (*DB)(nil)

// ActiveDomains returns all active domains ordered by order index.
func (db *DB) ActiveDomains(ctx context.Context) ([]domain.Domain, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, name, order_index, active
		FROM domains
		WHERE active
		ORDER BY order_index, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Domain
	for rows.Next() {
		var d domain.Domain
		if err := rows.Scan(&d.ID, &d.Name, &d.OrderIndex, &d.Active); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ActiveQuestions returns all active questions ordered by domain and
// question order index.
func (db *DB) ActiveQuestions(ctx context.Context) ([]domain.Question, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT q.id, q.domain_id, q.text, q.order_index, q.active
		FROM questions q
		JOIN domains d ON d.id = q.domain_id
		WHERE q.active AND d.active
		ORDER BY d.order_index, q.order_index, q.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Question
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.DomainID, &q.Text, &q.OrderIndex, &q.Active); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}
