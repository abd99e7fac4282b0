// Package domain contains the pure evaluation model: the assessment
// catalog (domains and questions), stored responses, and the scoring
// and aggregation logic that turns responses into maturity results.
// Nothing in this package touches a data store or the network.
package domain

import "time"

// Domain is a thematic group of assessment questions, such as
// "Access Control" or "Incident Response". Domains carry an explicit
// order index because dashboards render them in catalog order.
type Domain struct {
	// ID uniquely identifies the domain within the catalog.
	ID string `json:"id"`

	// Name is the display name shown on dashboards and reports.
	Name string `json:"name"`

	// OrderIndex controls the stable presentation order of domains.
	OrderIndex int `json:"order_index"`

	// Active indicates whether the domain participates in scoring.
	Active bool `json:"active"`
}

// Question is a single assessment item belonging to exactly one domain.
// Questions are catalog data and immutable once answered against.
type Question struct {
	// ID uniquely identifies the question within the catalog.
	ID string `json:"id"`

	// DomainID references the owning Domain.
	DomainID string `json:"domain_id"`

	// Text is the question prompt presented to the respondent.
	Text string `json:"text"`

	// OrderIndex controls presentation order within the domain.
	OrderIndex int `json:"order_index"`

	// Active indicates whether the question participates in scoring
	// and progress calculation. Deactivated questions are excluded
	// even when responses for them still exist.
	Active bool `json:"active"`
}

// Response records one answer to one question within one evaluation.
// A (EvaluationID, QuestionID) pair is unique; re-answering updates the
// existing row rather than creating a new one.
type Response struct {
	// ID uniquely identifies the response row.
	ID string `json:"id"`

	// EvaluationID references the evaluation this answer belongs to.
	EvaluationID string `json:"evaluation_id"`

	// QuestionID references the answered question.
	QuestionID string `json:"question_id"`

	// Value is the Likert answer in the range [1,5].
	Value int `json:"value"`

	// Comment is optional free text attached to the answer.
	// An empty string means no comment.
	Comment string `json:"comment,omitempty"`

	// CreatedAt records when the question was first answered.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt records the last re-answer, if any.
	UpdatedAt time.Time `json:"updated_at"`
}
