// Package testutils provides in-memory fake stores for testing the
// scoring core without a database. The fakes implement the store
// ports with mutex-guarded maps and configurable failure injection.
package testutils

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sentriq/maturion/internal/domain"
	"github.com/sentriq/maturion/internal/ports"
)

// FakeCatalogStore serves a fixed catalog from memory.
type FakeCatalogStore struct {
	// Domains and Questions are returned as-is, already sorted.
	Domains   []domain.Domain
	Questions []domain.Question

	// Err, when set, is returned by every method.
	Err error
}

var _ ports.CatalogStore = (*FakeCatalogStore)(nil)

// ActiveDomains implements ports.CatalogStore.
func (f *FakeCatalogStore) ActiveDomains(ctx context.Context) ([]domain.Domain, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Domains, nil
}

// ActiveQuestions implements ports.CatalogStore.
func (f *FakeCatalogStore) ActiveQuestions(ctx context.Context) ([]domain.Question, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Questions, nil
}

// FakeResponseStore keeps responses in memory keyed by the
// (evaluation, question) pair, mirroring the store-level uniqueness
// constraint.
type FakeResponseStore struct {
	mu        sync.Mutex
	responses map[string]domain.Response // key: evaluationID + "|" + questionID

	// Err, when set, is returned by every method.
	Err error

	// Now supplies timestamps; defaults to time.Now.
	Now func() time.Time
}

var _ ports.ResponseStore = (*FakeResponseStore)(nil)

// NewFakeResponseStore returns an empty response store.
func NewFakeResponseStore() *FakeResponseStore {
	return &FakeResponseStore{responses: make(map[string]domain.Response)}
}

func (f *FakeResponseStore) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

// Seed inserts responses directly, bypassing upsert semantics.
func (f *FakeResponseStore) Seed(responses ...domain.Response) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range responses {
		f.responses[r.EvaluationID+"|"+r.QuestionID] = r
	}
}

// ResponsesForEvaluation implements ports.ResponseStore. Results are
// sorted by question id for deterministic tests.
func (f *FakeResponseStore) ResponsesForEvaluation(ctx context.Context, evaluationID string) ([]domain.Response, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.Response
	for _, r := range f.responses {
		if r.EvaluationID == evaluationID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionID < out[j].QuestionID })
	return out, nil
}

// UpsertResponse implements ports.ResponseStore with true upsert
// semantics: one row per (evaluation, question), latest value wins.
func (f *FakeResponseStore) UpsertResponse(ctx context.Context, params ports.UpsertResponseParams) (domain.Response, error) {
	if f.Err != nil {
		return domain.Response{}, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	key := params.EvaluationID + "|" + params.QuestionID
	if existing, ok := f.responses[key]; ok {
		existing.Value = params.Value
		existing.Comment = params.Comment
		existing.UpdatedAt = f.now()
		f.responses[key] = existing
		return existing, nil
	}

	created := domain.Response{
		ID:           uuid.NewString(),
		EvaluationID: params.EvaluationID,
		QuestionID:   params.QuestionID,
		Value:        params.Value,
		Comment:      params.Comment,
		CreatedAt:    f.now(),
		UpdatedAt:    f.now(),
	}
	f.responses[key] = created
	return created, nil
}

// Len reports the number of stored response rows.
func (f *FakeResponseStore) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.responses)
}

// FakeEvaluationStore keeps evaluation records in memory and captures
// every computed-fields write for assertions.
type FakeEvaluationStore struct {
	mu          sync.Mutex
	evaluations map[string]domain.Evaluation

	// SaveErr, when set, makes SaveComputedFields fail while loads
	// keep working. This exercises the best-effort write-back path.
	SaveErr error

	// saved records every SaveComputedFields call in order.
	saved []ports.ComputedFields
}

var _ ports.EvaluationStore = (*FakeEvaluationStore)(nil)

// NewFakeEvaluationStore returns a store holding the given evaluations.
func NewFakeEvaluationStore(evaluations ...domain.Evaluation) *FakeEvaluationStore {
	m := make(map[string]domain.Evaluation, len(evaluations))
	for _, e := range evaluations {
		m[e.ID] = e
	}
	return &FakeEvaluationStore{evaluations: m}
}

// EvaluationMeta implements ports.EvaluationStore.
func (f *FakeEvaluationStore) EvaluationMeta(ctx context.Context, id string) (domain.Evaluation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.evaluations[id]
	if !ok {
		return domain.Evaluation{}, ports.ErrNotFound
	}
	return e, nil
}

// SaveComputedFields implements ports.EvaluationStore, applying the
// write to the in-memory record like the real adapter would.
func (f *FakeEvaluationStore) SaveComputedFields(ctx context.Context, id string, fields ports.ComputedFields) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.SaveErr != nil {
		return f.SaveErr
	}
	e, ok := f.evaluations[id]
	if !ok {
		return ports.ErrNotFound
	}
	e.Score = fields.Score
	e.Progress = fields.Progress
	e.Status = fields.Status
	e.CompletedAt = fields.CompletedAt
	f.evaluations[id] = e
	f.saved = append(f.saved, fields)
	return nil
}

// Saved returns a copy of all captured computed-fields writes.
func (f *FakeEvaluationStore) Saved() []ports.ComputedFields {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]ports.ComputedFields, len(f.saved))
	copy(out, f.saved)
	return out
}

// Evaluation returns the current in-memory record for id.
func (f *FakeEvaluationStore) Evaluation(id string) (domain.Evaluation, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.evaluations[id]
	return e, ok
}
