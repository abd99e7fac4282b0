package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/sentriq/maturion/infrastructure/curation"
	"github.com/sentriq/maturion/internal/application"
	"github.com/sentriq/maturion/internal/domain"
	"github.com/sentriq/maturion/internal/testutils"
)

func newTestServer(t *testing.T, limiter *rate.Limiter) (*Server, *testutils.FakeEvaluationStore) {
	t.Helper()

	catalog := &testutils.FakeCatalogStore{
		Domains: []domain.Domain{
			{ID: "d1", Name: "Access Control", OrderIndex: 1, Active: true},
		},
		Questions: []domain.Question{
			{ID: "q1", DomainID: "d1", Text: "Are accounts reviewed quarterly?", Active: true},
			{ID: "q2", DomainID: "d1", Text: "Are accounts reviewed quartely?", Active: true},
		},
	}
	responses := testutils.NewFakeResponseStore()
	evaluations := testutils.NewFakeEvaluationStore(domain.Evaluation{
		ID: "e1", Name: "Annual assessment", CompanyName: "Acme Corp",
	})

	scorer := application.NewScorer(catalog, responses, evaluations, nil, nil)
	svc := application.NewResponses(responses, scorer)
	detector, err := curation.NewDetector(curation.DetectorConfig{Threshold: 0.85})
	require.NoError(t, err)

	return New(scorer, svc, detector, catalog, limiter, nil), evaluations
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	return rec
}

// TestServer_Healthz verifies the liveness endpoint.
func TestServer_Healthz(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

// TestServer_GetResult verifies the result endpoint renders a full
// evaluation result and persists computed fields on the way.
func TestServer_GetResult(t *testing.T) {
	srv, evaluations := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodGet, "/evaluations/e1/result", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.EvaluationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "e1", result.EvaluationID)
	assert.Equal(t, "Acme Corp", result.CompanyName)
	assert.Equal(t, domain.StatusNotStarted, result.Status)
	require.Len(t, result.Domains, 1)
	assert.Equal(t, domain.MaturityInitial, result.Domains[0].Maturity)

	saved, ok := evaluations.Evaluation("e1")
	require.True(t, ok)
	assert.Equal(t, domain.StatusNotStarted, saved.Status)
}

// TestServer_GetResult_NotFound verifies unknown evaluations map to
// 404 with a generic body.
func TestServer_GetResult_NotFound(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodGet, "/evaluations/missing/result", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"evaluation not found"}`, rec.Body.String())
}

// TestServer_PutResponse verifies the save endpoint upserts the answer
// and returns the refreshed result.
func TestServer_PutResponse(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodPut, "/evaluations/e1/responses/q1", `{"value":4,"comment":"audited"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var reply saveResponseReply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.Equal(t, 4, reply.Response.Value)
	assert.Equal(t, "audited", reply.Response.Comment)
	assert.Equal(t, 50, reply.Result.Progress)
	assert.Equal(t, domain.StatusInProgress, reply.Result.Status)
}

// TestServer_PutResponse_InvalidValue verifies out-of-scale values map
// to 400.
func TestServer_PutResponse_InvalidValue(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodPut, "/evaluations/e1/responses/q1", `{"value":9}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "value must be between 1 and 5")
}

// TestServer_PutResponse_MalformedBody verifies body decode failures
// map to 400.
func TestServer_PutResponse_MalformedBody(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodPut, "/evaluations/e1/responses/q1", `{"value":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestServer_PutResponse_RateLimited verifies the write-path limiter
// answers 429 once the bucket is drained.
func TestServer_PutResponse_RateLimited(t *testing.T) {
	srv, _ := newTestServer(t, rate.NewLimiter(rate.Limit(0.0001), 1))

	first := doRequest(t, srv, http.MethodPut, "/evaluations/e1/responses/q1", `{"value":3}`)
	require.Equal(t, http.StatusOK, first.Code)

	second := doRequest(t, srv, http.MethodPut, "/evaluations/e1/responses/q2", `{"value":3}`)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

// TestServer_GetDuplicates verifies the curation endpoint reports the
// near-duplicate fixture pair.
func TestServer_GetDuplicates(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodGet, "/catalog/duplicates", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Duplicates []curation.DuplicatePair `json:"duplicates"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Duplicates, 1)
	assert.Equal(t, "q1", body.Duplicates[0].A.ID)
	assert.Equal(t, "q2", body.Duplicates[0].B.ID)
}
