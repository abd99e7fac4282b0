// Package httpapi exposes the scoring service over a JSON HTTP
// surface: evaluation results, response saves, catalog curation, and
// operational endpoints.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/sentriq/maturion/infrastructure/curation"
	"github.com/sentriq/maturion/internal/application"
	"github.com/sentriq/maturion/internal/domain"
	"github.com/sentriq/maturion/internal/ports"
)

// Server wires the application services to HTTP handlers.
type Server struct {
	scorer    *application.Scorer
	responses *application.Responses
	detector  *curation.Detector
	catalog   ports.CatalogStore
	limiter   *rate.Limiter
	logger    *slog.Logger
}

// New creates a Server. A nil limiter disables write-path throttling;
// a nil logger selects the default.
func New(
	scorer *application.Scorer,
	responses *application.Responses,
	detector *curation.Detector,
	catalog ports.CatalogStore,
	limiter *rate.Limiter,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		scorer:    scorer,
		responses: responses,
		detector:  detector,
		catalog:   catalog,
		limiter:   limiter,
		logger:    logger,
	}
}

// Routes returns the chi router for the full API surface.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Route("/evaluations/{evaluationID}", func(r chi.Router) {
		r.Get("/result", s.handleGetResult)
		r.Put("/responses/{questionID}", s.handlePutResponse)
	})
	r.Get("/catalog/duplicates", s.handleGetDuplicates)
	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGetResult runs a scoring run for the evaluation and renders
// the result. Scoring on read keeps dashboards consistent with the
// latest catalog even when no response was saved in between.
func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	evaluationID := chi.URLParam(r, "evaluationID")

	result, err := s.scorer.Score(r.Context(), evaluationID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// saveResponseRequest is the PUT body for a response save.
type saveResponseRequest struct {
	Value   int    `json:"value"`
	Comment string `json:"comment"`
}

// saveResponseReply pairs the stored row with the refreshed result.
type saveResponseReply struct {
	Response domain.Response         `json:"response"`
	Result   domain.EvaluationResult `json:"result"`
}

func (s *Server) handlePutResponse(w http.ResponseWriter, r *http.Request) {
	if s.limiter != nil && !s.limiter.Allow() {
		writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "too many requests, retry shortly"})
		return
	}

	var req saveResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}

	resp, result, err := s.responses.Save(r.Context(), application.SaveResponseInput{
		EvaluationID: chi.URLParam(r, "evaluationID"),
		QuestionID:   chi.URLParam(r, "questionID"),
		Value:        req.Value,
		Comment:      req.Comment,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saveResponseReply{Response: resp, Result: result})
}

func (s *Server) handleGetDuplicates(w http.ResponseWriter, r *http.Request) {
	questions, err := s.catalog.ActiveQuestions(r.Context())
	if err != nil {
		s.writeError(w, r, ports.NewStoreError("active questions", "load", err))
		return
	}
	pairs := s.detector.FindDuplicates(questions)
	if pairs == nil {
		pairs = []curation.DuplicatePair{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"duplicates": pairs})
}

// writeError maps service errors onto HTTP statuses. Internal details
// stay in the log; clients get a generic retry-capable message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": verr.Error()})
	case errors.Is(err, ports.ErrNotFound), errors.Is(err, domain.ErrEmptyEvaluationID):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "evaluation not found"})
	default:
		s.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "something went wrong, please retry"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
