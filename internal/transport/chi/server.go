package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fuse-search/fuse/internal/domain"
	"github.com/fuse-search/fuse/internal/metrics"
	feedbackuc "github.com/fuse-search/fuse/internal/usecase/feedback"
	healthuc "github.com/fuse-search/fuse/internal/usecase/health"
	recommenduc "github.com/fuse-search/fuse/internal/usecase/recommend"
	searchuc "github.com/fuse-search/fuse/internal/usecase/search"
)

// ErrorCode identifies the error class in API responses.
type ErrorCode string

const (
	CodeBadRequest             ErrorCode = "bad_request"
	CodeValidationFailed       ErrorCode = "validation_failed"
	CodeUserNotFound           ErrorCode = "user_not_found"
	CodeDocumentNotFound       ErrorCode = "document_not_found"
	CodeNotFound               ErrorCode = "not_found"
	CodeEmbeddingProviderError ErrorCode = "embedding_provider_error"
	CodeInternalError          ErrorCode = "internal_error"
)

// ErrorResponse is the API error body.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// Limits bounds the result sizes served by the API.
type Limits struct {
	Search       int
	Recommend    int
	Interactions int
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the retrieval engine over HTTP.
type Server struct {
	search        *searchuc.Service
	feedback      *feedbackuc.Service
	recommend     *recommenduc.Service
	health        *healthuc.Service
	limits        Limits
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	feedback *feedbackuc.Service,
	recommend *recommenduc.Service,
	health *healthuc.Service,
	limits Limits,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:    search,
		feedback:  feedback,
		recommend: recommend,
		health:    health,
		limits:    limits,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidArgument, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrUserNotFound, http.StatusNotFound, CodeUserNotFound),
		sentinelHandler(domain.ErrDocumentNotFound, http.StatusNotFound, CodeDocumentNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, CodeEmbeddingProviderError),
	}
	return s
}

// RegisterRoutes mounts the API handlers on the router.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Post("/api/search", s.Search)
	r.Post("/api/feedback", s.Feedback)
	r.Post("/api/recommend", s.Recommend)
	r.Get("/api/interactions/{userID}", s.Interactions)
	r.Get("/api/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type searchRequest struct {
	Query string `json:"query"`
	Mode  string `json:"mode"`
	Limit int    `json:"limit"`
}

type resultItem struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Score        float64  `json:"score"`
	KeywordScore *float64 `json:"keywordScore,omitempty"`
	VectorScore  *float64 `json:"vectorScore,omitempty"`
}

type searchResponse struct {
	Query   string       `json:"query"`
	Mode    string       `json:"mode"`
	Results []resultItem `json:"results"`
	Count   int          `json:"count"`
}

// Search handles POST /api/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	m, err := searchuc.ParseMode(req.Mode)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues(req.Mode, "error").Inc()
		s.handleDomainError(w, err)
		return
	}

	limit := req.Limit
	if limit <= 0 || limit > s.limits.Search {
		limit = s.limits.Search
	}

	results, err := s.search.Search(r.Context(), req.Query, m, limit)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues(string(m), "error").Inc()
		s.handleDomainError(w, err)
		return
	}

	metrics.SearchesTotal.WithLabelValues(string(m), "success").Inc()

	items := make([]resultItem, len(results))
	for i := range results {
		items[i] = resultToItem(&results[i], m == searchuc.ModeHybrid)
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Query:   req.Query,
		Mode:    string(m),
		Results: items,
		Count:   len(items),
	})
}

type feedbackRequest struct {
	UserID     string `json:"userId"`
	DocumentID string `json:"documentId"`
	Action     string `json:"action"`
}

type feedbackResponse struct {
	UserID     string `json:"userId"`
	DocumentID string `json:"documentId"`
	Action     string `json:"action"`
	Outcome    string `json:"outcome"`
}

// Feedback handles POST /api/feedback.
func (s *Server) Feedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	outcome, err := s.feedback.Record(r.Context(), req.UserID, req.DocumentID, req.Action)
	if err != nil {
		metrics.FeedbackTotal.WithLabelValues(req.Action, "error").Inc()
		s.handleDomainError(w, err)
		return
	}

	metrics.FeedbackTotal.WithLabelValues(req.Action, string(outcome)).Inc()

	writeJSON(w, http.StatusOK, feedbackResponse{
		UserID:     req.UserID,
		DocumentID: req.DocumentID,
		Action:     req.Action,
		Outcome:    string(outcome),
	})
}

type recommendRequest struct {
	UserID string `json:"userId"`
	Limit  int    `json:"limit"`
}

type recommendResponse struct {
	UserID  string       `json:"userId"`
	Results []resultItem `json:"results"`
	Count   int          `json:"count"`
	Message string       `json:"message,omitempty"`
}

// Recommend handles POST /api/recommend.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	limit := req.Limit
	if limit <= 0 || limit > s.limits.Recommend {
		limit = s.limits.Recommend
	}

	results, hasProfile, err := s.recommend.Recommend(r.Context(), req.UserID, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if !hasProfile {
		metrics.RecommendationsTotal.WithLabelValues("absent").Inc()
		writeJSON(w, http.StatusOK, recommendResponse{
			UserID:  req.UserID,
			Results: []resultItem{},
			Count:   0,
			Message: "no preference profile yet; like or save a few documents first",
		})
		return
	}

	metrics.RecommendationsTotal.WithLabelValues("present").Inc()

	items := make([]resultItem, len(results))
	for i := range results {
		items[i] = resultToItem(&results[i], false)
	}

	writeJSON(w, http.StatusOK, recommendResponse{
		UserID:  req.UserID,
		Results: items,
		Count:   len(items),
	})
}

type interactionItem struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	DocumentID string    `json:"documentId"`
	Action     string    `json:"action"`
	Timestamp  time.Time `json:"timestamp"`
}

type interactionsResponse struct {
	UserID       string            `json:"userId"`
	Interactions []interactionItem `json:"interactions"`
	Count        int               `json:"count"`
}

// Interactions handles GET /api/interactions/{userID}.
func (s *Server) Interactions(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	events, err := s.feedback.Interactions(r.Context(), userID, s.limits.Interactions)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]interactionItem, len(events))
	for i, ev := range events {
		items[i] = interactionItem{
			ID:         ev.ID(),
			UserID:     ev.UserID(),
			DocumentID: ev.DocumentID(),
			Action:     string(ev.Action()),
			Timestamp:  ev.Timestamp(),
		}
	}

	writeJSON(w, http.StatusOK, interactionsResponse{
		UserID:       userID,
		Interactions: items,
		Count:        len(items),
	})
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthCheck handles GET /api/health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func resultToItem(sd *domain.ScoredDocument, withComponents bool) resultItem {
	item := resultItem{
		ID:          sd.Document.ID(),
		Title:       sd.Document.Title(),
		Description: sd.Document.Description(),
		Tags:        sd.Document.Tags(),
		Score:       sd.Score,
	}
	if withComponents {
		kw, vec := sd.KeywordScore, sd.VectorScore
		item.KeywordScore = &kw
		item.VectorScore = &vec
	}
	return item
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidArgument,
		domain.ErrUserNotFound,
		domain.ErrDocumentNotFound,
		domain.ErrNotFound,
		domain.ErrEmbeddingProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
