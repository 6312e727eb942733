// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/subjectscore/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// ScoreBatch evaluates subject lines in input order. Scoring is
	// total; there is no error path.
	ScoreBatch(ctx context.Context, subjects []string) types.BatchResult

	// MaxBatchSize returns the per-request cap on subject lines.
	// Zero means unlimited.
	MaxBatchSize() int
}

// BatchResult mirrors the wire shape returned by scoring endpoints.
type BatchResult = types.BatchResult

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	scoreHandler     *ScoreHandler
	toolHandler      *ToolHandler
	discoveryHandler *DiscoveryHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		scoreHandler:     NewScoreHandler(deps),
		toolHandler:      NewToolHandler(deps),
		discoveryHandler: NewDiscoveryHandler(),
		dashboardHandler: newdashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/health", MetricsMiddleware(s.healthHandler.HandleHealth, "health"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/subject-line-scorer", RequestIDMiddleware(MetricsMiddleware(s.scoreHandler.HandleScore, "subject_line_scorer")))
	mux.HandleFunc("/tools/subject-line-scorer", RequestIDMiddleware(MetricsMiddleware(s.toolHandler.HandleToolCall, "tool_subject_line_scorer")))
	mux.HandleFunc("/discovery", MetricsMiddleware(s.discoveryHandler.HandleDiscovery, "discovery"))
}

// scoreRequest mirrors the OpenAPI schema for POST /subject-line-scorer.
// The pointer distinguishes a missing/null field from an empty batch.
type scoreRequest struct {
	SubjectLines *[]string `json:"subject_lines"`
}

func (r scoreRequest) validate(maxBatch int) error {
	if r.SubjectLines == nil {
		return NewKind("api.validate", ErrMissingField)
	}
	if maxBatch > 0 && len(*r.SubjectLines) > maxBatch {
		return NewKind("api.validate", ErrBatchTooLarge)
	}
	return nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
