// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
)

// toolFunction describes one callable tool in the discovery document.
type toolFunction struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []toolParameter `json:"parameters"`
	Endpoint    string          `json:"endpoint"`
	HTTPMethod  string          `json:"http_method"`
}

// toolParameter describes a single tool parameter.
type toolParameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// discoveryDocument is the static tool registry served at /discovery.
type discoveryDocument struct {
	Functions []toolFunction `json:"functions"`
}

// discovery lists the tools this service exposes. The descriptor is
// static; the scorer has no per-instance capabilities.
var discovery = discoveryDocument{
	Functions: []toolFunction{
		{
			Name:        "subject_line_scorer",
			Description: "Scores email subject lines with fixed heuristic rules and picks the best one",
			Parameters: []toolParameter{
				{
					Name:        "subject_lines",
					Type:        "list[string]",
					Description: "Email subject lines to score",
					Required:    true,
				},
			},
			Endpoint:   "/tools/subject-line-scorer",
			HTTPMethod: http.MethodPost,
		},
	},
}

// DiscoveryHandler serves the static tool discovery descriptor.
type DiscoveryHandler struct{}

// NewDiscoveryHandler creates a new discovery handler.
func NewDiscoveryHandler() *DiscoveryHandler {
	return &DiscoveryHandler{}
}

// HandleDiscovery handles GET /discovery requests.
func (h *DiscoveryHandler) HandleDiscovery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, discovery)
}

// toolRequest is the discovery-wrapped request envelope.
type toolRequest struct {
	Parameters scoreRequest `json:"parameters"`
}

// ToolHandler handles discovery-wrapped scoring calls.
type ToolHandler struct {
	deps Dependencies
}

// NewToolHandler creates a new tool handler.
func NewToolHandler(deps Dependencies) *ToolHandler {
	return &ToolHandler{deps: deps}
}

// HandleToolCall handles POST /tools/subject-line-scorer requests.
// The payload carries the same fields as the plain endpoint, wrapped
// in a "parameters" envelope.
func (h *ToolHandler) HandleToolCall(w http.ResponseWriter, r *http.Request) {
	const op = "api.tool_call"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req toolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.Parameters.validate(h.deps.MaxBatchSize()); err != nil {
		code := "bad_request"
		if errors.Is(err, ErrBatchTooLarge) {
			code = "batch_too_large"
		}
		writeError(w, http.StatusBadRequest, code, err)
		return
	}

	writeJSON(w, http.StatusOK, h.deps.ScoreBatch(r.Context(), *req.Parameters.SubjectLines))
}
