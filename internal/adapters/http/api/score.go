// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ScoreHandler handles plain scoring requests
type ScoreHandler struct {
	deps Dependencies
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(deps Dependencies) *ScoreHandler {
	return &ScoreHandler{deps: deps}
}

// HandleScore handles POST /subject-line-scorer requests
func (h *ScoreHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.score"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(h.deps.MaxBatchSize()); err != nil {
		code := "bad_request"
		if errors.Is(err, ErrBatchTooLarge) {
			code = "batch_too_large"
		}
		writeError(w, http.StatusBadRequest, code, err)
		return
	}

	writeJSON(w, http.StatusOK, h.deps.ScoreBatch(r.Context(), *req.SubjectLines))
}
