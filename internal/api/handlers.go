package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/longregen/multihop/internal/domain"
	"github.com/longregen/multihop/internal/ports"
)

type answerRequest struct {
	Question string `json:"question"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// AnswerHandler runs the multi-hop pipeline for a single question.
type AnswerHandler struct {
	runner ports.PipelineRunner
	logger *slog.Logger
}

func NewAnswerHandler(runner ports.PipelineRunner, logger *slog.Logger) *AnswerHandler {
	return &AnswerHandler{runner: runner, logger: logger}
}

func (h *AnswerHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.runner.Run(r.Context(), req.Question)
	if err != nil {
		h.logger.Error("pipeline run failed", "error", err)
		writeJSON(w, statusForError(err), errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrEmptyQuestion), errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrLLMUnavailable),
		errors.Is(err, domain.ErrRetrieverUnavailable),
		errors.Is(err, domain.ErrEmbeddingsFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type healthResponse struct {
	Status string `json:"status"`
}

// HealthHandler answers liveness probes.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
