package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"kbc-quiz-service/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondServiceError maps engine and store errors onto status codes.
// Storage failures are logged and reported generically.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrAlreadyClaimed):
		respondError(w, http.StatusBadRequest, domain.ErrAlreadyClaimed.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		respondError(w, http.StatusNotFound, domain.ErrUserNotFound.Error())
	case errors.Is(err, domain.ErrQuestionNotFound):
		respondError(w, http.StatusNotFound, domain.ErrQuestionNotFound.Error())
	default:
		slog.Error("request failed",
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		respondError(w, http.StatusInternalServerError, "DB error")
	}
}
