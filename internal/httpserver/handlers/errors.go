package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/recommendations/internal/domain"
	"github.com/MrSnakeDoc/recommendations/internal/logger"
	"github.com/MrSnakeDoc/recommendations/internal/recommendation"
)

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

type errorResponse struct {
	Errors []apiError `json:"errors"`
}

// errorStatus maps an operation error to its HTTP status and error type.
func errorStatus(err error) (int, string) {
	switch {
	case recommendation.IsMalformedRequest(err):
		return http.StatusBadRequest, "BadRequestError"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NotFoundError"
	default:
		return http.StatusInternalServerError, "InternalServerError"
	}
}

// writeError renders err. Internal errors are logged and never echoed.
func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	status, kind := errorStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("request failed",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Error(err))
		message = "internal server error"
	}
	writeJSON(w, status, errorResponse{Errors: []apiError{{Message: message, Type: kind}}})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
