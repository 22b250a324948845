package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	app_errors "ragline/backend/internal/errors"
)

// This file contains shared DTOs for API responses and helpers for sending
// consistent HTTP responses.

// ErrorResponse defines the standard JSON structure for error messages.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse defines a generic success response for operations that
// don't return a full resource.
type StatusResponse struct {
	Status string `json:"status"`
}

// AskRequest is the DTO for the chat endpoints. Complexity is an optional
// override; when omitted the question is classified automatically.
type AskRequest struct {
	Question       string `json:"question" validate:"required,min=1,max=4000" example:"What does the retention policy say about backups?"`
	UserID         string `json:"user_id" validate:"required,min=1,max=128" example:"user-42"`
	ConversationID string `json:"conversation_id,omitempty" validate:"omitempty,uuid4"`
	Complexity     string `json:"complexity,omitempty" validate:"omitempty,oneof=simple moderate complex"`
	DocumentCount  int    `json:"document_count,omitempty" validate:"omitempty,min=0"`
}

// respondWithError is the centralized error handling function for the API
// layer. It maps business-layer errors to HTTP status codes and formats a
// standard JSON error response.
func respondWithError(w http.ResponseWriter, err error) {
	var statusCode int
	var message string

	switch {
	case errors.Is(err, app_errors.ErrValidation):
		statusCode = http.StatusBadRequest
		// Validation errors from the service layer are already descriptive
		// and safe to show.
		message = err.Error()
	case errors.Is(err, app_errors.ErrKnowledgeBaseNotFound):
		statusCode = http.StatusNotFound
		message = "The configured knowledge base was not found."
	case errors.Is(err, app_errors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "The requested resource was not found."
	case errors.Is(err, app_errors.ErrAuthorization):
		statusCode = http.StatusForbidden
		message = "You do not have permission to perform this action."
	case errors.Is(err, app_errors.ErrQuotaExceeded):
		statusCode = http.StatusPaymentRequired
		message = "The service quota has been exhausted."
	case errors.Is(err, app_errors.ErrRateLimited):
		statusCode = http.StatusTooManyRequests
		message = "Too many requests right now. Please retry shortly."
	case errors.Is(err, app_errors.ErrServiceBusy):
		statusCode = http.StatusServiceUnavailable
		message = "The generation service is temporarily busy. Please retry shortly."
	default:
		// Any unhandled error is an internal server error. This prevents
		// leaking implementation details to the client.
		statusCode = http.StatusInternalServerError
		message = "An unexpected internal server error occurred."
	}

	// The detailed error is logged for debugging while a generic message
	// goes to the client.
	slog.Warn("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)

	respondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondWithJSON is a low-level helper for marshaling a payload to JSON
// and writing it with a given status code.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}
