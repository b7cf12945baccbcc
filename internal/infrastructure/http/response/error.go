package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rezkam/catalog/internal/domain"
)

// encodeFailure is written when a response body cannot be marshaled.
const encodeFailure = `{"error":{"code":"INTERNAL_ERROR","message":"failed to encode response"}}`

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []ErrorField `json:"details,omitempty"`
}

// ErrorField describes a field-specific error.
type ErrorField struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// BadRequest sends a 400 Bad Request error.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, "INVALID_REQUEST", message, http.StatusBadRequest)
}

// ValidationError sends a 400 validation error with field details.
func ValidationError(w http.ResponseWriter, details ...ErrorField) {
	write(w, http.StatusBadRequest, ErrorResponse{
		Error: ErrorDetail{
			Code:    "VALIDATION_ERROR",
			Message: "validation failed",
			Details: details,
		},
	})
}

// NotFound sends a 404 Not Found error.
func NotFound(w http.ResponseWriter, resource string) {
	Error(w, "NOT_FOUND", resource+" not found", http.StatusNotFound)
}

// Unauthorized sends a 401 Unauthorized error.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, "UNAUTHORIZED", message, http.StatusUnauthorized)
}

// Forbidden sends a 403 Forbidden error.
func Forbidden(w http.ResponseWriter, message string) {
	Error(w, "FORBIDDEN", message, http.StatusForbidden)
}

// Conflict sends a 409 Conflict error.
func Conflict(w http.ResponseWriter, message string) {
	Error(w, "CONFLICT", message, http.StatusConflict)
}

// TooManyRequests sends a 429 error.
func TooManyRequests(w http.ResponseWriter) {
	Error(w, "RATE_LIMITED", "too many requests", http.StatusTooManyRequests)
}

// InternalError sends a 500 Internal Server Error.
// The error is logged server-side; the client gets a generic message.
func InternalError(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		slog.ErrorContext(r.Context(), "Internal server error", "error", err)
	}
	Error(w, "INTERNAL_ERROR", "an internal error occurred", http.StatusInternalServerError)
}

// Error sends a generic error response.
func Error(w http.ResponseWriter, code, message string, statusCode int) {
	write(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// FromDomainError maps domain errors to HTTP responses.
//
// Joined errors that carry any validation or move boundary failure are
// answered with 400 and every field failure, including missing references,
// listed in the details.
func FromDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrMoveBoundary):
		ValidationError(w, fieldDetails(err)...)
	case errors.Is(err, domain.ErrInvalidID):
		ValidationError(w, ErrorField{Field: "id", Issue: "invalid ID format"})

	case errors.Is(err, domain.ErrNotFound):
		NotFound(w, "resource")

	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidAPIKeyFormat):
		Unauthorized(w, "invalid or missing API key")
	case errors.Is(err, domain.ErrForbidden):
		Forbidden(w, "operation requires an admin key")

	case errors.Is(err, domain.ErrCheatExists):
		Conflict(w, err.Error())

	default:
		InternalError(w, r, err)
	}
}

func fieldDetails(err error) []ErrorField {
	fes := domain.FieldErrors(err)
	out := make([]ErrorField, len(fes))
	for i, fe := range fes {
		out[i] = ErrorField{Field: fe.Field, Issue: fe.Issue}
	}
	return out
}

// write marshals body before touching the response so an encoding failure
// still yields a JSON 500.
func write(w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		slog.Error("failed to marshal response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(encodeFailure))
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
