package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	apperrors "github.com/utafrali/PrinterCatalog/pkg/errors"
	"github.com/utafrali/PrinterCatalog/pkg/logger"
	"github.com/utafrali/PrinterCatalog/pkg/validator"
)

// MaxBodyBytes caps the size of decoded request bodies.
const MaxBodyBytes = 1 << 20

// Response is the JSON envelope for every API response.
type Response struct {
	Data  any            `json:"data,omitempty"`
	Error *ErrorResponse `json:"error,omitempty"`
}

// ErrorResponse represents an error in the standard response format.
type ErrorResponse struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// WriteJSON writes v as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}

// WriteStatus writes a bodiless response with the given status code.
func WriteStatus(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}

// WriteError maps err to a status code and writes the error envelope.
// Internal errors are logged with the request-scoped logger when the
// RequestLogger middleware is mounted, otherwise with fallback.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() && fallback != nil {
		l = fallback
	}

	requestID := logger.CorrelationIDFromContext(r.Context())

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			logServerError(r, l, err)
		}
		WriteJSON(w, appErr.Status, Response{
			Error: &ErrorResponse{Code: appErr.Code, Message: appErr.Message, RequestID: requestID},
		})
		return
	}

	status := apperrors.HTTPStatus(err)
	code := "INTERNAL_ERROR"
	message := "an internal error occurred"

	switch status {
	case http.StatusNotFound:
		code, message = "NOT_FOUND", "resource not found"
	case http.StatusConflict:
		code, message = "ALREADY_EXISTS", "resource already exists"
	case http.StatusBadRequest:
		code, message = "INVALID_INPUT", err.Error()
	case http.StatusServiceUnavailable:
		code, message = "SERVICE_UNAVAILABLE", "service unavailable"
	}

	if status >= http.StatusInternalServerError {
		logServerError(r, l, err)
	}

	WriteJSON(w, status, Response{
		Error: &ErrorResponse{Code: code, Message: message, RequestID: requestID},
	})
}

func logServerError(r *http.Request, l *slog.Logger, err error) {
	l.ErrorContext(r.Context(), "internal error",
		slog.String("error", err.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)
}

// WriteValidationError writes a 400 for request decoding and validation
// failures, with per-field messages for validator errors.
func WriteValidationError(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		WriteJSON(w, http.StatusBadRequest, Response{
			Error: &ErrorResponse{
				Code:    "VALIDATION_ERROR",
				Message: "request validation failed",
				Fields:  valErr.Fields(),
			},
		})
		return
	}

	WriteJSON(w, http.StatusBadRequest, Response{
		Error: &ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()},
	})
}

// DecodeRequest limits the request body, decodes it into dst and validates
// it. On failure it writes a 400 response and returns false, signaling the
// caller to return early.
func DecodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := validator.DecodeAndValidate(r.Body, dst); err != nil {
		WriteValidationError(w, err)
		return false
	}
	return true
}

// ParseUUID validates that the given string is a valid UUID and returns it.
// If invalid, it writes a 400 Bad Request response with code INVALID_PARAMETER
// and returns uuid.Nil plus false.
func ParseUUID(w http.ResponseWriter, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(param)
	if err != nil {
		WriteJSON(w, http.StatusBadRequest, Response{
			Error: &ErrorResponse{
				Code:    "INVALID_PARAMETER",
				Message: "invalid UUID: " + param,
			},
		})
		return uuid.Nil, false
	}
	return id, true
}
