package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/briefops/taskbrief-api/internal/redact"
)

// ErrorResponse defines the standard error response structure.
// Every non-2xx response carries this shape; Success is always false.
type ErrorResponse struct {
	Success   bool        `json:"success"`
	Error     string      `json:"error"`
	ErrorCode string      `json:"error_code,omitempty"`
	Details   interface{} `json:"details,omitempty"`
	TraceID   string      `json:"trace_id,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a JSON error response with the given status code,
// message and machine-readable error code. It also sets the TraceID from the
// request context if available.
func RespondWithError(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	message string,
	errorCode string,
) {
	RespondWithErrorDetails(w, r, status, message, errorCode, nil)
}

// RespondWithErrorDetails is RespondWithError with an additional free-form
// details payload, used for validation failure listings.
func RespondWithErrorDetails(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	message string,
	errorCode string,
	details interface{},
) {
	traceID := GetTraceID(r.Context())

	errorResponse := ErrorResponse{
		Success:   false,
		Error:     message,
		ErrorCode: errorCode,
		Details:   details,
		TraceID:   traceID,
	}

	slog.Debug("sending error response",
		"status_code", status,
		"message", message,
		"error_code", errorCode,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, errorResponse)
}

// RespondWithErrorAndLog writes a JSON error response and also logs the
// detailed error. The full error is redacted and kept to the logs; only the
// sanitized message and code reach the client.
//
// Log level strategy:
// - 5xx errors: logged at ERROR level
// - 4xx errors: logged at DEBUG level
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	errorCode string,
	err error,
) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("error_code", errorCode),
		slog.String("user_message", userMessage),
	}

	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}

	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithErrorDetails(w, r, status, userMessage, errorCode, nil)
}
