package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/briefops/taskbrief-api/internal/api/shared"
	"github.com/briefops/taskbrief-api/internal/domain"
	"github.com/briefops/taskbrief-api/internal/store"
	"github.com/briefops/taskbrief-api/internal/summary"
)

// Machine-readable error codes carried in the error_code field of every
// non-2xx response body.
const (
	CodeTaskNotFound     = "TASK_NOT_FOUND"
	CodeValidationError  = "VALIDATION_ERROR"
	CodeDatabaseError    = "DATABASE_ERROR"
	CodeExternalAPIError = "EXTERNAL_API_ERROR"
	CodeExternalTimeout  = "EXTERNAL_API_TIMEOUT"
	CodeInternalError    = "INTERNAL_SERVER_ERROR"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	case isValidationError(err):
		return http.StatusUnprocessableEntity

	case store.IsStorageError(err):
		return http.StatusServiceUnavailable

	case errors.Is(err, summary.ErrUpstreamTimeout):
		return http.StatusGatewayTimeout

	case errors.Is(err, summary.ErrUpstream):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// GetErrorCode returns the machine-readable code for the error.
func GetErrorCode(err error) string {
	switch {
	case store.IsNotFoundError(err):
		return CodeTaskNotFound

	case isValidationError(err):
		return CodeValidationError

	case store.IsStorageError(err):
		return CodeDatabaseError

	case errors.Is(err, summary.ErrUpstreamTimeout):
		return CodeExternalTimeout

	case errors.Is(err, summary.ErrUpstream):
		return CodeExternalAPIError

	default:
		return CodeInternalError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case store.IsNotFoundError(err):
		return "Task not found"

	case isValidationError(err):
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			return validationErr.Error()
		}
		return "Validation error"

	case store.IsStorageError(err):
		return "A database error occurred"

	case errors.Is(err, summary.ErrUpstreamTimeout):
		return "External service timed out"

	case errors.Is(err, summary.ErrUpstream):
		return "External service error"

	default:
		return "An unexpected error occurred"
	}
}

// HandleServiceError writes the appropriate error response for an error
// returned by the service layer, logging the full error server-side.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), GetErrorCode(err), err)
}

// RespondWithValidationError writes a 422 response for a failed payload
// validation. When the error carries field-level details from the struct
// validator, they are listed under details.errors.
func RespondWithValidationError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fieldErrors := make([]map[string]string, 0, len(validationErrs))
		for _, fieldErr := range validationErrs {
			fieldErrors = append(fieldErrors, map[string]string{
				"field":   fieldErr.Field(),
				"message": getValidationTagMessage(fieldErr.Tag()),
			})
		}
		shared.RespondWithErrorDetails(
			w, r,
			http.StatusUnprocessableEntity,
			"Validation error",
			CodeValidationError,
			map[string]interface{}{"errors": fieldErrors},
		)
		return
	}

	shared.RespondWithErrorAndLog(
		w, r,
		http.StatusUnprocessableEntity,
		GetSafeErrorMessage(err),
		CodeValidationError,
		err,
	)
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

func isValidationError(err error) bool {
	if domain.IsValidationError(err) {
		return true
	}
	var validationErr *domain.ValidationError
	return errors.As(err, &validationErr)
}
