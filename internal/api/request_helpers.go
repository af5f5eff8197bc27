package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/briefops/taskbrief-api/internal/domain"
	"github.com/briefops/taskbrief-api/internal/service"
)

// getPathUUID extracts a UUID from the URL path parameters.
// It parses and validates the UUID, handling common error cases.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(
			paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// parseListQuery reads the pagination and filter query parameters for the
// listing endpoint. Missing parameters fall back to page 1 with the default
// page size; malformed or out-of-range values surface as validation errors
// before any storage work happens.
func parseListQuery(r *http.Request) (service.ListTasksInput, error) {
	input := service.ListTasksInput{
		Page:     1,
		PageSize: service.DefaultPageSize,
	}

	query := r.URL.Query()

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return input, domain.NewValidationError(
				"page", "must be an integer", domain.ErrValidation)
		}
		input.Page = page
	}

	if raw := query.Get("page_size"); raw != "" {
		pageSize, err := strconv.Atoi(raw)
		if err != nil {
			return input, domain.NewValidationError(
				"page_size", "must be an integer", domain.ErrValidation)
		}
		input.PageSize = pageSize
	}

	if raw := query.Get("status"); raw != "" {
		status, err := domain.ParseTaskStatus(raw)
		if err != nil {
			return input, domain.NewValidationError(
				"status", "is not a valid task status", err)
		}
		input.Status = &status
	}

	if raw := query.Get("priority"); raw != "" {
		priority, err := domain.ParseTaskPriority(raw)
		if err != nil {
			return input, domain.NewValidationError(
				"priority", "is not a valid task priority", err)
		}
		input.Priority = &priority
	}

	return input, nil
}
