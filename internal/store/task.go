package store

import (
	"context"
	"database/sql"

	"github.com/briefops/taskbrief-api/internal/domain"
	"github.com/google/uuid"
)

// ListTasksFilter describes the filtering and pagination window for a task
// listing. Nil filter fields match everything; when both are set they are
// combined with AND. Page is 1-indexed.
type ListTasksFilter struct {
	Status   *domain.TaskStatus
	Priority *domain.TaskPriority
	Page     int
	PageSize int
}

// Offset returns the row offset implied by the pagination window.
func (f ListTasksFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	// It handles domain validation internally.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// List retrieves a page of tasks matching the filter, ordered by
	// created_at descending, together with the total count of matching
	// tasks independent of the pagination window. A page past the end of
	// the result set yields an empty slice, not an error.
	List(ctx context.Context, filter ListTasksFilter) ([]*domain.Task, int, error)

	// Update saves changes to an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	// Returns validation errors if the task data is invalid.
	Update(ctx context.Context, task *domain.Task) error

	// Delete irreversibly removes a task.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) TaskStore
}
