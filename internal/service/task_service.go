package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/briefops/taskbrief-api/internal/domain"
	"github.com/briefops/taskbrief-api/internal/platform/logger"
	"github.com/briefops/taskbrief-api/internal/store"
	"github.com/briefops/taskbrief-api/internal/summary"
)

// Pagination bounds for task listings.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// CreateTaskInput carries the fields for creating a new task.
type CreateTaskInput struct {
	Title           string
	Description     string
	Priority        domain.TaskPriority
	DueDate         *time.Time
	GenerateSummary bool
}

// UpdateTaskInput carries a partial update for an existing task.
// Nil fields are left untouched; there is no way to explicitly null a field.
type UpdateTaskInput struct {
	Title             *string
	Description       *string
	Status            *domain.TaskStatus
	Priority          *domain.TaskPriority
	DueDate           *time.Time
	RegenerateSummary bool
}

// ListTasksInput describes the filtering and pagination window for a listing.
type ListTasksInput struct {
	Status   *domain.TaskStatus
	Priority *domain.TaskPriority
	Page     int
	PageSize int
}

// TaskService provides task-related operations.
type TaskService interface {
	// Create validates and persists a new task, optionally generating a
	// summary first. The returned string carries the text of a summarization
	// failure that did not stop the creation; it is empty on clean runs.
	Create(ctx context.Context, input CreateTaskInput) (*domain.Task, string, error)

	// GetByID retrieves a task by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// List retrieves a page of tasks matching the input filters, newest
	// first, together with the total count of matching tasks.
	List(ctx context.Context, input ListTasksInput) ([]*domain.Task, int, error)

	// Update loads a task, applies the patch, optionally regenerates the
	// summary on the post-patch content, and saves the result. The returned
	// string carries a non-fatal summarization failure, as with Create.
	Update(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (*domain.Task, string, error)

	// Delete irreversibly removes a task and returns the deleted ID.
	Delete(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	db         *sql.DB
	tasks      store.TaskStore
	summarizer summary.Summarizer
	logger     *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	db *sql.DB,
	tasks store.TaskStore,
	summarizer summary.Summarizer,
	logger *slog.Logger,
) (TaskService, error) {
	if db == nil {
		return nil, &TaskServiceError{Operation: "create_service", Message: "db cannot be nil"}
	}
	if tasks == nil {
		return nil, &TaskServiceError{Operation: "create_service", Message: "tasks cannot be nil"}
	}
	if summarizer == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "summarizer cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		db:         db,
		tasks:      tasks,
		summarizer: summarizer,
		logger:     logger.With(slog.String("component", "task_service")),
	}, nil
}

// Create implements TaskService.Create
// Summarization runs before the transaction so the database is never held
// open across a network call; its failure is folded into the returned
// error-text while the task is persisted regardless.
func (s *taskServiceImpl) Create(
	ctx context.Context,
	input CreateTaskInput,
) (*domain.Task, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(input.Title, input.Description, input.Priority, input.DueDate)
	if err != nil {
		log.Warn("task validation failed during create", slog.String("error", err.Error()))
		return nil, "", NewTaskServiceError("create_task", "invalid task data", err)
	}

	var summaryErr string
	if input.GenerateSummary {
		summaryErr = s.generateSummary(ctx, task)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.tasks.WithTx(tx).Create(ctx, task)
	})
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return nil, "", NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.Bool("summary_generated", task.Summary != nil))
	return task, summaryErr, nil
}

// GetByID implements TaskService.GetByID
func (s *taskServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found", slog.String("task_id", id.String()))
		} else {
			log.Error("failed to retrieve task",
				slog.String("error", err.Error()),
				slog.String("task_id", id.String()))
		}
		return nil, NewTaskServiceError("get_task", "failed to retrieve task", err)
	}

	return task, nil
}

// List implements TaskService.List
func (s *taskServiceImpl) List(
	ctx context.Context,
	input ListTasksInput,
) ([]*domain.Task, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if input.Page < 1 {
		return nil, 0, domain.NewValidationError(
			"page", "must be at least 1", domain.ErrValidation)
	}
	if input.PageSize < 1 || input.PageSize > MaxPageSize {
		return nil, 0, domain.NewValidationError(
			"page_size", "must be between 1 and 100", domain.ErrValidation)
	}

	filter := store.ListTasksFilter{
		Status:   input.Status,
		Priority: input.Priority,
		Page:     input.Page,
		PageSize: input.PageSize,
	}

	tasks, total, err := s.tasks.List(ctx, filter)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, 0, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}

	return tasks, total, nil
}

// Update implements TaskService.Update
// The task is loaded and patched first; summary regeneration, when requested,
// runs on the post-patch title and description and its failure leaves the
// prior summary in place. The save happens in its own transaction.
func (s *taskServiceImpl) Update(
	ctx context.Context,
	id uuid.UUID,
	input UpdateTaskInput,
) (*domain.Task, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found for update", slog.String("task_id", id.String()))
		} else {
			log.Error("failed to load task for update",
				slog.String("error", err.Error()),
				slog.String("task_id", id.String()))
		}
		return nil, "", NewTaskServiceError("update_task", "failed to load task", err)
	}

	if err := applyPatch(task, input); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, "", NewTaskServiceError("update_task", "invalid task data", err)
	}

	var summaryErr string
	if input.RegenerateSummary {
		summaryErr = s.generateSummary(ctx, task)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.tasks.WithTx(tx).Update(ctx, task)
	})
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, "", NewTaskServiceError("update_task", "failed to save task", err)
	}

	log.Info("task updated", slog.String("task_id", id.String()))
	return task, summaryErr, nil
}

// Delete implements TaskService.Delete
func (s *taskServiceImpl) Delete(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.tasks.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found for delete", slog.String("task_id", id.String()))
		} else {
			log.Error("failed to delete task",
				slog.String("error", err.Error()),
				slog.String("task_id", id.String()))
		}
		return uuid.Nil, NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	log.Info("task deleted", slog.String("task_id", id.String()))
	return id, nil
}

// generateSummary asks the summarizer for a summary of the task's current
// title and description and attaches it when one comes back. A failure is
// returned as text rather than an error: summarization never blocks the
// surrounding write. An empty result with no error means the summarizer
// had nothing to offer (disabled, or the model returned no choices) and
// leaves the task's summary untouched.
func (s *taskServiceImpl) generateSummary(ctx context.Context, task *domain.Task) string {
	log := logger.FromContextOrDefault(ctx, s.logger)

	text, err := s.summarizer.GenerateTaskSummary(ctx, task.Title, task.Description)
	if err != nil {
		log.Warn("summary generation failed",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err.Error()
	}
	if text != "" {
		task.SetSummary(text)
	}
	return ""
}

// applyPatch applies the non-nil fields of the update input to the task
// through its validating setters.
func applyPatch(task *domain.Task, input UpdateTaskInput) error {
	if input.Title != nil {
		if err := task.SetTitle(*input.Title); err != nil {
			return err
		}
	}
	if input.Description != nil {
		if err := task.SetDescription(*input.Description); err != nil {
			return err
		}
	}
	if input.Status != nil {
		if err := task.SetStatus(*input.Status); err != nil {
			return err
		}
	}
	if input.Priority != nil {
		if err := task.SetPriority(*input.Priority); err != nil {
			return err
		}
	}
	if input.DueDate != nil {
		task.SetDueDate(*input.DueDate)
	}
	return nil
}
