package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/briefops/taskbrief-api/internal/domain"
	"github.com/briefops/taskbrief-api/internal/platform/logger"
	"github.com/briefops/taskbrief-api/internal/store"
)

// taskColumns is the canonical column list shared by every SELECT against
// the tasks table. Scan order in scanTask must match it.
const taskColumns = "id, title, description, summary, status, priority, due_date, created_at, updated_at"

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// wrapError attaches the failing operation to a mapped storage error.
// Not-found results pass through bare so callers match the sentinel
// without extra context.
func wrapError(operation, message string, err error) error {
	if err == nil || store.IsNotFoundError(err) {
		return err
	}
	return store.NewStoreError("task", operation, message, err)
}

// WithTx implements store.TaskStore.WithTx
// It returns a new TaskStore instance backed by the given transaction.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.TaskStore.Create
// It saves a new task to the database, handling domain validation.
// Returns validation errors from the domain Task if data is invalid.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (id, title, description, summary, status, priority, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Title,
		task.Description,
		task.Summary,
		task.Status,
		task.Priority,
		task.DueDate,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return wrapError("create", "insert failed", MapError(err))
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("status", string(task.Status)),
		slog.String("priority", string(task.Priority)))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// It retrieves a task by its unique ID.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving task by ID", slog.String("task_id", id.String()))

	query := fmt.Sprintf(`
		SELECT %s
		FROM tasks
		WHERE id = $1
	`, taskColumns)

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		mapped := MapError(err)
		if store.IsNotFoundError(mapped) {
			log.Debug("task not found", slog.String("task_id", id.String()))
		} else {
			log.Error("failed to get task by ID",
				slog.String("error", err.Error()),
				slog.String("task_id", id.String()))
		}
		return nil, wrapError("get", "query failed", mapped)
	}

	log.Debug("task retrieved successfully",
		slog.String("task_id", id.String()),
		slog.String("status", string(task.Status)))
	return task, nil
}

// List implements store.TaskStore.List
// It retrieves a page of tasks matching the filter, newest first, along with
// the total count of matching tasks independent of the pagination window.
func (s *PostgresTaskStore) List(
	ctx context.Context,
	filter store.ListTasksFilter,
) ([]*domain.Task, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := buildTaskFilter(filter)

	log.Debug("listing tasks",
		slog.Int("page", filter.Page),
		slog.Int("page_size", filter.PageSize),
		slog.Int("filters", len(args)))

	countQuery := "SELECT COUNT(*) FROM tasks" + where

	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count tasks", slog.String("error", err.Error()))
		return nil, 0, wrapError("list", "count failed", MapError(err))
	}

	query := fmt.Sprintf(`SELECT %s FROM tasks%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		taskColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.PageSize, filter.Offset())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, 0, wrapError("list", "query failed", MapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, 0, wrapError("list", "scan failed", MapError(err))
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, 0, wrapError("list", "row iteration failed", MapError(err))
	}

	log.Debug("tasks listed successfully",
		slog.Int("count", len(tasks)),
		slog.Int("total", total))
	return tasks, total, nil
}

// Update implements store.TaskStore.Update
// It saves changes to an existing task.
// Returns store.ErrTaskNotFound if the task does not exist.
// Returns validation errors if the task data is invalid.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, summary = $3, status = $4,
		    priority = $5, due_date = $6, updated_at = $7
		WHERE id = $8
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Summary,
		task.Status,
		task.Priority,
		task.DueDate,
		task.UpdatedAt,
		task.ID,
	)

	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return wrapError("update", "exec failed", MapError(err))
	}

	if err := CheckRowsAffected(result); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found for update", slog.String("task_id", task.ID.String()))
		}
		return wrapError("update", "result check failed", err)
	}

	log.Info("task updated successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("status", string(task.Status)))
	return nil
}

// Delete implements store.TaskStore.Delete
// It irreversibly removes a task.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM tasks WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return wrapError("delete", "exec failed", MapError(err))
	}

	if err := CheckRowsAffected(result); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found for delete", slog.String("task_id", id.String()))
		}
		return wrapError("delete", "result check failed", err)
	}

	log.Info("task deleted successfully", slog.String("task_id", id.String()))
	return nil
}

// buildTaskFilter renders the WHERE clause and argument list for the
// status/priority filters. The returned clause includes a leading " WHERE"
// when any filter is set and is empty otherwise.
func buildTaskFilter(filter store.ListTasksFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		conditions = append(conditions, fmt.Sprintf("priority = $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// rowScanner abstracts *sql.Row and *sql.Rows so scanTask can serve both
// single-row and multi-row queries.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanTask scans a single tasks row in taskColumns order.
func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var status, priority string

	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Summary,
		&status,
		&priority,
		&task.DueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Status = domain.TaskStatus(status)
	task.Priority = domain.TaskPriority(priority)
	return &task, nil
}
