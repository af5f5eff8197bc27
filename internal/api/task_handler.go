package api

import (
	"log/slog"
	"net/http"

	"github.com/briefops/taskbrief-api/internal/api/shared"
	"github.com/briefops/taskbrief-api/internal/domain"
	"github.com/briefops/taskbrief-api/internal/platform/logger"
	"github.com/briefops/taskbrief-api/internal/service"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil for TaskHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// CreateTask handles POST /tasks requests
// It validates the payload, creates the task (optionally with a generated
// summary) and responds with 201 and the stored task.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("failed to decode create task request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity,
			"Invalid request payload", CodeValidationError)
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Debug("create task request validation failed", slog.String("error", err.Error()))
		RespondWithValidationError(w, r, err)
		return
	}

	task, summaryErr, err := h.taskService.Create(r.Context(), service.CreateTaskInput{
		Title:           req.Title,
		Description:     req.Description,
		Priority:        domain.TaskPriority(req.Priority),
		DueDate:         req.DueDate,
		GenerateSummary: req.WantsSummary(),
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	if summaryErr != "" {
		log.Warn("task created without summary",
			slog.String("task_id", task.ID.String()),
			slog.String("summary_error", summaryErr))
	}

	log.Debug("task created", slog.String("task_id", task.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// ListTasks handles GET /tasks requests
// Supports page/page_size pagination and conjunctive status/priority filters.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	input, err := parseListQuery(r)
	if err != nil {
		log.Debug("invalid list query", slog.String("error", err.Error()))
		HandleServiceError(w, r, err)
		return
	}

	tasks, total, err := h.taskService.List(r.Context(), input)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	log.Debug("tasks listed",
		slog.Int("count", len(tasks)),
		slog.Int("total", total))
	shared.RespondWithJSON(w, r, http.StatusOK,
		tasksToListResponse(tasks, total, input.Page, input.PageSize))
}

// GetTask handles GET /tasks/{id} requests
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathUUID(r, "id")
	if err != nil {
		log.Debug("invalid task id", slog.String("error", err.Error()))
		HandleServiceError(w, r, err)
		return
	}

	task, err := h.taskService.GetByID(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UpdateTask handles PUT /tasks/{id} requests
// Omitted fields are left untouched; regenerate_summary asks for a fresh
// summary of the post-patch content.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathUUID(r, "id")
	if err != nil {
		log.Debug("invalid task id", slog.String("error", err.Error()))
		HandleServiceError(w, r, err)
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("failed to decode update task request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity,
			"Invalid request payload", CodeValidationError)
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Debug("update task request validation failed", slog.String("error", err.Error()))
		RespondWithValidationError(w, r, err)
		return
	}

	input := service.UpdateTaskInput{
		Title:             req.Title,
		Description:       req.Description,
		DueDate:           req.DueDate,
		RegenerateSummary: req.RegenerateSummary,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		input.Priority = &priority
	}

	task, summaryErr, err := h.taskService.Update(r.Context(), id, input)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	if summaryErr != "" {
		log.Warn("task updated without fresh summary",
			slog.String("task_id", task.ID.String()),
			slog.String("summary_error", summaryErr))
	}

	log.Debug("task updated", slog.String("task_id", task.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /tasks/{id} requests
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathUUID(r, "id")
	if err != nil {
		log.Debug("invalid task id", slog.String("error", err.Error()))
		HandleServiceError(w, r, err)
		return
	}

	deletedID, err := h.taskService.Delete(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	log.Debug("task deleted", slog.String("task_id", deletedID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, TaskDeleteResponse{
		Message:   "Task deleted successfully",
		DeletedID: deletedID,
	})
}

// HealthHandler serves the health check endpoint.
type HealthHandler struct {
	serviceName string
}

// NewHealthHandler creates a HealthHandler reporting the given service name.
func NewHealthHandler(serviceName string) *HealthHandler {
	return &HealthHandler{serviceName: serviceName}
}

// Health handles GET /health requests
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: h.serviceName,
	})
}
