package api

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/briefops/taskbrief-api/internal/domain"
)

// Common request/response structures

// CreateTaskRequest defines the payload for the task creation endpoint.
// GenerateSummary defaults to true when omitted.
type CreateTaskRequest struct {
	Title           string     `json:"title"            validate:"required,max=200"`
	Description     string     `json:"description"      validate:"required,min=10,max=5000"`
	Priority        string     `json:"priority"         validate:"omitempty,oneof=low medium high critical"`
	DueDate         *time.Time `json:"due_date"`
	GenerateSummary *bool      `json:"generate_summary"`
}

// WantsSummary reports whether a summary should be generated for this
// request, defaulting to true when the field is omitted.
func (r CreateTaskRequest) WantsSummary() bool {
	return r.GenerateSummary == nil || *r.GenerateSummary
}

// UpdateTaskRequest defines the payload for the task update endpoint.
// All fields are optional; omitted fields are left untouched.
type UpdateTaskRequest struct {
	Title             *string    `json:"title"              validate:"omitempty,max=200"`
	Description       *string    `json:"description"        validate:"omitempty,min=10,max=5000"`
	Status            *string    `json:"status"             validate:"omitempty,oneof=pending in_progress completed cancelled"`
	Priority          *string    `json:"priority"           validate:"omitempty,oneof=low medium high critical"`
	DueDate           *time.Time `json:"due_date"`
	RegenerateSummary bool       `json:"regenerate_summary"`
}

// TaskResponse represents the response data for a single task.
type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Summary     *string    `json:"summary"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskListResponse represents a paginated task listing.
type TaskListResponse struct {
	Tasks      []TaskResponse `json:"tasks"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// TaskDeleteResponse confirms a deletion.
type TaskDeleteResponse struct {
	Message   string    `json:"message"`
	DeletedID uuid.UUID `json:"deleted_id"`
}

// HealthResponse is the body of the health check endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// taskToResponse transforms a domain task into its response shape.
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Summary:     task.Summary,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// tasksToListResponse assembles the paginated listing body.
// total_pages is ceil(total/page_size), or zero when nothing matched.
func tasksToListResponse(tasks []*domain.Task, total, page, pageSize int) TaskListResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, taskToResponse(task))
	}

	totalPages := 0
	if total > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(pageSize)))
	}

	return TaskListResponse{
		Tasks:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
