package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// TaskStatus represents the lifecycle state of a task
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// TaskPriority represents the urgency level of a task
type TaskPriority string

// Possible task priority values
const (
	TaskPriorityLow      TaskPriority = "low"
	TaskPriorityMedium   TaskPriority = "medium"
	TaskPriorityHigh     TaskPriority = "high"
	TaskPriorityCritical TaskPriority = "critical"
)

// Field length constraints, counted in characters rather than bytes and
// applied after trimming surrounding whitespace.
const (
	TitleMaxLength       = 200
	DescriptionMinLength = 10
	DescriptionMaxLength = 5000
)

// Common validation errors for Task
var (
	ErrEmptyTaskID         = errors.New("task ID cannot be empty")
	ErrEmptyTaskTitle      = errors.New("task title cannot be empty or whitespace only")
	ErrTaskTitleTooLong    = errors.New("task title cannot exceed 200 characters")
	ErrDescriptionTooShort = errors.New("task description must be at least 10 characters")
	ErrDescriptionTooLong  = errors.New("task description cannot exceed 5000 characters")
	ErrInvalidTaskStatus   = errors.New("invalid task status")
	ErrInvalidTaskPriority = errors.New("invalid task priority")
)

// Task represents a unit of work tracked by the service, optionally
// carrying an AI-generated summary. Title and description are always
// stored trimmed.
type Task struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Summary     *string      `json:"summary,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewTask creates a new Task with the given title, description, priority
// and optional due date. It generates a new UUID for the task ID, sets the
// status to pending, trims the textual fields, and sets both timestamps to
// the same instant. An empty priority defaults to medium.
// Returns an error if validation fails.
func NewTask(title, description string, priority TaskPriority, dueDate *time.Time) (*Task, error) {
	if priority == "" {
		priority = TaskPriorityMedium
	}

	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Status:      TaskStatusPending,
		Priority:    priority,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.Title == "" {
		return ErrEmptyTaskTitle
	}

	if utf8.RuneCountInString(t.Title) > TitleMaxLength {
		return ErrTaskTitleTooLong
	}

	descLen := utf8.RuneCountInString(t.Description)
	if descLen < DescriptionMinLength {
		return ErrDescriptionTooShort
	}

	if descLen > DescriptionMaxLength {
		return ErrDescriptionTooLong
	}

	if !isValidTaskStatus(t.Status) {
		return ErrInvalidTaskStatus
	}

	if !isValidTaskPriority(t.Priority) {
		return ErrInvalidTaskPriority
	}

	return nil
}

// SetTitle replaces the task's title after trimming and refreshes the
// UpdatedAt timestamp. Returns an error if the trimmed title is empty or
// too long.
func (t *Task) SetTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTaskTitle
	}
	if utf8.RuneCountInString(title) > TitleMaxLength {
		return ErrTaskTitleTooLong
	}

	t.Title = title
	t.touch()
	return nil
}

// SetDescription replaces the task's description after trimming and
// refreshes the UpdatedAt timestamp. Returns an error if the trimmed
// description is outside the allowed length range.
func (t *Task) SetDescription(description string) error {
	description = strings.TrimSpace(description)
	descLen := utf8.RuneCountInString(description)
	if descLen < DescriptionMinLength {
		return ErrDescriptionTooShort
	}
	if descLen > DescriptionMaxLength {
		return ErrDescriptionTooLong
	}

	t.Description = description
	t.touch()
	return nil
}

// SetStatus updates the task's status and refreshes the UpdatedAt
// timestamp. Returns an error if the new status is invalid.
func (t *Task) SetStatus(status TaskStatus) error {
	if !isValidTaskStatus(status) {
		return ErrInvalidTaskStatus
	}

	t.Status = status
	t.touch()
	return nil
}

// SetPriority updates the task's priority and refreshes the UpdatedAt
// timestamp. Returns an error if the new priority is invalid.
func (t *Task) SetPriority(priority TaskPriority) error {
	if !isValidTaskPriority(priority) {
		return ErrInvalidTaskPriority
	}

	t.Priority = priority
	t.touch()
	return nil
}

// SetDueDate updates the task's due date and refreshes the UpdatedAt
// timestamp.
func (t *Task) SetDueDate(dueDate time.Time) {
	t.DueDate = &dueDate
	t.touch()
}

// SetSummary attaches a generated summary to the task and refreshes the
// UpdatedAt timestamp.
func (t *Task) SetSummary(summary string) {
	t.Summary = &summary
	t.touch()
}

func (t *Task) touch() {
	t.UpdatedAt = time.Now().UTC()
}

// isValidTaskStatus checks if the given status is a valid TaskStatus.
func isValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	default:
		return false
	}
}

// isValidTaskPriority checks if the given priority is a valid TaskPriority.
func isValidTaskPriority(priority TaskPriority) bool {
	switch priority {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityCritical:
		return true
	default:
		return false
	}
}

// ParseTaskStatus converts a string to a TaskStatus.
// Returns ErrInvalidTaskStatus if the value is not one of the enumerated states.
func ParseTaskStatus(value string) (TaskStatus, error) {
	status := TaskStatus(value)
	if !isValidTaskStatus(status) {
		return "", ErrInvalidTaskStatus
	}
	return status, nil
}

// ParseTaskPriority converts a string to a TaskPriority.
// Returns ErrInvalidTaskPriority if the value is not one of the enumerated levels.
func ParseTaskPriority(value string) (TaskPriority, error) {
	priority := TaskPriority(value)
	if !isValidTaskPriority(priority) {
		return "", ErrInvalidTaskPriority
	}
	return priority, nil
}
