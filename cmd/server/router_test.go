package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briefops/taskbrief-api/internal/config"
	"github.com/briefops/taskbrief-api/internal/domain"
	"github.com/briefops/taskbrief-api/internal/service"
	"github.com/briefops/taskbrief-api/internal/store"
)

// stubTaskService satisfies service.TaskService for routing tests without a
// database behind it.
type stubTaskService struct{}

func (stubTaskService) Create(
	ctx context.Context,
	input service.CreateTaskInput,
) (*domain.Task, string, error) {
	task, err := domain.NewTask(input.Title, input.Description, input.Priority, input.DueDate)
	return task, "", err
}

func (stubTaskService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return nil, store.ErrTaskNotFound
}

func (stubTaskService) List(
	ctx context.Context,
	input service.ListTasksInput,
) ([]*domain.Task, int, error) {
	return []*domain.Task{}, 0, nil
}

func (stubTaskService) Update(
	ctx context.Context,
	id uuid.UUID,
	input service.UpdateTaskInput,
) (*domain.Task, string, error) {
	return nil, "", store.ErrTaskNotFound
}

func (stubTaskService) Delete(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	return uuid.Nil, store.ErrTaskNotFound
}

func testApplication() *application {
	return &application{
		config: &config.Config{
			App: config.AppConfig{
				Name: "TaskBrief API",
				Env:  "development",
			},
			Server: config.ServerConfig{
				Port:     8080,
				LogLevel: "info",
			},
		},
		logger:      slog.Default(),
		taskService: stubTaskService{},
	}
}

func TestSetupRouter_Health(t *testing.T) {
	router := testApplication().setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "TaskBrief API", body["service"])
}

func TestSetupRouter_TaskRoutesMounted(t *testing.T) {
	router := testApplication().setupRouter()

	// A task lookup flows through the v1 prefix down to the service.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "TASK_NOT_FOUND", body["error_code"])
}

func TestSetupRouter_ListEmpty(t *testing.T) {
	router := testApplication().setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(0), body["total"])
	assert.Equal(t, float64(0), body["total_pages"])
}

func TestRunMigrations_RequiresDatabaseURL(t *testing.T) {
	cfg := &config.Config{}

	err := runMigrations(cfg, "up")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database URL is empty")
}
