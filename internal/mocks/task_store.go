package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"

	"github.com/briefops/taskbrief-api/internal/domain"
	"github.com/briefops/taskbrief-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// Custom behavior functions
	CreateFn  func(ctx context.Context, task *domain.Task) error
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ListFn    func(ctx context.Context, filter store.ListTasksFilter) ([]*domain.Task, int, error)
	UpdateFn  func(ctx context.Context, task *domain.Task) error
	DeleteFn  func(ctx context.Context, id uuid.UUID) error
	WithTxFn  func(tx *sql.Tx) store.TaskStore

	// Default response values
	Task  *domain.Task
	Tasks []*domain.Task
	Total int
	Err   error

	// Call tracking for verification
	mu          sync.Mutex
	CreateCalls []*domain.Task
	GetCalls    []uuid.UUID
	ListCalls   []store.ListTasksFilter
	UpdateCalls []*domain.Task
	DeleteCalls []uuid.UUID
	WithTxCount int
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// Create implements store.TaskStore.Create
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, task)
	m.mu.Unlock()

	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	return m.Err
}

// GetByID implements store.TaskStore.GetByID
func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	m.mu.Lock()
	m.GetCalls = append(m.GetCalls, id)
	m.mu.Unlock()

	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.Task, m.Err
}

// List implements store.TaskStore.List
func (m *MockTaskStore) List(
	ctx context.Context,
	filter store.ListTasksFilter,
) ([]*domain.Task, int, error) {
	m.mu.Lock()
	m.ListCalls = append(m.ListCalls, filter)
	m.mu.Unlock()

	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	return m.Tasks, m.Total, m.Err
}

// Update implements store.TaskStore.Update
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	m.mu.Lock()
	m.UpdateCalls = append(m.UpdateCalls, task)
	m.mu.Unlock()

	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	return m.Err
}

// Delete implements store.TaskStore.Delete
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	m.DeleteCalls = append(m.DeleteCalls, id)
	m.mu.Unlock()

	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Err
}

// WithTx implements store.TaskStore.WithTx
// By default the mock ignores the transaction and returns itself, which keeps
// service tests focused on orchestration rather than transaction plumbing.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	m.mu.Lock()
	m.WithTxCount++
	m.mu.Unlock()

	if m.WithTxFn != nil {
		return m.WithTxFn(tx)
	}
	return m
}
