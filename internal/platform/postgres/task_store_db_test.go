package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briefops/taskbrief-api/internal/domain"
	"github.com/briefops/taskbrief-api/internal/store"
)

func newStoreForTest(t *testing.T) (*PostgresTaskStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewPostgresTaskStore(db, nil), mock
}

func newTaskForTest(t *testing.T) *domain.Task {
	t.Helper()

	task, err := domain.NewTask(
		"Write release notes",
		"Summarize the changes shipped in the current release cycle.",
		domain.TaskPriorityMedium,
		nil,
	)
	require.NoError(t, err)
	return task
}

func taskRows(tasks ...*domain.Task) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "title", "description", "summary", "status", "priority",
		"due_date", "created_at", "updated_at",
	})
	for _, task := range tasks {
		var summary interface{}
		if task.Summary != nil {
			summary = *task.Summary
		}
		var dueDate interface{}
		if task.DueDate != nil {
			dueDate = *task.DueDate
		}
		rows.AddRow(
			task.ID.String(),
			task.Title,
			task.Description,
			summary,
			string(task.Status),
			string(task.Priority),
			dueDate,
			task.CreatedAt,
			task.UpdatedAt,
		)
	}
	return rows
}

func TestPostgresTaskStore_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s, mock := newStoreForTest(t)
		task := newTaskForTest(t)

		mock.ExpectExec("INSERT INTO tasks").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := s.Create(context.Background(), task)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver failure becomes storage error", func(t *testing.T) {
		s, mock := newStoreForTest(t)
		task := newTaskForTest(t)

		mock.ExpectExec("INSERT INTO tasks").
			WillReturnError(assert.AnError)

		err := s.Create(context.Background(), task)
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrStorageFailed)

		var storeErr *store.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "task", storeErr.Entity)
		assert.Equal(t, "create", storeErr.Operation)
	})

	t.Run("invalid task never reaches the database", func(t *testing.T) {
		s, mock := newStoreForTest(t)
		task := newTaskForTest(t)
		task.Title = ""

		err := s.Create(context.Background(), task)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrEmptyTaskTitle)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresTaskStore_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		s, mock := newStoreForTest(t)
		task := newTaskForTest(t)
		summaryText := "a short summary"
		task.SetSummary(summaryText)

		mock.ExpectQuery("SELECT (.+) FROM tasks").
			WithArgs(task.ID).
			WillReturnRows(taskRows(task))

		got, err := s.GetByID(context.Background(), task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
		assert.Equal(t, task.Title, got.Title)
		assert.Equal(t, domain.TaskStatusPending, got.Status)
		require.NotNil(t, got.Summary)
		assert.Equal(t, summaryText, *got.Summary)
		assert.Nil(t, got.DueDate)
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newStoreForTest(t)
		id := uuid.New()

		mock.ExpectQuery("SELECT (.+) FROM tasks").
			WithArgs(id).
			WillReturnRows(taskRows())

		got, err := s.GetByID(context.Background(), id)
		require.Error(t, err)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		assert.False(t, store.IsStorageError(err))

		// not-found stays a bare sentinel, without operation context
		var storeErr *store.StoreError
		assert.False(t, errors.As(err, &storeErr))
	})
}

func TestPostgresTaskStore_List(t *testing.T) {
	t.Run("unfiltered page", func(t *testing.T) {
		s, mock := newStoreForTest(t)
		first := newTaskForTest(t)
		second := newTaskForTest(t)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tasks`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
		mock.ExpectQuery("SELECT (.+) FROM tasks ORDER BY created_at DESC").
			WithArgs(2, 2).
			WillReturnRows(taskRows(first, second))

		tasks, total, err := s.List(context.Background(), store.ListTasksFilter{
			Page:     2,
			PageSize: 2,
		})
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		assert.Len(t, tasks, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("filtered by status and priority", func(t *testing.T) {
		s, mock := newStoreForTest(t)
		status := domain.TaskStatusPending
		priority := domain.TaskPriorityHigh

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tasks WHERE status = \$1 AND priority = \$2`).
			WithArgs(status, priority).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT (.+) FROM tasks WHERE status = \$1 AND priority = \$2`).
			WithArgs(status, priority, 10, 0).
			WillReturnRows(taskRows())

		tasks, total, err := s.List(context.Background(), store.ListTasksFilter{
			Status:   &status,
			Priority: &priority,
			Page:     1,
			PageSize: 10,
		})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, tasks)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("count failure becomes storage error", func(t *testing.T) {
		s, mock := newStoreForTest(t)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tasks`).
			WillReturnError(assert.AnError)

		_, _, err := s.List(context.Background(), store.ListTasksFilter{Page: 1, PageSize: 10})
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrStorageFailed)
	})
}

func TestPostgresTaskStore_Update(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s, mock := newStoreForTest(t)
		task := newTaskForTest(t)

		mock.ExpectExec("UPDATE tasks").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := s.Update(context.Background(), task)
		assert.NoError(t, err)
	})

	t.Run("missing row becomes not found", func(t *testing.T) {
		s, mock := newStoreForTest(t)
		task := newTaskForTest(t)

		mock.ExpectExec("UPDATE tasks").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.Update(context.Background(), task)
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestPostgresTaskStore_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s, mock := newStoreForTest(t)
		id := uuid.New()

		mock.ExpectExec("DELETE FROM tasks").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := s.Delete(context.Background(), id)
		assert.NoError(t, err)
	})

	t.Run("missing row becomes not found", func(t *testing.T) {
		s, mock := newStoreForTest(t)
		id := uuid.New()

		mock.ExpectExec("DELETE FROM tasks").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.Delete(context.Background(), id)
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestPostgresTaskStore_WithTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	s := NewPostgresTaskStore(db, nil)
	task := newTaskForTest(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO tasks").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	// The transaction-scoped copy issues its statements through the tx.
	txStore := s.WithTx(tx)
	require.NoError(t, txStore.Create(context.Background(), task))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
