package store_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/briefops/taskbrief-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	assert.True(t, store.IsNotFoundError(store.ErrNotFound))
	assert.True(t, store.IsNotFoundError(store.ErrTaskNotFound))
	assert.True(t, store.IsNotFoundError(fmt.Errorf("lookup: %w", store.ErrTaskNotFound)))
	assert.False(t, store.IsNotFoundError(store.ErrStorageFailed))
	assert.False(t, store.IsNotFoundError(errors.New("boom")))
}

func TestIsStorageError(t *testing.T) {
	t.Parallel()

	assert.True(t, store.IsStorageError(store.ErrStorageFailed))
	assert.True(t, store.IsStorageError(store.ErrTransactionFailed))
	assert.True(t, store.IsStorageError(fmt.Errorf("save: %w", store.ErrStorageFailed)))
	assert.False(t, store.IsStorageError(store.ErrTaskNotFound))
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := store.NewStoreError("task", "create", "insert failed", cause)

	assert.Contains(t, err.Error(), "create operation on task failed")
	assert.Contains(t, err.Error(), "connection refused")
	assert.ErrorIs(t, err, cause)

	bare := store.NewStoreError("task", "delete", "no rows", nil)
	assert.Equal(t, "delete operation on task failed: no rows", bare.Error())
}

func TestListTasksFilterOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page     int
		pageSize int
		want     int
	}{
		{page: 1, pageSize: 10, want: 0},
		{page: 2, pageSize: 10, want: 10},
		{page: 3, pageSize: 2, want: 4},
	}

	for _, tt := range tests {
		filter := store.ListTasksFilter{Page: tt.page, PageSize: tt.pageSize}
		assert.Equal(t, tt.want, filter.Offset())
	}
}
