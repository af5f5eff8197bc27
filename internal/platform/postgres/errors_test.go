package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briefops/taskbrief-api/internal/store"
)

// mockResult implements sql.Result for testing
type mockResult struct {
	rowsAffected int64
	err          error
}

func (m mockResult) LastInsertId() (int64, error) {
	return 0, nil
}

func (m mockResult) RowsAffected() (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.rowsAffected, nil
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		err           error
		expectedError error
	}{
		{
			name:          "nil error",
			err:           nil,
			expectedError: nil,
		},
		{
			name:          "sql no rows becomes task not found",
			err:           sql.ErrNoRows,
			expectedError: store.ErrTaskNotFound,
		},
		{
			name:          "wrapped sql no rows becomes task not found",
			err:           fmt.Errorf("query failed: %w", sql.ErrNoRows),
			expectedError: store.ErrTaskNotFound,
		},
		{
			name: "unique violation becomes storage failure",
			err: &pgconn.PgError{
				Code:           uniqueViolationCode,
				ConstraintName: "tasks_pkey",
			},
			expectedError: store.ErrStorageFailed,
		},
		{
			name: "check violation becomes storage failure",
			err: &pgconn.PgError{
				Code:           checkViolationCode,
				ConstraintName: "tasks_status_check",
			},
			expectedError: store.ErrStorageFailed,
		},
		{
			name: "not null violation becomes storage failure",
			err: &pgconn.PgError{
				Code:       notNullViolationCode,
				ColumnName: "title",
			},
			expectedError: store.ErrStorageFailed,
		},
		{
			name: "other postgres error becomes storage failure",
			err: &pgconn.PgError{
				Code: "57P01", // admin_shutdown
			},
			expectedError: store.ErrStorageFailed,
		},
		{
			name:          "generic error becomes storage failure",
			err:           errors.New("driver: bad connection"),
			expectedError: store.ErrStorageFailed,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mapped := MapError(tc.err)

			if tc.expectedError == nil {
				assert.NoError(t, mapped)
				return
			}
			assert.ErrorIs(t, mapped, tc.expectedError)
		})
	}
}

func TestMapError_NotFoundIsNotStorageFailure(t *testing.T) {
	t.Parallel()

	mapped := MapError(sql.ErrNoRows)
	assert.True(t, store.IsNotFoundError(mapped))
	assert.False(t, store.IsStorageError(mapped))
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNotFoundError(sql.ErrNoRows))
	assert.True(t, IsNotFoundError(store.ErrTaskNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("wrapped: %w", store.ErrNotFound)))
	assert.False(t, IsNotFoundError(errors.New("some other error")))
	assert.False(t, IsNotFoundError(nil))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	t.Run("rows affected", func(t *testing.T) {
		t.Parallel()

		err := CheckRowsAffected(mockResult{rowsAffected: 1})
		assert.NoError(t, err)
	})

	t.Run("no rows affected returns task not found", func(t *testing.T) {
		t.Parallel()

		err := CheckRowsAffected(mockResult{rowsAffected: 0})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("rows affected failure returns storage failure", func(t *testing.T) {
		t.Parallel()

		err := CheckRowsAffected(mockResult{err: errors.New("not supported")})
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrStorageFailed)
	})

	t.Run("nil result", func(t *testing.T) {
		t.Parallel()

		err := CheckRowsAffected(nil)
		assert.Error(t, err)
	})
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: checkViolationCode}))
	assert.False(t, IsUniqueViolation(errors.New("not a pg error")))
}
