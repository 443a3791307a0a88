package database

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amaan1133/eagle/internal/apperrors"
)

func TestWithRetrySucceedsFirstTry(t *testing.T) {
	calls := 0
	err := WithRetry(func() error {
		calls++
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetryDoesNotRetryPolicyErrors(t *testing.T) {
	calls := 0
	err := WithRetry(func() error {
		calls++
		return apperrors.ErrForbidden
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Equal(t, 1, calls)
}

func TestWithRetryDoesNotRetryPlainStorageFaults(t *testing.T) {
	calls := 0
	err := WithRetry(func() error {
		calls++
		return apperrors.NewStorageError("insert", errors.New("constraint violation"))
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetryRetriesLockedDatabase(t *testing.T) {
	calls := 0
	err := WithRetry(func() error {
		calls++
		if calls < 3 {
			return apperrors.NewStorageError("insert", errors.New("database is locked"))
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetryGivesUpEventually(t *testing.T) {
	calls := 0
	err := WithRetry(func() error {
		calls++
		return apperrors.NewStorageError("insert", errors.New("database is locked"))
	})
	assert.Error(t, err)
	assert.True(t, apperrors.IsStorageError(err))
	assert.Equal(t, maxRetries, calls)
}
