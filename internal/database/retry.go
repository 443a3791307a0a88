package database

import (
	"strings"
	"time"

	"github.com/amaan1133/eagle/internal/apperrors"
)

const (
	maxRetries     = 5
	baseRetryDelay = 100 * time.Millisecond
)

// WithRetry runs fn, retrying with exponential backoff on transient
// contention (sqlite busy/locked). Logical policy failures are returned
// immediately: only storage faults are ever retried.
func WithRetry(fn func() error) error {
	var err error
	delay := baseRetryDelay

	for attempt := 0; attempt < maxRetries; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}
		time.Sleep(delay)
		delay *= 2
	}

	return err
}

func retryable(err error) bool {
	if !apperrors.IsStorageError(err) {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "SQLITE_BUSY")
}
