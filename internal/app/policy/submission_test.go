package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/assignhub/assignhub/internal/app/models"
	"github.com/assignhub/assignhub/internal/pkg/apperrors"
)

func testAssignment(attempts int, deadline time.Time) *models.Assignment {
	return &models.Assignment{
		Name:          "HW1",
		Points:        5,
		NumOfAttempts: attempts,
		Deadline:      deadline,
	}
}

func TestCheckSubmissionWindow(t *testing.T) {
	deadline := time.Date(2026, 9, 30, 23, 59, 59, 0, time.UTC)

	assert.NoError(t, CheckSubmissionWindow(testAssignment(3, deadline), 0, deadline.Add(-time.Hour)))
	assert.NoError(t, CheckSubmissionWindow(testAssignment(3, deadline), 2, deadline.Add(-time.Hour)))
}

func TestCheckSubmissionWindowDeadlineBoundary(t *testing.T) {
	deadline := time.Date(2026, 9, 30, 23, 59, 59, 0, time.UTC)

	// Exactly at the deadline is still accepted.
	assert.NoError(t, CheckSubmissionWindow(testAssignment(3, deadline), 0, deadline))

	err := CheckSubmissionWindow(testAssignment(3, deadline), 0, deadline.Add(time.Nanosecond))
	assert.ErrorIs(t, err, apperrors.ErrDeadlinePassed)
}

func TestCheckSubmissionWindowAttemptLimit(t *testing.T) {
	deadline := time.Date(2026, 9, 30, 23, 59, 59, 0, time.UTC)
	now := deadline.Add(-time.Hour)

	err := CheckSubmissionWindow(testAssignment(3, deadline), 3, now)
	assert.ErrorIs(t, err, apperrors.ErrAttemptLimitExceeded)
	assert.Contains(t, err.Error(), "HW1")

	err = CheckSubmissionWindow(testAssignment(3, deadline), 4, now)
	assert.ErrorIs(t, err, apperrors.ErrAttemptLimitExceeded)
}

// The deadline is checked before the attempt limit when both would fail.
func TestCheckSubmissionWindowDeadlineBeatsLimit(t *testing.T) {
	deadline := time.Date(2026, 9, 30, 23, 59, 59, 0, time.UTC)

	err := CheckSubmissionWindow(testAssignment(3, deadline), 3, deadline.Add(time.Hour))
	assert.ErrorIs(t, err, apperrors.ErrDeadlinePassed)
}
