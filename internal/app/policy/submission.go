package policy

import (
	"time"

	"github.com/assignhub/assignhub/internal/app/models"
	"github.com/assignhub/assignhub/internal/pkg/apperrors"
)

// CheckSubmissionWindow decides whether one more submission is allowed
// against an assignment given its committed attempt count.
//
// The deadline boundary is exclusive-after: a submission at exactly the
// deadline instant is accepted, one after it is rejected. The deadline is
// checked before the attempt limit, matching the order callers observe.
func CheckSubmissionWindow(assignment *models.Assignment, attempts int, now time.Time) error {
	if now.After(assignment.Deadline) {
		return apperrors.ErrDeadlinePassed
	}
	if attempts >= assignment.NumOfAttempts {
		return apperrors.NewCustomError(apperrors.ErrAttemptLimitExceeded,
			"Submission limit exceeded for assignment "+assignment.Name)
	}
	return nil
}
