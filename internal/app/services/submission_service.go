package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/assignhub/assignhub/internal/app/models"
	"github.com/assignhub/assignhub/internal/app/models/dto"
	"github.com/assignhub/assignhub/internal/app/policy"
	"github.com/assignhub/assignhub/internal/app/repositories"
	"github.com/assignhub/assignhub/internal/pkg/apperrors"
	"github.com/assignhub/assignhub/internal/pkg/notification"
)

// notifyTimeout bounds the fire-and-forget publish after a submission is
// accepted.
const notifyTimeout = 5 * time.Second

// SubmissionService defines the interface for submission operations.
type SubmissionService interface {
	Create(ctx context.Context, authHeader, assignmentID string, req *dto.SubmissionRequest) (*dto.SubmissionResponse, error)
}

// submissionServiceImpl implements SubmissionService
type submissionServiceImpl struct {
	assignments repositories.AssignmentStore
	submissions repositories.SubmissionStore
	engine      *policy.Engine
	publisher   notification.Publisher
	logger      zerolog.Logger
	now         func() time.Time
}

// NewSubmissionService creates a new SubmissionService
func NewSubmissionService(
	assignments repositories.AssignmentStore,
	submissions repositories.SubmissionStore,
	engine *policy.Engine,
	publisher notification.Publisher,
	logger zerolog.Logger,
) SubmissionService {
	return &submissionServiceImpl{
		assignments: assignments,
		submissions: submissions,
		engine:      engine,
		publisher:   publisher,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Create records a submission after the resource guard and an eligibility
// check run inside the same transaction that counts prior attempts. The
// count and insert are atomic, so two concurrent submissions cannot both
// slip under the attempt limit.
//
// Only the assignment's owner may submit. The notification publish happens
// after commit and never affects the response; failures are logged and
// dropped.
func (s *submissionServiceImpl) Create(ctx context.Context, authHeader, assignmentID string, req *dto.SubmissionRequest) (*dto.SubmissionResponse, error) {
	user, cred, err := s.engine.LookupCredentialUser(ctx, authHeader)
	if err != nil {
		return nil, err
	}

	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("error getting assignment: %w", err)
	}
	if assignment == nil {
		return nil, apperrors.ErrAssignmentNotFound
	}

	if err := s.engine.AuthorizeUser(user, cred, assignment.OwnerUserID); err != nil {
		return nil, err
	}

	submittedAt := s.now()
	submission := &models.Submission{
		AssignmentID:  assignment.ID,
		SubmissionURL: req.SubmissionURL,
	}

	err = s.submissions.CreateChecked(ctx, submission, func(locked *models.Assignment, attempts int) error {
		return policy.CheckSubmissionWindow(locked, attempts, submittedAt)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("submissionID", submission.ID).
		Str("assignmentID", assignment.ID).
		Str("userID", user.ID).
		Msg("Submission accepted")

	s.notify(submission, assignment, user)

	resp := dto.NewSubmissionResponse(submission)
	return &resp, nil
}

// notify publishes the submission event on a detached context so a slow or
// failing broker cannot delay the response.
func (s *submissionServiceImpl) notify(submission *models.Submission, assignment *models.Assignment, user *models.User) {
	event := notification.SubmissionEvent{
		SubmissionURL: submission.SubmissionURL,
		UserID:        user.ID,
		AssignmentID:  assignment.ID,
		SubmissionID:  submission.ID,
		UserEmail:     user.Email,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Error().Err(err).
				Str("submissionID", submission.ID).
				Msg("Failed to publish submission notification")
		}
	}()
}
