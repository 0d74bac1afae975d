package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assignhub/assignhub/internal/app/models"
	"github.com/assignhub/assignhub/internal/app/models/dto"
	"github.com/assignhub/assignhub/internal/pkg/apperrors"
	"github.com/assignhub/assignhub/internal/pkg/auth"
)

type submissionFixture struct {
	svc         SubmissionService
	users       *memUserStore
	assignments *memAssignmentStore
	submissions *memSubmissionStore
	publisher   *capturingPublisher
}

func newSubmissionFixture() *submissionFixture {
	users := newMemUserStore()
	assignments := newMemAssignmentStore()
	submissions := newMemSubmissionStore(assignments)
	publisher := newCapturingPublisher()
	return &submissionFixture{
		svc:         NewSubmissionService(assignments, submissions, testEngine(users), publisher, zerolog.Nop()),
		users:       users,
		assignments: assignments,
		submissions: submissions,
		publisher:   publisher,
	}
}

func (f *submissionFixture) seedAssignment(t *testing.T, ownerID string, attempts int, deadline time.Time) *models.Assignment {
	t.Helper()
	assignment := &models.Assignment{
		Name:          "HW1",
		Points:        5,
		NumOfAttempts: attempts,
		Deadline:      deadline,
		OwnerUserID:   ownerID,
	}
	require.NoError(t, f.assignments.Create(context.Background(), assignment))
	return assignment
}

func submissionReq() *dto.SubmissionRequest {
	return &dto.SubmissionRequest{SubmissionURL: "https://github.com/jane/hw1/archive/main.zip"}
}

func TestSubmissionCreate(t *testing.T) {
	fix := newSubmissionFixture()
	user, header := seedUser(t, fix.users, "jane@example.com", "s3cret")
	assignment := fix.seedAssignment(t, user.ID, 3, time.Now().UTC().Add(time.Hour))

	resp, err := fix.svc.Create(context.Background(), header, assignment.ID, submissionReq())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, assignment.ID, resp.AssignmentID)
	assert.Equal(t, submissionReq().SubmissionURL, resp.SubmissionURL)

	event := fix.publisher.wait(t)
	assert.Equal(t, resp.ID, event.SubmissionID)
	assert.Equal(t, user.ID, event.UserID)
	assert.Equal(t, user.Email, event.UserEmail)
	assert.Equal(t, submissionReq().SubmissionURL, event.SubmissionURL)
}

func TestSubmissionAttemptLimit(t *testing.T) {
	fix := newSubmissionFixture()
	user, header := seedUser(t, fix.users, "jane@example.com", "s3cret")
	assignment := fix.seedAssignment(t, user.ID, 2, time.Now().UTC().Add(time.Hour))

	for i := 0; i < 2; i++ {
		_, err := fix.svc.Create(context.Background(), header, assignment.ID, submissionReq())
		require.NoError(t, err)
	}

	_, err := fix.svc.Create(context.Background(), header, assignment.ID, submissionReq())
	assert.ErrorIs(t, err, apperrors.ErrAttemptLimitExceeded)

	count, err := fix.submissions.CountForAssignment(context.Background(), assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

// Concurrent submissions against one assignment never exceed the attempt
// limit: the count and insert happen under the same lock, so exactly
// NumOfAttempts of the racing calls are accepted.
func TestSubmissionAttemptLimitConcurrent(t *testing.T) {
	fix := newSubmissionFixture()
	user, header := seedUser(t, fix.users, "jane@example.com", "s3cret")
	assignment := fix.seedAssignment(t, user.ID, 3, time.Now().UTC().Add(time.Hour))

	const racers = 8
	errs := make(chan error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := fix.svc.Create(context.Background(), header, assignment.ID, submissionReq())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	accepted := 0
	for err := range errs {
		if err == nil {
			accepted++
			continue
		}
		assert.ErrorIs(t, err, apperrors.ErrAttemptLimitExceeded)
	}
	assert.Equal(t, 3, accepted)

	count, err := fix.submissions.CountForAssignment(context.Background(), assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestSubmissionDeadlinePassed(t *testing.T) {
	fix := newSubmissionFixture()
	user, header := seedUser(t, fix.users, "jane@example.com", "s3cret")
	assignment := fix.seedAssignment(t, user.ID, 3, time.Now().UTC().Add(-time.Minute))

	_, err := fix.svc.Create(context.Background(), header, assignment.ID, submissionReq())
	assert.ErrorIs(t, err, apperrors.ErrDeadlinePassed)

	count, err := fix.submissions.CountForAssignment(context.Background(), assignment.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSubmissionGuard(t *testing.T) {
	fix := newSubmissionFixture()
	user, _ := seedUser(t, fix.users, "owner@example.com", "s3cret")
	_, otherHeader := seedUser(t, fix.users, "other@example.com", "pa55")
	assignment := fix.seedAssignment(t, user.ID, 3, time.Now().UTC().Add(time.Hour))

	_, err := fix.svc.Create(context.Background(), "", assignment.ID, submissionReq())
	assert.ErrorIs(t, err, apperrors.ErrAuthHeaderMissing)

	_, err = fix.svc.Create(context.Background(), otherHeader, assignment.ID, submissionReq())
	assert.ErrorIs(t, err, apperrors.ErrNotResourceOwner)

	_, err = fix.svc.Create(context.Background(), auth.EncodeBasicCredential("owner@example.com", "wrong"), assignment.ID, submissionReq())
	assert.ErrorIs(t, err, apperrors.ErrPasswordMismatch)

	_, err = fix.svc.Create(context.Background(), auth.EncodeBasicCredential("owner@example.com", "s3cret"), "missing-id", submissionReq())
	assert.ErrorIs(t, err, apperrors.ErrAssignmentNotFound)
}

// A failing notification sink never surfaces to the caller.
func TestSubmissionNotifyFailureIgnored(t *testing.T) {
	fix := newSubmissionFixture()
	fix.publisher.err = errors.New("sns unreachable")
	user, header := seedUser(t, fix.users, "jane@example.com", "s3cret")
	assignment := fix.seedAssignment(t, user.ID, 3, time.Now().UTC().Add(time.Hour))

	resp, err := fix.svc.Create(context.Background(), header, assignment.ID, submissionReq())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)

	fix.publisher.wait(t)
}
