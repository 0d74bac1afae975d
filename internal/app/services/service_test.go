package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/assignhub/assignhub/internal/app/models"
	"github.com/assignhub/assignhub/internal/app/policy"
	"github.com/assignhub/assignhub/internal/app/repositories"
	"github.com/assignhub/assignhub/internal/pkg/apperrors"
	"github.com/assignhub/assignhub/internal/pkg/auth"
	"github.com/assignhub/assignhub/internal/pkg/notification"
)

// In-memory stores standing in for the Postgres repositories. They mirror
// the repository semantics the services rely on: generated ids, nil for a
// missing row, and an atomic check inside submission creation.

type memUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[string]*models.User{}}
}

func (s *memUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	s.users[user.Email] = user
	return nil
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[email], nil
}

func (s *memUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[email]
	return ok, nil
}

type memAssignmentStore struct {
	mu          sync.Mutex
	assignments map[string]*models.Assignment
}

func newMemAssignmentStore() *memAssignmentStore {
	return &memAssignmentStore{assignments: map[string]*models.Assignment{}}
}

func (s *memAssignmentStore) Create(_ context.Context, assignment *models.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	assignment.ID = uuid.NewString()
	assignment.AssignmentCreated = time.Now().UTC()
	assignment.AssignmentUpdated = assignment.AssignmentCreated
	clone := *assignment
	s.assignments[assignment.ID] = &clone
	return nil
}

func (s *memAssignmentStore) GetByID(_ context.Context, id string) (*models.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assignments[id]
	if !ok {
		return nil, nil
	}
	clone := *a
	return &clone, nil
}

func (s *memAssignmentStore) GetAll(_ context.Context) ([]models.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]models.Assignment, 0, len(s.assignments))
	for _, a := range s.assignments {
		all = append(all, *a)
	}
	return all, nil
}

func (s *memAssignmentStore) Update(_ context.Context, assignment *models.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	assignment.AssignmentUpdated = time.Now().UTC()
	clone := *assignment
	s.assignments[assignment.ID] = &clone
	return nil
}

func (s *memAssignmentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.assignments, id)
	return nil
}

type memSubmissionStore struct {
	mu          sync.Mutex
	assignments *memAssignmentStore
	byAssign    map[string][]models.Submission
}

func newMemSubmissionStore(assignments *memAssignmentStore) *memSubmissionStore {
	return &memSubmissionStore{
		assignments: assignments,
		byAssign:    map[string][]models.Submission{},
	}
}

func (s *memSubmissionStore) CreateChecked(_ context.Context, submission *models.Submission, check repositories.EligibilityCheck) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.assignments.mu.Lock()
	assignment, ok := s.assignments.assignments[submission.AssignmentID]
	s.assignments.mu.Unlock()
	if !ok {
		return apperrors.ErrAssignmentNotFound
	}

	if err := check(assignment, len(s.byAssign[submission.AssignmentID])); err != nil {
		return err
	}

	submission.ID = uuid.NewString()
	submission.SubmissionDate = time.Now().UTC()
	submission.SubmissionUpdated = submission.SubmissionDate
	s.byAssign[submission.AssignmentID] = append(s.byAssign[submission.AssignmentID], *submission)
	return nil
}

func (s *memSubmissionStore) CountForAssignment(_ context.Context, assignmentID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byAssign[assignmentID]), nil
}

// capturingPublisher records published events and signals each publish.
type capturingPublisher struct {
	mu     sync.Mutex
	events []notification.SubmissionEvent
	err    error
	done   chan struct{}
}

func newCapturingPublisher() *capturingPublisher {
	return &capturingPublisher{done: make(chan struct{}, 8)}
}

func (p *capturingPublisher) Publish(_ context.Context, event notification.SubmissionEvent) error {
	p.mu.Lock()
	p.events = append(p.events, event)
	p.mu.Unlock()
	p.done <- struct{}{}
	return p.err
}

func (p *capturingPublisher) wait(t *testing.T) notification.SubmissionEvent {
	t.Helper()
	select {
	case <-p.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification publish")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}

// seedUser stores an account with a hashed password and returns it together
// with its Authorization header value.
func seedUser(t *testing.T, store *memUserStore, email, password string) (*models.User, string) {
	t.Helper()

	hashed, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     email,
		Password:  hashed,
	}
	require.NoError(t, store.Create(context.Background(), user))
	return user, auth.EncodeBasicCredential(email, password)
}

func testEngine(users *memUserStore) *policy.Engine {
	return policy.NewEngine(users)
}
