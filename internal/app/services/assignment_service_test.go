package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assignhub/assignhub/internal/pkg/apperrors"
	"github.com/assignhub/assignhub/internal/pkg/auth"
)

type assignmentFixture struct {
	svc         AssignmentService
	users       *memUserStore
	assignments *memAssignmentStore
}

func newAssignmentFixture() *assignmentFixture {
	users := newMemUserStore()
	assignments := newMemAssignmentStore()
	return &assignmentFixture{
		svc:         NewAssignmentService(assignments, testEngine(users), zerolog.Nop()),
		users:       users,
		assignments: assignments,
	}
}

func assignmentBody(name string) []byte {
	return []byte(`{"name":"` + name + `","points":5,"num_of_attemps":3,"deadline":"2026-09-30T23:59:59Z"}`)
}

func TestAssignmentCreate(t *testing.T) {
	fix := newAssignmentFixture()
	user, header := seedUser(t, fix.users, "jane@example.com", "s3cret")

	resp, err := fix.svc.Create(context.Background(), header, assignmentBody("HW1"))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "HW1", resp.Name)
	assert.Equal(t, 5, resp.Points)
	assert.Equal(t, 3, resp.NumOfAttempts)

	stored, err := fix.assignments.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.OwnerUserID)
}

func TestAssignmentCreateInvalidPayload(t *testing.T) {
	fix := newAssignmentFixture()
	_, header := seedUser(t, fix.users, "jane@example.com", "s3cret")

	// Payload validation runs before the credential is touched.
	_, err := fix.svc.Create(context.Background(), header, []byte(`{"name":"HW1"}`))
	assert.ErrorIs(t, err, apperrors.ErrInvalidFields)
}

func TestAssignmentCreateBadCredential(t *testing.T) {
	fix := newAssignmentFixture()
	seedUser(t, fix.users, "jane@example.com", "s3cret")

	_, err := fix.svc.Create(context.Background(), auth.EncodeBasicCredential("jane@example.com", "wrong"), assignmentBody("HW1"))
	assert.ErrorIs(t, err, apperrors.ErrPasswordMismatch)
}

func TestAssignmentGetByID(t *testing.T) {
	fix := newAssignmentFixture()
	_, header := seedUser(t, fix.users, "jane@example.com", "s3cret")

	created, err := fix.svc.Create(context.Background(), header, assignmentBody("HW1"))
	require.NoError(t, err)

	got, err := fix.svc.GetByID(context.Background(), header, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestAssignmentGuardPrecedence(t *testing.T) {
	fix := newAssignmentFixture()
	_, ownerHeader := seedUser(t, fix.users, "owner@example.com", "s3cret")
	_, otherHeader := seedUser(t, fix.users, "other@example.com", "pa55")

	created, err := fix.svc.Create(context.Background(), ownerHeader, assignmentBody("HW1"))
	require.NoError(t, err)

	// Header and user errors outrank a missing resource.
	_, err = fix.svc.GetByID(context.Background(), "", uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrAuthHeaderMissing)

	_, err = fix.svc.GetByID(context.Background(), auth.EncodeBasicCredential("nobody@example.com", "x"), created.ID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	// A valid user hitting a missing resource gets not-found before any
	// password work.
	_, err = fix.svc.GetByID(context.Background(), auth.EncodeBasicCredential("owner@example.com", "wrong"), uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrAssignmentNotFound)

	// Non-owner is refused on ownership even with a wrong password.
	_, err = fix.svc.GetByID(context.Background(), auth.EncodeBasicCredential("other@example.com", "wrong"), created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotResourceOwner)

	_, err = fix.svc.GetByID(context.Background(), otherHeader, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotResourceOwner)

	// The owner with a wrong password is still refused.
	_, err = fix.svc.GetByID(context.Background(), auth.EncodeBasicCredential("owner@example.com", "wrong"), created.ID)
	assert.ErrorIs(t, err, apperrors.ErrPasswordMismatch)
}

func TestAssignmentGetAllUnauthenticated(t *testing.T) {
	fix := newAssignmentFixture()
	_, header := seedUser(t, fix.users, "jane@example.com", "s3cret")

	_, err := fix.svc.Create(context.Background(), header, assignmentBody("HW1"))
	require.NoError(t, err)
	_, err = fix.svc.Create(context.Background(), header, assignmentBody("HW2"))
	require.NoError(t, err)

	list, err := fix.svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestAssignmentUpdate(t *testing.T) {
	fix := newAssignmentFixture()
	_, header := seedUser(t, fix.users, "jane@example.com", "s3cret")

	created, err := fix.svc.Create(context.Background(), header, assignmentBody("HW1"))
	require.NoError(t, err)

	body := []byte(`{"name":"HW1 v2","points":9,"num_of_attemps":5,"deadline":"2026-10-15T12:00:00Z"}`)
	require.NoError(t, fix.svc.Update(context.Background(), header, created.ID, body))

	got, err := fix.svc.GetByID(context.Background(), header, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "HW1 v2", got.Name)
	assert.Equal(t, 9, got.Points)
	assert.Equal(t, 5, got.NumOfAttempts)
}

func TestAssignmentUpdateInvalidPayload(t *testing.T) {
	fix := newAssignmentFixture()
	_, header := seedUser(t, fix.users, "jane@example.com", "s3cret")

	created, err := fix.svc.Create(context.Background(), header, assignmentBody("HW1"))
	require.NoError(t, err)

	err = fix.svc.Update(context.Background(), header, created.ID, []byte(`{"points":11}`))
	assert.ErrorIs(t, err, apperrors.ErrInvalidFields)
}

func TestAssignmentDelete(t *testing.T) {
	fix := newAssignmentFixture()
	_, header := seedUser(t, fix.users, "jane@example.com", "s3cret")

	created, err := fix.svc.Create(context.Background(), header, assignmentBody("HW1"))
	require.NoError(t, err)

	require.NoError(t, fix.svc.Delete(context.Background(), header, created.ID))

	_, err = fix.svc.GetByID(context.Background(), header, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrAssignmentNotFound)
}
