package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/assignhub/assignhub/internal/app/models"
	"github.com/assignhub/assignhub/internal/app/models/dto"
	"github.com/assignhub/assignhub/internal/app/policy"
	"github.com/assignhub/assignhub/internal/app/repositories"
	"github.com/assignhub/assignhub/internal/pkg/apperrors"
)

// AssignmentService defines the interface for assignment operations.
//
// authHeader is the raw Authorization header; every mutating or single-item
// read re-validates the Basic credential through the policy engine. Listing
// is unauthenticated, matching the exposed contract.
type AssignmentService interface {
	Create(ctx context.Context, authHeader string, rawPayload []byte) (*dto.AssignmentResponse, error)
	GetByID(ctx context.Context, authHeader, id string) (*dto.AssignmentResponse, error)
	GetAll(ctx context.Context) ([]dto.AssignmentResponse, error)
	Update(ctx context.Context, authHeader, id string, rawPayload []byte) error
	Delete(ctx context.Context, authHeader, id string) error
}

// assignmentServiceImpl implements AssignmentService
type assignmentServiceImpl struct {
	assignments repositories.AssignmentStore
	engine      *policy.Engine
	logger      zerolog.Logger
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(assignments repositories.AssignmentStore, engine *policy.Engine, logger zerolog.Logger) AssignmentService {
	return &assignmentServiceImpl{
		assignments: assignments,
		engine:      engine,
		logger:      logger,
	}
}

// Create validates the payload and credential, then stores a new assignment
// owned by the authenticated user. No resource exists yet, so there is no
// ownership step.
func (s *assignmentServiceImpl) Create(ctx context.Context, authHeader string, rawPayload []byte) (*dto.AssignmentResponse, error) {
	payload, err := policy.DecodeAssignmentPayload(rawPayload)
	if err != nil {
		return nil, err
	}

	user, err := s.engine.Authenticate(ctx, authHeader)
	if err != nil {
		return nil, err
	}

	assignment := &models.Assignment{
		Name:          payload.Name,
		Points:        payload.Points,
		NumOfAttempts: payload.NumOfAttempts,
		Deadline:      payload.Deadline,
		OwnerUserID:   user.ID,
	}

	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("error creating assignment: %w", err)
	}

	s.logger.Info().
		Str("assignmentID", assignment.ID).
		Str("userID", user.ID).
		Msg("Assignment created")

	resp := dto.NewAssignmentResponse(assignment)
	return &resp, nil
}

// GetByID returns a single assignment after the full resource guard.
func (s *assignmentServiceImpl) GetByID(ctx context.Context, authHeader, id string) (*dto.AssignmentResponse, error) {
	assignment, err := s.guarded(ctx, authHeader, id)
	if err != nil {
		return nil, err
	}

	resp := dto.NewAssignmentResponse(assignment)
	return &resp, nil
}

// GetAll returns every assignment. The listing endpoint takes no credential.
func (s *assignmentServiceImpl) GetAll(ctx context.Context) ([]dto.AssignmentResponse, error) {
	assignments, err := s.assignments.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing assignments: %w", err)
	}

	return dto.NewAssignmentListResponse(assignments), nil
}

// Update revalidates the full payload and rewrites the assignment's mutable
// fields.
func (s *assignmentServiceImpl) Update(ctx context.Context, authHeader, id string, rawPayload []byte) error {
	assignment, err := s.guarded(ctx, authHeader, id)
	if err != nil {
		return err
	}

	payload, err := policy.DecodeAssignmentPayload(rawPayload)
	if err != nil {
		return err
	}

	assignment.Name = payload.Name
	assignment.Points = payload.Points
	assignment.NumOfAttempts = payload.NumOfAttempts
	assignment.Deadline = payload.Deadline

	if err := s.assignments.Update(ctx, assignment); err != nil {
		return fmt.Errorf("error updating assignment: %w", err)
	}

	s.logger.Info().Str("assignmentID", assignment.ID).Msg("Assignment updated")
	return nil
}

// Delete removes an assignment after the resource guard.
func (s *assignmentServiceImpl) Delete(ctx context.Context, authHeader, id string) error {
	assignment, err := s.guarded(ctx, authHeader, id)
	if err != nil {
		return err
	}

	if err := s.assignments.Delete(ctx, assignment.ID); err != nil {
		return fmt.Errorf("error deleting assignment: %w", err)
	}

	s.logger.Info().Str("assignmentID", assignment.ID).Msg("Assignment deleted")
	return nil
}

// guarded resolves the assignment and runs the resource guard against its
// owner. Check order is fixed across handlers: header syntax, user
// existence, resource existence, ownership, password. Ownership is decided
// before the password check, but a correct owner with a wrong password is
// never granted.
func (s *assignmentServiceImpl) guarded(ctx context.Context, authHeader, id string) (*models.Assignment, error) {
	user, cred, err := s.engine.LookupCredentialUser(ctx, authHeader)
	if err != nil {
		return nil, err
	}

	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting assignment: %w", err)
	}
	if assignment == nil {
		return nil, apperrors.ErrAssignmentNotFound
	}

	if err := s.engine.AuthorizeUser(user, cred, assignment.OwnerUserID); err != nil {
		return nil, err
	}

	return assignment, nil
}
