package dto

import (
	"time"

	"github.com/assignhub/assignhub/internal/app/models"
)

// AssignmentPayload is the validated create/update body for an assignment.
// It is produced by the policy field validator, never bound directly.
type AssignmentPayload struct {
	Name          string
	Points        int
	NumOfAttempts int
	Deadline      time.Time
}

// AssignmentResponse mirrors the original wire shape: the owner id is never
// exposed.
type AssignmentResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Points            int       `json:"points"`
	NumOfAttempts     int       `json:"num_of_attemps"`
	Deadline          time.Time `json:"deadline"`
	AssignmentCreated time.Time `json:"assignment_created"`
	AssignmentUpdated time.Time `json:"assignment_updated"`
}

// NewAssignmentResponse converts an Assignment model to its response DTO
func NewAssignmentResponse(a *models.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:                a.ID,
		Name:              a.Name,
		Points:            a.Points,
		NumOfAttempts:     a.NumOfAttempts,
		Deadline:          a.Deadline,
		AssignmentCreated: a.AssignmentCreated,
		AssignmentUpdated: a.AssignmentUpdated,
	}
}

// NewAssignmentListResponse converts a slice of assignments
func NewAssignmentListResponse(assignments []models.Assignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		responses = append(responses, NewAssignmentResponse(&assignments[i]))
	}
	return responses
}
