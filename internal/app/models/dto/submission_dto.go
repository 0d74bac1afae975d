package dto

import (
	"time"

	"github.com/assignhub/assignhub/internal/app/models"
)

// SubmissionRequest is the create-submission body
type SubmissionRequest struct {
	SubmissionURL string `json:"submission_url" binding:"required" validate:"required"`
}

// SubmissionResponse mirrors the original wire shape for a stored submission
type SubmissionResponse struct {
	ID                string    `json:"id"`
	AssignmentID      string    `json:"assignment_id"`
	SubmissionURL     string    `json:"submission_url"`
	SubmissionDate    time.Time `json:"submission_date"`
	SubmissionUpdated time.Time `json:"submission_updated"`
}

// NewSubmissionResponse converts a Submission model to its response DTO
func NewSubmissionResponse(s *models.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:                s.ID,
		AssignmentID:      s.AssignmentID,
		SubmissionURL:     s.SubmissionURL,
		SubmissionDate:    s.SubmissionDate,
		SubmissionUpdated: s.SubmissionUpdated,
	}
}
