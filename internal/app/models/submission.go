package models

import (
	"time"
)

// Submission defines the submission model based on the 'submissions' table.
// Submissions are append-only: never updated, never deleted through the API.
type Submission struct {
	ID                string    `json:"id" db:"id"`
	AssignmentID      string    `json:"assignment_id" db:"assignment_id"`
	SubmissionURL     string    `json:"submission_url" db:"submission_url"`
	SubmissionDate    time.Time `json:"submission_date" db:"submission_date"`
	SubmissionUpdated time.Time `json:"submission_updated" db:"submission_updated"`
}
