// Package notification publishes submission-created events.
//
// Delivery is at most once, best effort: publishing happens off the response
// path and failures are logged, never surfaced to the submitter.
package notification

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
)

// SubmissionEvent is the payload published when a submission is created.
type SubmissionEvent struct {
	SubmissionURL string `json:"submission_url"`
	UserID        string `json:"user_id"`
	AssignmentID  string `json:"assignment_id"`
	SubmissionID  string `json:"submission_id"`
	UserEmail     string `json:"user_email"`
}

// Publisher is the notification sink interface.
type Publisher interface {
	Publish(ctx context.Context, event SubmissionEvent) error
}

// LogPublisher writes events to the log instead of a real sink. Used when no
// SNS topic is configured, so development setups need no AWS credentials.
type LogPublisher struct {
	Logger zerolog.Logger
}

// Publish implements Publisher.
func (p LogPublisher) Publish(_ context.Context, event SubmissionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	p.Logger.Info().RawJSON("event", payload).Msg("Submission notification (no SNS topic configured)")
	return nil
}
