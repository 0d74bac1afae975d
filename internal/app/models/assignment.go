package models

import (
	"time"
)

// Assignment field constraints. Both ranges are closed and enforced at create
// and update, mirrored by check constraints in the schema.
const (
	MinPoints   = 1
	MaxPoints   = 10
	MinAttempts = 1
	MaxAttempts = 100
)

// Assignment defines the assignment model based on the 'assignments' table.
// The num_of_attemps column name (sic) is the wire contract and is kept as-is.
type Assignment struct {
	ID                string    `json:"id" db:"id"`
	Name              string    `json:"name" db:"name"`
	Points            int       `json:"points" db:"points"`
	NumOfAttempts     int       `json:"num_of_attemps" db:"num_of_attemps"`
	Deadline          time.Time `json:"deadline" db:"deadline"`
	AssignmentCreated time.Time `json:"assignment_created" db:"assignment_created"`
	AssignmentUpdated time.Time `json:"assignment_updated" db:"assignment_updated"`
	OwnerUserID       string    `json:"-" db:"owner_user_id"` // Never serialized in responses
}
