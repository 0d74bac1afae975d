package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/assignhub/assignhub/internal/app/models"
)

// UserStore defines the user lookups the policy engine and services consume.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// AssignmentStore defines assignment persistence operations.
type AssignmentStore interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	GetByID(ctx context.Context, id string) (*models.Assignment, error)
	GetAll(ctx context.Context) ([]models.Assignment, error)
	Update(ctx context.Context, assignment *models.Assignment) error
	Delete(ctx context.Context, id string) error
}

// EligibilityCheck is invoked inside the submission-create transaction with
// the row-locked assignment and the current submission count. Returning an
// error aborts the insert and rolls the transaction back.
type EligibilityCheck func(assignment *models.Assignment, attempts int) error

// SubmissionStore defines submission persistence operations.
type SubmissionStore interface {
	// CreateChecked inserts the submission only if check passes while the
	// assignment row is locked, so two concurrent submissions cannot both
	// slip past the attempt limit.
	CreateChecked(ctx context.Context, submission *models.Submission, check EligibilityCheck) error
}

// Repositories bundles all repositories sharing one connection pool
type Repositories struct {
	Users       *UserRepository
	Assignments *AssignmentRepository
	Submissions *SubmissionRepository
}

// NewRepositories creates the repository container
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(pool),
		Assignments: NewAssignmentRepository(pool),
		Submissions: NewSubmissionRepository(pool),
	}
}

// now returns the current UTC timestamp, truncated to microseconds to match
// what timestamptz columns round-trip.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
