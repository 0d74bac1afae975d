package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/assignhub/assignhub/internal/app/models"
	"github.com/assignhub/assignhub/internal/pkg/apperrors"
	"github.com/assignhub/assignhub/internal/pkg/dberrors"
)

var assignmentColumns = []string{
	"id", "name", "points", "num_of_attemps", "deadline",
	"assignment_created", "assignment_updated", "owner_user_id",
}

// AssignmentRepository handles database operations for assignments
type AssignmentRepository struct {
	db *pgxpool.Pool
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func scanAssignment(row pgx.Row, a *models.Assignment) error {
	return row.Scan(
		&a.ID,
		&a.Name,
		&a.Points,
		&a.NumOfAttempts,
		&a.Deadline,
		&a.AssignmentCreated,
		&a.AssignmentUpdated,
		&a.OwnerUserID,
	)
}

// Create inserts a new assignment. The id and timestamps are assigned here.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	ts := now()
	assignment.AssignmentCreated = ts
	assignment.AssignmentUpdated = ts

	query := squirrel.Insert("assignments").
		Columns(assignmentColumns...).
		Values(
			assignment.ID,
			assignment.Name,
			assignment.Points,
			assignment.NumOfAttempts,
			assignment.Deadline,
			assignment.AssignmentCreated,
			assignment.AssignmentUpdated,
			assignment.OwnerUserID,
		).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		// Range constraints back up the payload validator.
		if dberrors.IsCheckViolation(err) {
			return apperrors.ErrOutOfRange
		}
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// GetByID retrieves an assignment by ID. Returns nil without error when the
// id is unknown.
func (r *AssignmentRepository) GetByID(ctx context.Context, id string) (*models.Assignment, error) {
	query := squirrel.Select(assignmentColumns...).
		From("assignments").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var assignment models.Assignment
	if err := scanAssignment(r.db.QueryRow(ctx, sql, args...), &assignment); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &assignment, nil
}

// GetAll retrieves every assignment
func (r *AssignmentRepository) GetAll(ctx context.Context) ([]models.Assignment, error) {
	query := squirrel.Select(assignmentColumns...).
		From("assignments").
		OrderBy("assignment_created ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var assignments []models.Assignment
	for rows.Next() {
		var a models.Assignment
		if err := scanAssignment(rows, &a); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return assignments, nil
}

// Update rewrites the mutable fields of an existing assignment
func (r *AssignmentRepository) Update(ctx context.Context, assignment *models.Assignment) error {
	assignment.AssignmentUpdated = now()

	query := squirrel.Update("assignments").
		Set("name", assignment.Name).
		Set("points", assignment.Points).
		Set("num_of_attemps", assignment.NumOfAttempts).
		Set("deadline", assignment.Deadline).
		Set("assignment_updated", assignment.AssignmentUpdated).
		Where("id = ?", assignment.ID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsCheckViolation(err) {
			return apperrors.ErrOutOfRange
		}
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("no rows affected")
	}

	return nil
}

// Delete removes an assignment
func (r *AssignmentRepository) Delete(ctx context.Context, id string) error {
	query := squirrel.Delete("assignments").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("no rows affected")
	}

	return nil
}
