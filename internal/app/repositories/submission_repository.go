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
	"github.com/assignhub/assignhub/internal/db"
	"github.com/assignhub/assignhub/internal/pkg/apperrors"
)

// SubmissionRepository handles database operations for submissions
type SubmissionRepository struct {
	db *pgxpool.Pool
}

// NewSubmissionRepository creates a new SubmissionRepository
func NewSubmissionRepository(db *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// CreateChecked inserts a submission inside one transaction that locks the
// assignment row first. The eligibility check runs against the locked row and
// the committed submission count, so the attempt limit holds under concurrent
// submissions.
func (r *SubmissionRepository) CreateChecked(ctx context.Context, submission *models.Submission, check EligibilityCheck) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		lockQuery := squirrel.Select(assignmentColumns...).
			From("assignments").
			Where("id = ?", submission.AssignmentID).
			Suffix("FOR UPDATE").
			PlaceholderFormat(squirrel.Dollar)

		sql, args, err := lockQuery.ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}

		var assignment models.Assignment
		if err := scanAssignment(tx.QueryRow(ctx, sql, args...), &assignment); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrAssignmentNotFound
			}
			return fmt.Errorf("error locking assignment: %w", err)
		}

		countQuery := squirrel.Select("COUNT(1)").
			From("submissions").
			Where("assignment_id = ?", submission.AssignmentID).
			PlaceholderFormat(squirrel.Dollar)

		sql, args, err = countQuery.ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}

		var attempts int
		if err := tx.QueryRow(ctx, sql, args...).Scan(&attempts); err != nil {
			return fmt.Errorf("error counting submissions: %w", err)
		}

		if err := check(&assignment, attempts); err != nil {
			return err
		}

		if submission.ID == "" {
			submission.ID = uuid.NewString()
		}
		ts := now()
		submission.SubmissionDate = ts
		submission.SubmissionUpdated = ts

		insertQuery := squirrel.Insert("submissions").
			Columns("id", "assignment_id", "submission_url", "submission_date", "submission_updated").
			Values(
				submission.ID,
				submission.AssignmentID,
				submission.SubmissionURL,
				submission.SubmissionDate,
				submission.SubmissionUpdated,
			).
			PlaceholderFormat(squirrel.Dollar)

		sql, args, err = insertQuery.ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error inserting submission: %w", err)
		}

		return nil
	})
}
