package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnrollmentRepository handles course ownership and its paired progress row.
type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

// IsEnrolled reports whether the user already owns the course.
func (r *EnrollmentRepository) IsEnrolled(ctx context.Context, userID, courseID int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM enrollments WHERE user_id = $1 AND course_id = $2)`,
		userID, courseID,
	).Scan(&exists)
	return exists, err
}

// Grant attaches a course to a user and creates its empty progress row in
// a single transaction. Both inserts are conditional, so the operation is
// at-most-once per (user, course) even under concurrent retries; replays
// are silent no-ops.
func (r *EnrollmentRepository) Grant(ctx context.Context, userID, courseID int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin grant: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO enrollments (user_id, course_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, course_id) DO NOTHING`,
		userID, courseID,
	); err != nil {
		return fmt.Errorf("insert enrollment: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO progress (user_id, course_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, course_id) DO NOTHING`,
		userID, courseID,
	); err != nil {
		return fmt.Errorf("insert progress: %w", err)
	}

	return tx.Commit(ctx)
}
