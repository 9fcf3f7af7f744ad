package repository

import (
	"context"

	"github.com/edumind/elearn-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProgressRepository handles per-(user, course) lecture completion data.
type ProgressRepository struct {
	pool *pgxpool.Pool
}

// NewProgressRepository creates a new ProgressRepository.
func NewProgressRepository(pool *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{pool: pool}
}

// GetByUserCourse retrieves the progress row for a (user, course) pair,
// including its completed lecture ids. Returns pgx.ErrNoRows if the user
// never purchased the course.
func (r *ProgressRepository) GetByUserCourse(ctx context.Context, userID, courseID int) (*model.Progress, error) {
	p := &model.Progress{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, course_id, created_at, updated_at
		 FROM progress WHERE user_id = $1 AND course_id = $2`,
		userID, courseID,
	).Scan(&p.ID, &p.UserID, &p.CourseID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT lecture_id FROM progress_lectures WHERE progress_id = $1 ORDER BY lecture_id`,
		p.ID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	p.CompletedLectures = []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		p.CompletedLectures = append(p.CompletedLectures, id)
	}
	return p, rows.Err()
}

// MarkCompleted records a lecture completion. The insert is conditional,
// so recording the same lecture twice is a no-op; added reports whether a
// new completion was actually written.
func (r *ProgressRepository) MarkCompleted(ctx context.Context, progressID, lectureID int) (added bool, err error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO progress_lectures (progress_id, lecture_id)
		 VALUES ($1, $2)
		 ON CONFLICT (progress_id, lecture_id) DO NOTHING`,
		progressID, lectureID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// CountCompleted returns the number of completed lectures for a progress row.
func (r *ProgressRepository) CountCompleted(ctx context.Context, progressID int) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM progress_lectures WHERE progress_id = $1`, progressID,
	).Scan(&total)
	return total, err
}
