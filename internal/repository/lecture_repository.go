package repository

import (
	"context"

	"github.com/edumind/elearn-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LectureRepository handles lecture data access.
type LectureRepository struct {
	pool *pgxpool.Pool
}

// NewLectureRepository creates a new LectureRepository.
func NewLectureRepository(pool *pgxpool.Pool) *LectureRepository {
	return &LectureRepository{pool: pool}
}

// GetByID retrieves a lecture by ID.
func (r *LectureRepository) GetByID(ctx context.Context, id int) (*model.Lecture, error) {
	l := &model.Lecture{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, description, video, course_id, created_at, updated_at
		 FROM lectures WHERE id = $1`, id,
	).Scan(&l.ID, &l.Title, &l.Description, &l.Video, &l.CourseID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// ListByCourse retrieves all lectures of a course in insertion order.
func (r *LectureRepository) ListByCourse(ctx context.Context, courseID int) ([]model.Lecture, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, description, video, course_id, created_at, updated_at
		 FROM lectures WHERE course_id = $1 ORDER BY id`, courseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lectures []model.Lecture
	for rows.Next() {
		var l model.Lecture
		if err := rows.Scan(&l.ID, &l.Title, &l.Description, &l.Video, &l.CourseID, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		lectures = append(lectures, l)
	}
	return lectures, rows.Err()
}

// ListVideosByCourse returns the video paths of all lectures in a course.
// Used to queue file removal before a cascade delete.
func (r *LectureRepository) ListVideosByCourse(ctx context.Context, courseID int) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT video FROM lectures WHERE course_id = $1`, courseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

// Create inserts a new lecture.
func (r *LectureRepository) Create(ctx context.Context, l *model.Lecture) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO lectures (title, description, video, course_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		l.Title, l.Description, l.Video, l.CourseID,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
}

// Delete removes a lecture by ID. Returns pgx.ErrNoRows if absent.
func (r *LectureRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM lectures WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// CountByCourse returns the number of lectures in a course.
func (r *LectureRepository) CountByCourse(ctx context.Context, courseID int) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM lectures WHERE course_id = $1`, courseID,
	).Scan(&total)
	return total, err
}

// Count returns the total number of lectures.
func (r *LectureRepository) Count(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM lectures`).Scan(&total)
	return total, err
}
