package service

import (
	"context"
	"fmt"

	"github.com/edumind/elearn-backend/internal/config"
	"github.com/edumind/elearn-backend/internal/model"
	"github.com/edumind/elearn-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// CourseService handles course CRUD and the cascading course delete.
type CourseService struct {
	courseRepo  *repository.CourseRepository
	lectureRepo *repository.LectureRepository
	rdb         *redis.Client
	log         zerolog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(courseRepo *repository.CourseRepository, lectureRepo *repository.LectureRepository, rdb *redis.Client, log zerolog.Logger) *CourseService {
	return &CourseService{
		courseRepo:  courseRepo,
		lectureRepo: lectureRepo,
		rdb:         rdb,
		log:         log.With().Str("component", "course_service").Logger(),
	}
}

// List returns all courses.
func (s *CourseService) List(ctx context.Context) ([]model.Course, error) {
	return s.courseRepo.List(ctx)
}

// GetByID returns a single course.
func (s *CourseService) GetByID(ctx context.Context, id int) (*model.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// ListByUser returns the courses the user is enrolled in.
func (s *CourseService) ListByUser(ctx context.Context, userID int) ([]model.Course, error) {
	return s.courseRepo.ListByUser(ctx, userID)
}

// Create inserts a new course owned by the given admin.
func (s *CourseService) Create(ctx context.Context, course *model.Course) error {
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}

	s.log.Info().Int("course_id", course.ID).Str("title", course.Title).Msg("Course created")
	return nil
}

// Delete removes a course and everything hanging off it. Lecture,
// enrollment and progress rows go with the course row in one statement;
// the image and video files are queued for best-effort removal after the
// delete commits, so a failed unlink can never resurrect the course.
func (s *CourseService) Delete(ctx context.Context, id int) error {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	videos, err := s.lectureRepo.ListVideosByCourse(ctx, id)
	if err != nil {
		return fmt.Errorf("list lecture videos: %w", err)
	}

	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return err
	}

	files := append(videos, course.Image)
	for _, f := range files {
		if f == "" {
			continue
		}
		if err := s.rdb.RPush(ctx, config.WorkerKey.JanitorQueue, f).Err(); err != nil {
			s.log.Error().Err(err).Str("file", f).Msg("Failed to queue file removal")
		}
	}

	s.log.Info().Int("course_id", id).Int("files_queued", len(files)).Msg("Course deleted")
	return nil
}
