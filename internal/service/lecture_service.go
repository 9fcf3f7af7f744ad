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

// LectureService handles lecture CRUD.
type LectureService struct {
	lectureRepo *repository.LectureRepository
	courseRepo  *repository.CourseRepository
	rdb         *redis.Client
	log         zerolog.Logger
}

// NewLectureService creates a new LectureService.
func NewLectureService(lectureRepo *repository.LectureRepository, courseRepo *repository.CourseRepository, rdb *redis.Client, log zerolog.Logger) *LectureService {
	return &LectureService{
		lectureRepo: lectureRepo,
		courseRepo:  courseRepo,
		rdb:         rdb,
		log:         log.With().Str("component", "lecture_service").Logger(),
	}
}

// GetByID returns a single lecture.
func (s *LectureService) GetByID(ctx context.Context, id int) (*model.Lecture, error) {
	return s.lectureRepo.GetByID(ctx, id)
}

// ListByCourse returns the lectures of a course.
func (s *LectureService) ListByCourse(ctx context.Context, courseID int) ([]model.Lecture, error) {
	return s.lectureRepo.ListByCourse(ctx, courseID)
}

// Add attaches a new lecture to a course. The course must exist.
func (s *LectureService) Add(ctx context.Context, lecture *model.Lecture) error {
	if _, err := s.courseRepo.GetByID(ctx, lecture.CourseID); err != nil {
		return err
	}

	if err := s.lectureRepo.Create(ctx, lecture); err != nil {
		return fmt.Errorf("create lecture: %w", err)
	}

	s.log.Info().Int("lecture_id", lecture.ID).Int("course_id", lecture.CourseID).Msg("Lecture added")
	return nil
}

// Delete removes a lecture and queues its video for best-effort removal.
func (s *LectureService) Delete(ctx context.Context, id int) error {
	lecture, err := s.lectureRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.lectureRepo.Delete(ctx, id); err != nil {
		return err
	}

	if lecture.Video != "" {
		if err := s.rdb.RPush(ctx, config.WorkerKey.JanitorQueue, lecture.Video).Err(); err != nil {
			s.log.Error().Err(err).Str("file", lecture.Video).Msg("Failed to queue file removal")
		}
	}

	s.log.Info().Int("lecture_id", id).Msg("Lecture deleted")
	return nil
}
