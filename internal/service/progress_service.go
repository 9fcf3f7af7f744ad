package service

import (
	"context"
	"fmt"

	"github.com/edumind/elearn-backend/internal/model"
	"github.com/rs/zerolog"
)

type progressStore interface {
	GetByUserCourse(ctx context.Context, userID, courseID int) (*model.Progress, error)
	MarkCompleted(ctx context.Context, progressID, lectureID int) (bool, error)
	CountCompleted(ctx context.Context, progressID int) (int, error)
}

type lectureCounter interface {
	CountByCourse(ctx context.Context, courseID int) (int, error)
}

// ProgressService records lecture completions and reports per-course
// completion percentages.
type ProgressService struct {
	store    progressStore
	lectures lectureCounter
	log      zerolog.Logger
}

// NewProgressService creates a new ProgressService.
func NewProgressService(store progressStore, lectures lectureCounter, log zerolog.Logger) *ProgressService {
	return &ProgressService{
		store:    store,
		lectures: lectures,
		log:      log.With().Str("component", "progress_service").Logger(),
	}
}

// RecordCompletion marks a lecture completed for the user's course
// progress. Recording the same lecture twice is a success no-op; added
// reports whether anything new was written. A missing progress row means
// the user never purchased the course.
func (s *ProgressService) RecordCompletion(ctx context.Context, userID, courseID, lectureID int) (added bool, err error) {
	progress, err := s.store.GetByUserCourse(ctx, userID, courseID)
	if err != nil {
		return false, err
	}

	added, err = s.store.MarkCompleted(ctx, progress.ID, lectureID)
	if err != nil {
		return false, fmt.Errorf("mark completed: %w", err)
	}

	if added {
		s.log.Debug().Int("user_id", userID).Int("course_id", courseID).Int("lecture_id", lectureID).Msg("Progress recorded")
	}
	return added, nil
}

// Report computes the user's completion summary for a course. The total
// lecture count is taken at call time.
func (s *ProgressService) Report(ctx context.Context, userID, courseID int) (*model.ProgressReport, error) {
	progress, err := s.store.GetByUserCourse(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	completed, err := s.store.CountCompleted(ctx, progress.ID)
	if err != nil {
		return nil, fmt.Errorf("count completed: %w", err)
	}

	total, err := s.lectures.CountByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("count lectures: %w", err)
	}

	return &model.ProgressReport{
		CompletedLectures: completed,
		AllLectures:       total,
		Percentage:        percentage(completed, total),
	}, nil
}

// percentage never divides by zero: a course without lectures reports 0.
func percentage(completed, total int) int {
	if total == 0 {
		return 0
	}
	return completed * 100 / total
}
