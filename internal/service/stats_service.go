package service

import (
	"context"

	"github.com/edumind/elearn-backend/internal/model"
	"github.com/edumind/elearn-backend/internal/repository"
)

// StatsService aggregates platform-wide totals for the admin dashboard.
type StatsService struct {
	userRepo    *repository.UserRepository
	courseRepo  *repository.CourseRepository
	lectureRepo *repository.LectureRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(userRepo *repository.UserRepository, courseRepo *repository.CourseRepository, lectureRepo *repository.LectureRepository) *StatsService {
	return &StatsService{
		userRepo:    userRepo,
		courseRepo:  courseRepo,
		lectureRepo: lectureRepo,
	}
}

// Totals returns the user, course and lecture counts.
func (s *StatsService) Totals(ctx context.Context) (*model.Stats, error) {
	courses, err := s.courseRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	lectures, err := s.lectureRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &model.Stats{TotalCourses: courses, TotalLectures: lectures, TotalUsers: users}, nil
}
