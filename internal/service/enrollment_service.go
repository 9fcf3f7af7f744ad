package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// enrollmentStore is the slice of the enrollment repository the granter
// needs. The store guarantees atomicity of the grant itself.
type enrollmentStore interface {
	IsEnrolled(ctx context.Context, userID, courseID int) (bool, error)
	Grant(ctx context.Context, userID, courseID int) error
}

// EnrollmentService attaches purchased courses to users. Both payment
// verification paths converge here, so a replayed callback can never
// double-enroll or create a second progress row.
type EnrollmentService struct {
	store enrollmentStore
	log   zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(store enrollmentStore, log zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{
		store: store,
		log:   log.With().Str("component", "enrollment_service").Logger(),
	}
}

// IsEnrolled reports whether the user already owns the course.
func (s *EnrollmentService) IsEnrolled(ctx context.Context, userID, courseID int) (bool, error) {
	return s.store.IsEnrolled(ctx, userID, courseID)
}

// Grant subscribes the user to the course and creates the empty progress
// record. Idempotent: granting an owned course is a no-op.
func (s *EnrollmentService) Grant(ctx context.Context, userID, courseID int) error {
	if err := s.store.Grant(ctx, userID, courseID); err != nil {
		return fmt.Errorf("grant enrollment: %w", err)
	}

	s.log.Info().Int("user_id", userID).Int("course_id", courseID).Msg("Course granted")
	return nil
}
