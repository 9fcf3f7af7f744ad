package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/edumind/elearn-backend/internal/config"
	"github.com/edumind/elearn-backend/internal/model"
	"github.com/edumind/elearn-backend/internal/payment"
	"github.com/rs/zerolog"
)

// Payment errors.
var (
	ErrAlreadyOwned      = errors.New("course already owned")
	ErrPaymentIncomplete = errors.New("payment not completed")
	ErrInvalidSignature  = errors.New("payment signature mismatch")
)

// Slices of the repositories the payment workflow touches.
type courseGetter interface {
	GetByID(ctx context.Context, id int) (*model.Course, error)
}

type userGetter interface {
	GetByID(ctx context.Context, id int) (*model.User, error)
}

type paymentWriter interface {
	Create(ctx context.Context, p *model.Payment) error
}

// PaymentService runs the checkout and payment-verification workflow.
type PaymentService struct {
	cfg         *config.Config
	provider    payment.Provider
	courses     courseGetter
	users       userGetter
	payments    paymentWriter
	enrollments *EnrollmentService
	log         zerolog.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	cfg *config.Config,
	provider payment.Provider,
	courses courseGetter,
	users userGetter,
	payments paymentWriter,
	enrollments *EnrollmentService,
	log zerolog.Logger,
) *PaymentService {
	return &PaymentService{
		cfg:         cfg,
		provider:    provider,
		courses:     courses,
		users:       users,
		payments:    payments,
		enrollments: enrollments,
		log:         log.With().Str("component", "payment_service").Logger(),
	}
}

// minorUnits converts a whole-currency price into cents.
func minorUnits(price int) int64 {
	return int64(price) * 100
}

// Checkout builds a hosted checkout session for a course. No local state
// changes; enrollment happens only after the provider confirms payment.
func (s *PaymentService) Checkout(ctx context.Context, userID, courseID int) (*model.CheckoutResponse, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	owned, err := s.enrollments.IsEnrolled(ctx, userID, course.ID)
	if err != nil {
		return nil, fmt.Errorf("check ownership: %w", err)
	}
	if owned {
		return nil, ErrAlreadyOwned
	}

	item := payment.CheckoutItem{
		Name:       course.Title,
		UnitAmount: minorUnits(course.Price),
		Currency:   "usd",
	}
	// {CHECKOUT_SESSION_ID} is a provider-side placeholder filled in on
	// redirect-back.
	successURL := fmt.Sprintf("%s/payment-success?session_id={CHECKOUT_SESSION_ID}&courseId=%d", s.cfg.FrontendURL, course.ID)
	cancelURL := s.cfg.FrontendURL + "/payment-failure"

	sess, err := s.provider.CreateCheckoutSession(ctx, item, successURL, cancelURL)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info().Int("user_id", userID).Int("course_id", course.ID).Str("session_id", sess.ID).Msg("Checkout session created")
	return &model.CheckoutResponse{URL: sess.URL, SessionID: sess.ID}, nil
}

// VerifyCheckout confirms a hosted-checkout session is paid, then grants
// the course.
func (s *PaymentService) VerifyCheckout(ctx context.Context, userID int, req *model.VerifyCheckoutRequest) error {
	sess, err := s.provider.RetrieveSession(ctx, req.SessionID)
	if err != nil {
		return fmt.Errorf("retrieve session: %w", err)
	}
	if !sess.Paid {
		return ErrPaymentIncomplete
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	course, err := s.courses.GetByID(ctx, req.CourseID)
	if err != nil {
		return err
	}

	return s.enrollments.Grant(ctx, userID, course.ID)
}

// VerifyFallback confirms a fallback-provider payment by recomputing the
// HMAC signature locally, records the audit row, then grants the course
// through the same idempotent path as VerifyCheckout.
func (s *PaymentService) VerifyFallback(ctx context.Context, userID, courseID int, req *model.VerifyFallbackRequest) error {
	if !VerifyFallbackSignature(s.cfg.FallbackSecret, req.OrderID, req.PaymentID, req.Signature) {
		return ErrInvalidSignature
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return err
	}

	// Audit record first: the grant must never precede the evidence.
	if err := s.payments.Create(ctx, &model.Payment{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	}); err != nil {
		return fmt.Errorf("record payment: %w", err)
	}

	return s.enrollments.Grant(ctx, userID, course.ID)
}
