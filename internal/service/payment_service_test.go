package service

import (
	"context"
	"testing"
	"time"

	"github.com/edumind/elearn-backend/internal/config"
	"github.com/edumind/elearn-backend/internal/model"
	"github.com/edumind/elearn-backend/internal/payment"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	created   []payment.CheckoutItem
	successes []string
	session   *payment.Session
}

func (f *fakeProvider) CreateCheckoutSession(_ context.Context, item payment.CheckoutItem, successURL, _ string) (*payment.Session, error) {
	f.created = append(f.created, item)
	f.successes = append(f.successes, successURL)
	return &payment.Session{ID: "cs_test_1", URL: "https://checkout.example/cs_test_1"}, nil
}

func (f *fakeProvider) RetrieveSession(_ context.Context, _ string) (*payment.Session, error) {
	return f.session, nil
}

type fakeCourses struct {
	courses map[int]*model.Course
}

func (f *fakeCourses) GetByID(_ context.Context, id int) (*model.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return c, nil
}

type fakeUsers struct {
	users map[int]*model.User
}

func (f *fakeUsers) GetByID(_ context.Context, id int) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

type fakePayments struct {
	rows []*model.Payment
}

func (f *fakePayments) Create(_ context.Context, p *model.Payment) error {
	// Mirrors the unique order_id constraint: a replay is a silent no-op.
	for _, existing := range f.rows {
		if existing.OrderID == p.OrderID {
			return nil
		}
	}
	f.rows = append(f.rows, p)
	return nil
}

type fakeEnrollments struct {
	granted map[[2]int]bool
}

func newFakeEnrollments() *fakeEnrollments {
	return &fakeEnrollments{granted: make(map[[2]int]bool)}
}

func (f *fakeEnrollments) IsEnrolled(_ context.Context, userID, courseID int) (bool, error) {
	return f.granted[[2]int{userID, courseID}], nil
}

func (f *fakeEnrollments) Grant(_ context.Context, userID, courseID int) error {
	f.granted[[2]int{userID, courseID}] = true
	return nil
}

func newPaymentFixture(t *testing.T, provider *fakeProvider) (*PaymentService, *fakeEnrollments, *fakePayments) {
	t.Helper()

	cfg := &config.Config{
		FrontendURL:    "https://app.example.com",
		FallbackSecret: "fallback-secret",
		JWTExpiry:      time.Hour,
	}
	enrollStore := newFakeEnrollments()
	enrollments := NewEnrollmentService(enrollStore, zerolog.Nop())
	courses := &fakeCourses{courses: map[int]*model.Course{
		7: {ID: 7, Title: "Distributed Systems", Price: 1999},
	}}
	users := &fakeUsers{users: map[int]*model.User{
		1: {ID: 1, Email: "student@example.com"},
	}}
	payments := &fakePayments{}

	svc := NewPaymentService(cfg, provider, courses, users, payments, enrollments, zerolog.Nop())
	return svc, enrollStore, payments
}

func TestCheckoutConvertsPriceToMinorUnits(t *testing.T) {
	provider := &fakeProvider{}
	svc, _, _ := newPaymentFixture(t, provider)

	resp, err := svc.Checkout(context.Background(), 1, 7)
	require.NoError(t, err)

	assert.Equal(t, "cs_test_1", resp.SessionID)
	assert.Equal(t, "https://checkout.example/cs_test_1", resp.URL)

	require.Len(t, provider.created, 1)
	assert.Equal(t, int64(199900), provider.created[0].UnitAmount)
	assert.Equal(t, "usd", provider.created[0].Currency)
	assert.Equal(t, "Distributed Systems", provider.created[0].Name)
	assert.Contains(t, provider.successes[0], "session_id={CHECKOUT_SESSION_ID}")
	assert.Contains(t, provider.successes[0], "courseId=7")
}

func TestCheckoutRejectsOwnedCourse(t *testing.T) {
	provider := &fakeProvider{}
	svc, enrollments, _ := newPaymentFixture(t, provider)
	require.NoError(t, enrollments.Grant(context.Background(), 1, 7))

	_, err := svc.Checkout(context.Background(), 1, 7)

	assert.ErrorIs(t, err, ErrAlreadyOwned)
	assert.Empty(t, provider.created, "no session for an owned course")
}

func TestCheckoutUnknownCourse(t *testing.T) {
	svc, _, _ := newPaymentFixture(t, &fakeProvider{})

	_, err := svc.Checkout(context.Background(), 1, 999)

	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestVerifyCheckoutGrantsOnPaidSession(t *testing.T) {
	provider := &fakeProvider{session: &payment.Session{ID: "cs_test_1", Paid: true}}
	svc, enrollments, _ := newPaymentFixture(t, provider)

	err := svc.VerifyCheckout(context.Background(), 1, &model.VerifyCheckoutRequest{
		SessionID: "cs_test_1",
		CourseID:  7,
	})
	require.NoError(t, err)

	owned, err := enrollments.IsEnrolled(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.True(t, owned)
}

func TestVerifyCheckoutRejectsUnpaidSession(t *testing.T) {
	provider := &fakeProvider{session: &payment.Session{ID: "cs_test_1", Paid: false}}
	svc, enrollments, _ := newPaymentFixture(t, provider)

	err := svc.VerifyCheckout(context.Background(), 1, &model.VerifyCheckoutRequest{
		SessionID: "cs_test_1",
		CourseID:  7,
	})

	assert.ErrorIs(t, err, ErrPaymentIncomplete)
	owned, _ := enrollments.IsEnrolled(context.Background(), 1, 7)
	assert.False(t, owned, "unpaid session must not enroll")
}

func TestVerifyCheckoutIsIdempotent(t *testing.T) {
	provider := &fakeProvider{session: &payment.Session{ID: "cs_test_1", Paid: true}}
	svc, enrollments, _ := newPaymentFixture(t, provider)
	req := &model.VerifyCheckoutRequest{SessionID: "cs_test_1", CourseID: 7}

	require.NoError(t, svc.VerifyCheckout(context.Background(), 1, req))
	require.NoError(t, svc.VerifyCheckout(context.Background(), 1, req))

	assert.Len(t, enrollments.granted, 1)
}

func TestVerifyFallbackGrantsOnValidSignature(t *testing.T) {
	svc, enrollments, payments := newPaymentFixture(t, &fakeProvider{})
	sig := fallbackSignature("fallback-secret", "order_1", "pay_1")

	err := svc.VerifyFallback(context.Background(), 1, 7, &model.VerifyFallbackRequest{
		OrderID:   "order_1",
		PaymentID: "pay_1",
		Signature: sig,
	})
	require.NoError(t, err)

	owned, _ := enrollments.IsEnrolled(context.Background(), 1, 7)
	assert.True(t, owned)
	require.Len(t, payments.rows, 1)
	assert.Equal(t, "order_1", payments.rows[0].OrderID)
}

func TestVerifyFallbackRejectsBadSignature(t *testing.T) {
	svc, enrollments, payments := newPaymentFixture(t, &fakeProvider{})

	err := svc.VerifyFallback(context.Background(), 1, 7, &model.VerifyFallbackRequest{
		OrderID:   "order_1",
		PaymentID: "pay_1",
		Signature: "deadbeef",
	})

	assert.ErrorIs(t, err, ErrInvalidSignature)
	owned, _ := enrollments.IsEnrolled(context.Background(), 1, 7)
	assert.False(t, owned, "bad signature must not change state")
	assert.Empty(t, payments.rows, "bad signature must not be recorded")
}

func TestVerifyFallbackReplayIsIdempotent(t *testing.T) {
	svc, enrollments, payments := newPaymentFixture(t, &fakeProvider{})
	sig := fallbackSignature("fallback-secret", "order_1", "pay_1")
	req := &model.VerifyFallbackRequest{OrderID: "order_1", PaymentID: "pay_1", Signature: sig}

	require.NoError(t, svc.VerifyFallback(context.Background(), 1, 7, req))
	require.NoError(t, svc.VerifyFallback(context.Background(), 1, 7, req))

	assert.Len(t, enrollments.granted, 1)
	assert.Len(t, payments.rows, 1)
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(0), minorUnits(0))
	assert.Equal(t, int64(100), minorUnits(1))
	assert.Equal(t, int64(199900), minorUnits(1999))
}
