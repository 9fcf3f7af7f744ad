package model

import "time"

// Payment is an immutable audit record of a completed fallback-provider
// payment. It is never read back by the application.
type Payment struct {
	ID        int       `json:"id"`
	OrderID   string    `json:"order_id"`
	PaymentID string    `json:"payment_id"`
	Signature string    `json:"signature"`
	CreatedAt time.Time `json:"created_at"`
}

// CheckoutResponse is returned by the checkout initiator.
type CheckoutResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

// VerifyCheckoutRequest confirms a hosted-checkout session after the
// provider redirects the client back.
type VerifyCheckoutRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	CourseID  int    `json:"course_id" binding:"required"`
}

// VerifyFallbackRequest confirms a fallback-provider payment with a
// client-supplied HMAC signature.
type VerifyFallbackRequest struct {
	OrderID   string `json:"order_id" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}
