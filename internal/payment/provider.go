// Package payment wraps the hosted-checkout provider behind a small
// interface so the verification workflow can be exercised without
// network calls.
package payment

import "context"

// CheckoutItem describes the single line item of a course purchase.
type CheckoutItem struct {
	Name string
	// UnitAmount is in minor currency units (cents).
	UnitAmount int64
	Currency   string
}

// Session is the subset of a hosted checkout session the workflow needs.
type Session struct {
	ID   string
	URL  string
	Paid bool
}

// Provider creates and retrieves hosted checkout sessions.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, item CheckoutItem, successURL, cancelURL string) (*Session, error)
	RetrieveSession(ctx context.Context, sessionID string) (*Session, error)
}
