// Package payment integrates with the external checkout provider.
package payment

import "context"

// CheckoutParams describes the line item and redirect targets for a checkout
// session.
type CheckoutParams struct {
	TourID        string
	TourName      string // display name, used verbatim as the product name
	TourSummary   string
	ImageURL      string
	Amount        int64 // minor currency units
	Currency      string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}

// CheckoutSession is the opaque session descriptor returned by the provider,
// passed through to the client unmodified.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CheckoutCompleted carries the fields of a provider-confirmed payment that
// the booking service needs.
type CheckoutCompleted struct {
	TourID        string
	CustomerEmail string
	AmountTotal   int64
}

// Provider is the payment collaborator contract.
type Provider interface {
	// CreateCheckoutSession asks the provider for a new checkout session.
	CreateCheckoutSession(ctx context.Context, params *CheckoutParams) (*CheckoutSession, error)
	// ParseWebhookEvent verifies a webhook payload signature and returns the
	// completed checkout, or nil for event types we don't care about.
	ParseWebhookEvent(payload []byte, signature string) (*CheckoutCompleted, error)
}
