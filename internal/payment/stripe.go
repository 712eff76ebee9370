package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"
)

// StripeProvider implements Provider against the Stripe API.
type StripeProvider struct {
	api           *client.API
	webhookSecret string
}

// NewStripeProvider creates a new StripeProvider.
func NewStripeProvider(secretKey, webhookSecret string) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProvider{
		api:           api,
		webhookSecret: webhookSecret,
	}
}

// CreateCheckoutSession creates a Stripe Checkout session for a single tour
// line item.
func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, params *CheckoutParams) (*CheckoutSession, error) {
	sessionParams := checkoutSessionParams(params)
	sessionParams.Context = ctx

	sess, err := p.api.CheckoutSessions.New(sessionParams)
	if err != nil {
		return nil, err
	}

	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

// checkoutSessionParams maps the provider-agnostic checkout params onto the
// Stripe request. The caller's display fields pass through unmodified.
func checkoutSessionParams(params *CheckoutParams) *stripe.CheckoutSessionParams {
	return &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(params.SuccessURL),
		CancelURL:         stripe.String(params.CancelURL),
		CustomerEmail:     stripe.String(params.CustomerEmail),
		ClientReferenceID: stripe.String(params.TourID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(params.Currency),
					UnitAmount: stripe.Int64(params.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(params.TourName),
						Description: stripe.String(params.TourSummary),
						Images:      stripe.StringSlice([]string{params.ImageURL}),
					},
				},
			},
		},
	}
}

// ParseWebhookEvent verifies the signature and extracts a completed checkout.
// Events other than checkout.session.completed yield (nil, nil).
func (p *StripeProvider) ParseWebhookEvent(payload []byte, signature string) (*CheckoutCompleted, error) {
	event, err := webhook.ConstructEvent(payload, signature, p.webhookSecret)
	if err != nil {
		return nil, err
	}

	if event.Type != "checkout.session.completed" {
		return nil, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("failed to parse checkout session: %w", err)
	}

	return &CheckoutCompleted{
		TourID:        sess.ClientReferenceID,
		CustomerEmail: sess.CustomerEmail,
		AmountTotal:   sess.AmountTotal,
	}, nil
}

// Ensure StripeProvider implements Provider interface
var _ Provider = (*StripeProvider)(nil)
