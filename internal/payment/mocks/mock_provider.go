// Package mocks provides a mock payment Provider for testing.
package mocks

import (
	"context"

	"tours-api/internal/payment"
)

// MockProvider is a mock implementation of payment.Provider.
type MockProvider struct {
	CreateCheckoutSessionFunc func(ctx context.Context, params *payment.CheckoutParams) (*payment.CheckoutSession, error)
	ParseWebhookEventFunc     func(payload []byte, signature string) (*payment.CheckoutCompleted, error)
}

func (m *MockProvider) CreateCheckoutSession(ctx context.Context, params *payment.CheckoutParams) (*payment.CheckoutSession, error) {
	if m.CreateCheckoutSessionFunc != nil {
		return m.CreateCheckoutSessionFunc(ctx, params)
	}
	return &payment.CheckoutSession{}, nil
}

func (m *MockProvider) ParseWebhookEvent(payload []byte, signature string) (*payment.CheckoutCompleted, error) {
	if m.ParseWebhookEventFunc != nil {
		return m.ParseWebhookEventFunc(payload, signature)
	}
	return nil, nil
}
