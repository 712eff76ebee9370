//go:build api

package testserver

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"tours-api/internal/models"
	"tours-api/internal/payment"
)

// TestWebhookSignature is the signature the fake payment provider accepts.
const TestWebhookSignature = "test-signature"

// FakeMailer records outbound mail instead of delivering it.
type FakeMailer struct {
	mu           sync.Mutex
	welcomeSent  []string
	resetURLs    map[string]string
	resetFailure error
}

// NewFakeMailer creates an empty fake mailer.
func NewFakeMailer() *FakeMailer {
	return &FakeMailer{resetURLs: make(map[string]string)}
}

// SendWelcome records the welcome mail recipient.
func (m *FakeMailer) SendWelcome(user *models.User, homeURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.welcomeSent = append(m.welcomeSent, user.Email)
	return nil
}

// SendPasswordReset records the reset URL per recipient, or fails if a
// failure has been injected.
func (m *FakeMailer) SendPasswordReset(user *models.User, resetURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.resetFailure != nil {
		return m.resetFailure
	}
	m.resetURLs[user.Email] = resetURL
	return nil
}

// WelcomeCount returns how many welcome mails have been sent.
func (m *FakeMailer) WelcomeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.welcomeSent)
}

// ResetURL returns the last reset URL mailed to the address, or "".
func (m *FakeMailer) ResetURL(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resetURLs[email]
}

// FailPasswordReset makes subsequent SendPasswordReset calls return err.
// Pass nil to restore delivery.
func (m *FakeMailer) FailPasswordReset(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetFailure = err
}

// Reset clears all recorded mail and injected failures.
func (m *FakeMailer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.welcomeSent = nil
	m.resetURLs = make(map[string]string)
	m.resetFailure = nil
}

// FakePaymentProvider stands in for the real checkout provider. Sessions are
// fabricated locally and webhook payloads are plain JSON guarded by a fixed
// signature string.
type FakePaymentProvider struct {
	mu         sync.Mutex
	lastParams *payment.CheckoutParams
	sessionErr error
}

// NewFakePaymentProvider creates a fake provider that accepts everything.
func NewFakePaymentProvider() *FakePaymentProvider {
	return &FakePaymentProvider{}
}

// CreateCheckoutSession fabricates a session descriptor and records the
// params for inspection.
func (p *FakePaymentProvider) CreateCheckoutSession(ctx context.Context, params *payment.CheckoutParams) (*payment.CheckoutSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sessionErr != nil {
		return nil, p.sessionErr
	}
	p.lastParams = params
	return &payment.CheckoutSession{
		ID:  "cs_test_" + params.TourID,
		URL: "https://checkout.test/pay/cs_test_" + params.TourID,
	}, nil
}

// ParseWebhookEvent treats the payload as a JSON-encoded CheckoutCompleted.
// Any signature other than TestWebhookSignature fails verification, matching
// how the real provider rejects tampered payloads.
func (p *FakePaymentProvider) ParseWebhookEvent(payload []byte, signature string) (*payment.CheckoutCompleted, error) {
	if signature != TestWebhookSignature {
		return nil, errors.New("signature verification failed")
	}

	var completed payment.CheckoutCompleted
	if err := json.Unmarshal(payload, &completed); err != nil {
		return nil, err
	}
	// An empty event mirrors provider event types the service ignores.
	if completed.TourID == "" {
		return nil, nil
	}
	return &completed, nil
}

// LastParams returns the params of the most recent checkout session.
func (p *FakePaymentProvider) LastParams() *payment.CheckoutParams {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastParams
}

// FailNextSession makes CreateCheckoutSession return err until cleared with
// nil.
func (p *FakePaymentProvider) FailNextSession(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sessionErr = err
}

// Reset clears recorded params and injected failures.
func (p *FakePaymentProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastParams = nil
	p.sessionErr = nil
}
