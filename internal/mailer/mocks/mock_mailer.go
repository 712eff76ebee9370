// Package mocks provides a mock Mailer for testing.
package mocks

import "tours-api/internal/models"

// MockMailer is a mock implementation of mailer.Mailer.
type MockMailer struct {
	SendWelcomeFunc       func(user *models.User, homeURL string) error
	SendPasswordResetFunc func(user *models.User, resetURL string) error
}

func (m *MockMailer) SendWelcome(user *models.User, homeURL string) error {
	if m.SendWelcomeFunc != nil {
		return m.SendWelcomeFunc(user, homeURL)
	}
	return nil
}

func (m *MockMailer) SendPasswordReset(user *models.User, resetURL string) error {
	if m.SendPasswordResetFunc != nil {
		return m.SendPasswordResetFunc(user, resetURL)
	}
	return nil
}
