package leads_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dmrmedia/obsidian-landing/pkg/email"
)

// MockEmailSender is a mock implementation of email.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}
