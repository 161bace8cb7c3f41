// Package email provides email sending functionality via Resend.
package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/budget-analysis/backend/internal/application/adapter"
	domainerror "github.com/budget-analysis/backend/internal/domain/error"
	"github.com/budget-analysis/backend/internal/integration/email/templates"
)

// budgetAlertTemplate is the template name for budget alert emails.
const budgetAlertTemplate = "budget_alert"

// ResendClient implements the adapter.AlertNotifier interface using Resend.
type ResendClient struct {
	client    *resend.Client
	renderer  *templates.Renderer
	fromName  string
	fromEmail string
}

// NewResendClient creates a new Resend client.
func NewResendClient(apiKey, fromName, fromEmail string) (*ResendClient, error) {
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}

	return &ResendClient{
		client:    resend.NewClient(apiKey),
		renderer:  renderer,
		fromName:  fromName,
		fromEmail: fromEmail,
	}, nil
}

// SendBudgetAlert sends a budget alert email via Resend.
func (c *ResendClient) SendBudgetAlert(ctx context.Context, input adapter.BudgetAlertInput) error {
	html, text, err := c.renderer.Render(budgetAlertTemplate, templates.BudgetAlertData{
		BudgetName: input.BudgetName,
		Message:    input.Message,
		Reasoning:  input.Reasoning,
	})
	if err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailSendFailed,
			"failed to render budget alert email",
			err,
		)
	}

	from := fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail)

	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{input.To},
		Subject: fmt.Sprintf("Budget alert: %s", input.BudgetName),
		Html:    html,
		Text:    text,
	}

	if _, err := c.client.Emails.SendWithContext(ctx, params); err != nil {
		// Check if it's a permanent error (don't retry)
		if isPermanentError(err) {
			return domainerror.NewEmailError(
				domainerror.ErrCodePermanentEmailFailure,
				"permanent email failure",
				err,
			)
		}
		// Temporary error (can retry)
		return domainerror.NewEmailError(
			domainerror.ErrCodeTemporaryEmailFailure,
			"temporary email failure",
			err,
		)
	}

	return nil
}

// isPermanentError checks if the error is a permanent error that should not be retried.
// Permanent errors include: 401 (Unauthorized), 403 (Forbidden), 422 (Validation Error)
// Temporary errors include: 429 (Rate Limit), 5xx (Server Errors)
func isPermanentError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())

	permanentPatterns := []string{
		"401",
		"403",
		"422",
		"unauthorized",
		"forbidden",
		"validation",
		"invalid",
		"bad request",
	}

	for _, pattern := range permanentPatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}

// MockAlertNotifier is a mock implementation for testing.
type MockAlertNotifier struct {
	SentAlerts []adapter.BudgetAlertInput
	ShouldFail bool
	FailError  error
}

// NewMockAlertNotifier creates a new mock alert notifier.
func NewMockAlertNotifier() *MockAlertNotifier {
	return &MockAlertNotifier{
		SentAlerts: make([]adapter.BudgetAlertInput, 0),
	}
}

// SendBudgetAlert implements the adapter.AlertNotifier interface for testing.
func (m *MockAlertNotifier) SendBudgetAlert(_ context.Context, input adapter.BudgetAlertInput) error {
	if m.ShouldFail {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailSendFailed,
			"mock send failure",
			m.FailError,
		)
	}

	m.SentAlerts = append(m.SentAlerts, input)
	return nil
}

// Clear resets the recorded alerts.
func (m *MockAlertNotifier) Clear() {
	m.SentAlerts = m.SentAlerts[:0]
}
