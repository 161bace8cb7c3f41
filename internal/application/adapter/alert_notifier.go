// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// BudgetAlertInput represents the input for sending a budget alert.
type BudgetAlertInput struct {
	To         string
	BudgetName string
	Message    string
	Reasoning  []string
}

// AlertNotifier delivers high-priority budget alerts to the user through
// an external channel (e.g. email).
type AlertNotifier interface {
	// SendBudgetAlert sends a single budget alert notification.
	SendBudgetAlert(ctx context.Context, input BudgetAlertInput) error
}
