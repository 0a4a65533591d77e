package provider

import (
	"context"
)

// LineItem is one cart line sent to the payment provider.
type LineItem struct {
	Name      string
	ImageURL  string
	UnitPrice int64 // rupees
	Quantity  int
}

// SessionInput holds the parameters for creating a hosted checkout page.
type SessionInput struct {
	CartID         string
	SessionID      string
	Currency       string
	Items          []LineItem
	SuccessURL     string
	CancelURL      string
	IdempotencyKey string
}

// SessionResult holds the provider's answer.
type SessionResult struct {
	ProviderSessionID string
	URL               string
	AmountTotal       int64 // rupees
}

// Provider defines the interface for payment provider integrations.
type Provider interface {
	// Name returns the provider name (e.g., "mock", "stripe").
	Name() string

	// CreateCheckoutSession creates a hosted payment page for the items.
	CreateCheckoutSession(ctx context.Context, input *SessionInput) (*SessionResult, error)
}
