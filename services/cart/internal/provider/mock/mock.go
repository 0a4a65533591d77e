package mock

import (
	"context"

	"github.com/google/uuid"

	"github.com/utafrali/JewelryGo/services/cart/internal/provider"
)

// Provider is a mock payment provider that always succeeds.
// It is intended for development and testing purposes.
type Provider struct {
	baseURL string
}

// NewProvider creates a mock provider whose session URLs live under baseURL.
func NewProvider(baseURL string) *Provider {
	return &Provider{baseURL: baseURL}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "mock"
}

// CreateCheckoutSession returns a fake session pointing at the success URL.
func (p *Provider) CreateCheckoutSession(_ context.Context, input *provider.SessionInput) (*provider.SessionResult, error) {
	var total int64
	for _, item := range input.Items {
		total += item.UnitPrice * int64(item.Quantity)
	}
	id := "mock_cs_" + uuid.New().String()

	url := input.SuccessURL
	if p.baseURL != "" {
		url = p.baseURL + "/pay/" + id
	}
	return &provider.SessionResult{
		ProviderSessionID: id,
		URL:               url,
		AmountTotal:       total,
	}, nil
}
