package mock

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/JewelryGo/services/cart/internal/provider"
)

func TestCreateCheckoutSession(t *testing.T) {
	p := NewProvider("")
	res, err := p.CreateCheckoutSession(context.Background(), &provider.SessionInput{
		Items:      []provider.LineItem{{UnitPrice: 1000, Quantity: 2}, {UnitPrice: 500, Quantity: 1}},
		SuccessURL: "https://shop.example.com/ok",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2500), res.AmountTotal)
	assert.True(t, strings.HasPrefix(res.ProviderSessionID, "mock_cs_"))
	assert.Equal(t, "https://shop.example.com/ok", res.URL)
}

func TestCreateCheckoutSession_BaseURL(t *testing.T) {
	p := NewProvider("http://localhost:8003")
	res, err := p.CreateCheckoutSession(context.Background(), &provider.SessionInput{})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8003/pay/"+res.ProviderSessionID, res.URL)
	assert.Equal(t, "mock", p.Name())
}
