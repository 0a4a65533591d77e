// Package stripe creates Stripe Checkout Sessions over the REST API.
package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	apperrors "github.com/utafrali/JewelryGo/pkg/errors"
	"github.com/utafrali/JewelryGo/pkg/httpclient"
	"github.com/utafrali/JewelryGo/services/cart/internal/provider"
)

// DefaultBaseURL is the Stripe API root.
const DefaultBaseURL = "https://api.stripe.com"

// paisePerRupee converts rupees to Stripe's smallest currency unit.
const paisePerRupee = 100

// Provider implements provider.Provider against Stripe Checkout.
type Provider struct {
	http      *httpclient.CircuitBreakerClient
	baseURL   string
	secretKey string
	logger    *slog.Logger
}

// NewProvider creates a Stripe provider. baseURL is normally DefaultBaseURL.
func NewProvider(cb *httpclient.CircuitBreakerClient, baseURL, secretKey string, logger *slog.Logger) *Provider {
	return &Provider{
		http:      cb,
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		logger:    logger,
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "stripe"
}

type sessionResponse struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	AmountTotal int64  `json:"amount_total"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateCheckoutSession posts a payment-mode session with inline price data.
func (p *Provider) CreateCheckoutSession(ctx context.Context, input *provider.SessionInput) (*provider.SessionResult, error) {
	form := encodeSession(input)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create stripe request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	if input.IdempotencyKey != "" {
		req.Header.Set("Idempotency-Key", input.IdempotencyKey)
	}

	resp, err := p.http.Do(ctx, req)
	if err != nil {
		if errors.Is(err, httpclient.ErrCircuitOpen) {
			return nil, apperrors.ServiceUnavailable("payment provider unavailable")
		}
		return nil, fmt.Errorf("stripe create checkout session: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read stripe response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var se errorResponse
		_ = json.Unmarshal(body, &se)
		p.logger.WarnContext(ctx, "stripe rejected checkout session",
			slog.Int("status", resp.StatusCode),
			slog.String("type", se.Error.Type),
			slog.String("code", se.Error.Code),
		)
		msg := se.Error.Message
		if msg == "" {
			msg = fmt.Sprintf("stripe returned status %d", resp.StatusCode)
		}
		return nil, apperrors.PaymentFailed(msg)
	}

	var sr sessionResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("decode stripe session: %w", err)
	}
	return &provider.SessionResult{
		ProviderSessionID: sr.ID,
		URL:               sr.URL,
		AmountTotal:       sr.AmountTotal / paisePerRupee,
	}, nil
}

// encodeSession builds the form body using Stripe's bracketed parameter
// names, e.g. line_items[0][price_data][unit_amount].
func encodeSession(input *provider.SessionInput) url.Values {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", input.SuccessURL)
	form.Set("cancel_url", input.CancelURL)
	form.Set("client_reference_id", input.CartID)
	form.Set("metadata[cart_id]", input.CartID)
	form.Set("metadata[session_id]", input.SessionID)

	currency := strings.ToLower(input.Currency)
	for i, item := range input.Items {
		prefix := "line_items[" + strconv.Itoa(i) + "]"
		form.Set(prefix+"[quantity]", strconv.Itoa(item.Quantity))
		form.Set(prefix+"[price_data][currency]", currency)
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(item.UnitPrice*paisePerRupee, 10))
		form.Set(prefix+"[price_data][product_data][name]", item.Name)
		if item.ImageURL != "" && strings.HasPrefix(item.ImageURL, "https://") {
			form.Set(prefix+"[price_data][product_data][images][0]", item.ImageURL)
		}
	}
	return form
}
