// Package client talks to the services the cart depends on.
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	apperrors "github.com/utafrali/JewelryGo/pkg/errors"
	"github.com/utafrali/JewelryGo/pkg/httpclient"
	"github.com/utafrali/JewelryGo/services/cart/internal/domain"
)

// CatalogClient reads SKU records from the catalog service.
type CatalogClient struct {
	http    *httpclient.CircuitBreakerClient
	baseURL string
	logger  *slog.Logger
}

// NewCatalogClient creates a client for the catalog service at baseURL,
// e.g. "http://catalog:8001".
func NewCatalogClient(cb *httpclient.CircuitBreakerClient, baseURL string, logger *slog.Logger) *CatalogClient {
	return &CatalogClient{
		http:    cb,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// GetRecord fetches one record. An open breaker surfaces as
// SERVICE_UNAVAILABLE.
func (c *CatalogClient) GetRecord(ctx context.Context, recordID string) (*domain.Record, error) {
	var rec domain.Record
	endpoint := c.baseURL + "/api/v1/records/" + url.PathEscape(recordID)

	if err := c.http.GetJSON(ctx, endpoint, &rec); err != nil {
		if errors.Is(err, httpclient.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "catalog circuit open", slog.String("record_id", recordID))
			return nil, apperrors.ServiceUnavailable("catalog is unavailable")
		}
		return nil, fmt.Errorf("get catalog record %s: %w", recordID, err)
	}
	return &rec, nil
}
