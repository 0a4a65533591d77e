package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/utafrali/JewelryGo/pkg/errors"
)

// downstreamError mirrors the error half of httputil.Response.
type downstreamError struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResponseError consumes and closes a non-2xx response and converts it
// into an error. Structured bodies keep their code so callers can branch on
// the same sentinel the downstream service used.
func ParseResponseError(resp *http.Response, serviceName string) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s returned status %d (read body: %w)", serviceName, resp.StatusCode, err)
	}

	var parsed downstreamError
	if json.Unmarshal(body, &parsed) == nil && parsed.Error != nil {
		return &apperrors.AppError{
			Code:    parsed.Error.Code,
			Message: fmt.Sprintf("%s: %s", serviceName, parsed.Error.Message),
			Status:  resp.StatusCode,
			Err:     sentinelFor(resp.StatusCode, parsed.Error.Code),
		}
	}

	return &apperrors.AppError{
		Code:    "DOWNSTREAM_ERROR",
		Message: fmt.Sprintf("%s returned status %d: %s", serviceName, resp.StatusCode, string(body)),
		Status:  resp.StatusCode,
		Err:     sentinelFor(resp.StatusCode, ""),
	}
}

func sentinelFor(status int, code string) error {
	switch code {
	case "OUT_OF_STOCK":
		return apperrors.ErrOutOfStock
	case "PRICE_ON_REQUEST":
		return apperrors.ErrPriceOnRequest
	case "UNSUPPORTED_PURITY":
		return apperrors.ErrUnsupportedPurity
	}

	switch {
	case status == http.StatusNotFound:
		return apperrors.ErrNotFound
	case status == http.StatusConflict:
		return apperrors.ErrConflict
	case status == http.StatusTooManyRequests:
		return apperrors.ErrTooManyRequests
	case status == http.StatusUnprocessableEntity || status == http.StatusPaymentRequired:
		return apperrors.ErrPaymentFailed
	case status >= 400 && status < 500:
		return apperrors.ErrInvalidInput
	case status == http.StatusServiceUnavailable:
		return apperrors.ErrServiceUnavail
	default:
		return apperrors.ErrInternal
	}
}

// IsClientError reports whether status is a 4xx code.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
