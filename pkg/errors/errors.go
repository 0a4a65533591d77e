package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors shared by every JewelryGo service.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrAlreadyExists     = errors.New("resource already exists")
	ErrInvalidInput      = errors.New("invalid input")
	ErrConflict          = errors.New("conflict")
	ErrUnsupportedPurity = errors.New("unsupported gold purity")
	ErrOutOfStock        = errors.New("out of stock")
	ErrPriceOnRequest    = errors.New("price on request")
	ErrInternal          = errors.New("internal error")
	ErrServiceUnavail    = errors.New("service unavailable")
	ErrPaymentFailed     = errors.New("payment failed")
	ErrTooManyRequests   = errors.New("too many requests")
)

// AppError carries a machine-readable code and the HTTP status it maps to.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newAppError(code string, status int, sentinel error, format string, args ...any) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Status:  status,
		Err:     sentinel,
	}
}

// NotFound creates a 404 error.
func NotFound(resource, id string) *AppError {
	return newAppError("NOT_FOUND", http.StatusNotFound, ErrNotFound, "%s with id %s not found", resource, id)
}

// AlreadyExists creates a 409 error.
func AlreadyExists(resource, field, value string) *AppError {
	return newAppError("ALREADY_EXISTS", http.StatusConflict, ErrAlreadyExists, "%s with %s %q already exists", resource, field, value)
}

// InvalidInput creates a 400 error.
func InvalidInput(message string) *AppError {
	return newAppError("INVALID_INPUT", http.StatusBadRequest, ErrInvalidInput, "%s", message)
}

// Conflict creates a 409 error for concurrent modification.
func Conflict(message string) *AppError {
	return newAppError("CONFLICT", http.StatusConflict, ErrConflict, "%s", message)
}

// UnsupportedPurity creates a 400 error for a karat tier missing from the purity table.
func UnsupportedPurity(karat int) *AppError {
	return newAppError("UNSUPPORTED_PURITY", http.StatusBadRequest, ErrUnsupportedPurity, "no purity tier configured for %dkt", karat)
}

// OutOfStock creates a 422 error for a record that cannot be sold.
func OutOfStock(recordID string) *AppError {
	return newAppError("OUT_OF_STOCK", http.StatusUnprocessableEntity, ErrOutOfStock, "record %s is out of stock", recordID)
}

// PriceOnRequest creates a 422 error for a record without a list price.
func PriceOnRequest(recordID string) *AppError {
	return newAppError("PRICE_ON_REQUEST", http.StatusUnprocessableEntity, ErrPriceOnRequest, "record %s is priced on request", recordID)
}

// ServiceUnavailable creates a 503 error.
func ServiceUnavailable(message string) *AppError {
	return newAppError("SERVICE_UNAVAILABLE", http.StatusServiceUnavailable, ErrServiceUnavail, "%s", message)
}

// PaymentFailed creates a 422 error for a rejected checkout session.
func PaymentFailed(message string) *AppError {
	return newAppError("PAYMENT_FAILED", http.StatusUnprocessableEntity, ErrPaymentFailed, "%s", message)
}

// Internal creates a 500 error.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyExists), errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrUnsupportedPurity):
		return http.StatusBadRequest
	case errors.Is(err, ErrOutOfStock), errors.Is(err, ErrPriceOnRequest), errors.Is(err, ErrPaymentFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrServiceUnavail):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
