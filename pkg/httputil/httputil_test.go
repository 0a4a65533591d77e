package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utafrali/JewelryGo/pkg/errors"
	"github.com/utafrali/JewelryGo/pkg/logger"
	"github.com/utafrali/JewelryGo/pkg/pagination"
	"github.com/utafrali/JewelryGo/pkg/validator"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *ErrorResponse {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Error)
	return resp.Error
}

// --- WriteJSON ---

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, Response{Data: map[string]string{"slug": "eterna-ring"}})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"slug":"eterna-ring"}}`, rec.Body.String())
}

// --- WriteError ---

func TestWriteError_Mapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"app error", apperrors.NotFound("product", "p-1"), http.StatusNotFound, "NOT_FOUND"},
		{"purity", apperrors.UnsupportedPurity(9), http.StatusBadRequest, "UNSUPPORTED_PURITY"},
		{"wrapped sentinel", fmt.Errorf("get: %w", apperrors.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"conflict sentinel", apperrors.ErrConflict, http.StatusConflict, "CONFLICT"},
		{"rate limited", apperrors.ErrTooManyRequests, http.StatusTooManyRequests, "RATE_LIMITED"},
		{"unknown", fmt.Errorf("disk full"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)

			WriteError(rec, req, tt.err, testLogger())

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec).Code)
		})
	}
}

func TestWriteError_InternalMessageIsGeneric(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	WriteError(rec, req, fmt.Errorf("pq: password authentication failed"), testLogger())

	assert.Equal(t, "an internal error occurred", decodeError(t, rec).Message)
}

func TestWriteError_IncludesRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(logger.WithCorrelationID(context.Background(), "corr-77"))

	WriteError(rec, req, apperrors.InvalidInput("bad"), testLogger())

	assert.Equal(t, "corr-77", decodeError(t, rec).RequestID)
}

func TestWriteError_ValidationFields(t *testing.T) {
	type body struct {
		Quantity int `validate:"gte=1"`
	}
	err := validator.Validate(body{Quantity: 0})
	require.Error(t, err)

	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodPost, "/", nil), err, testLogger())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", resp.Code)
	assert.Contains(t, resp.Fields, "Quantity")
}

func TestWriteInvalidParameter(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteInvalidParameter(rec, "min_price must be an integer")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_PARAMETER", decodeError(t, rec).Code)
}

// --- Pagination envelope ---

func TestNewPaginatedResponse(t *testing.T) {
	resp := NewPaginatedResponse([]string{"a", "b"}, 5, pagination.New(1, 2))
	assert.Equal(t, 3, resp.TotalPages)
	assert.True(t, resp.HasNext)

	last := NewPaginatedResponse([]string{"e"}, 5, pagination.New(3, 2))
	assert.False(t, last.HasNext)

	empty := NewPaginatedResponse[string](nil, 0, pagination.New(1, 2))
	assert.NotNil(t, empty.Data)
	assert.Equal(t, 0, empty.TotalPages)
}

// --- Query helpers ---

func TestQueryList(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?metal=Platinum,Rose%20Gold&metal=White%20Gold&metal=", nil)
	assert.Equal(t, []string{"Platinum", "Rose Gold", "White Gold"}, QueryList(req, "metal"))
	assert.Nil(t, QueryList(req, "category"))
}

func TestQueryInt64(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?min_price=1500&max_price=abc", nil)

	v, present, ok := QueryInt64(req, "min_price")
	assert.Equal(t, int64(1500), v)
	assert.True(t, present)
	assert.True(t, ok)

	_, present, ok = QueryInt64(req, "max_price")
	assert.True(t, present)
	assert.False(t, ok)

	_, present, ok = QueryInt64(req, "absent")
	assert.False(t, present)
	assert.True(t, ok)
}

func TestQueryBool(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?in_stock=true&featured=maybe", nil)

	v, ok := QueryBool(req, "in_stock")
	assert.True(t, v)
	assert.True(t, ok)

	_, ok = QueryBool(req, "featured")
	assert.False(t, ok)

	v, ok = QueryBool(req, "absent")
	assert.False(t, v)
	assert.True(t, ok)
}
