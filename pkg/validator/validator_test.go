package validator

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utafrali/JewelryGo/pkg/errors"
)

func init() {
	RegisterString("testmetal", func(s string) bool { return s == "Platinum" || s == "Rose Gold" })
}

type quoteRequest struct {
	GoldWeight float64 `json:"gold_weight" validate:"gte=0"`
	Karat      int     `json:"karat" validate:"required,oneof=14 18 22 24"`
	Metal      string  `json:"metal" validate:"omitempty,testmetal"`
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, Validate(quoteRequest{GoldWeight: 3.2, Karat: 18, Metal: "Platinum"}))
}

func TestValidate_FieldErrors(t *testing.T) {
	err := Validate(quoteRequest{GoldWeight: -1, Karat: 9, Metal: "Silver"})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))

	fields := valErr.Fields()
	assert.Equal(t, "must be greater than or equal to 0", fields["GoldWeight"])
	assert.Equal(t, "must be one of: 14 18 22 24", fields["Karat"])
	assert.Contains(t, fields, "Metal")
	assert.Contains(t, valErr.Error(), "field 'Karat'")
}

func TestValidate_RequiredMissing(t *testing.T) {
	err := Validate(quoteRequest{})
	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "is required", valErr.Fields()["Karat"])
}

func TestDecodeAndValidate(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"gold_weight":2,"karat":22}`))
		var dst quoteRequest
		require.NoError(t, DecodeAndValidate(r, &dst))
		assert.Equal(t, 22, dst.Karat)
	})

	t.Run("malformed json", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"karat":`))
		var dst quoteRequest
		err := DecodeAndValidate(r, &dst)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode request body")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("unknown field", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"karat":18,"discount":5}`))
		var dst quoteRequest
		assert.Error(t, DecodeAndValidate(r, &dst))
	})

	t.Run("validation failure", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"karat":10}`))
		var dst quoteRequest
		var valErr *ValidationError
		assert.True(t, errors.As(DecodeAndValidate(r, &dst), &valErr))
	})
}

type weightsOrRecord struct {
	RecordID string   `validate:"required_without_all=Gold Diamond"`
	Gold     *float64 `validate:"omitempty,gte=0"`
	Diamond  *float64 `validate:"omitempty,gte=0"`
}

func TestValidate_ZeroPointerCountsAsPresent(t *testing.T) {
	zero, one := 0.0, 1.0
	assert.NoError(t, Validate(weightsOrRecord{Gold: &zero}))
	assert.NoError(t, Validate(weightsOrRecord{Diamond: &one}))
	assert.NoError(t, Validate(weightsOrRecord{RecordID: "r1"}))

	var valErr *ValidationError
	require.ErrorAs(t, Validate(weightsOrRecord{}), &valErr)
	assert.Equal(t, "is required when Gold and Diamond are absent", valErr.Fields()["RecordID"])
}
