package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utafrali/JewelryGo/pkg/errors"
	"github.com/utafrali/JewelryGo/services/catalog/internal/domain"
)

func newCalc() *Calculator {
	return NewCalculator(domain.DefaultPurityTable())
}

// --- CalculateDynamicPrice ---

func TestCalculateDynamicPrice_ReferenceScenario(t *testing.T) {
	b, err := newCalc().CalculateDynamicPrice(10, 1, 18)
	require.NoError(t, err)

	assert.Equal(t, int64(45000), b.GoldPrice)
	assert.Equal(t, int64(50000), b.DiamondPrice)
	assert.Equal(t, int64(11400), b.MakingCharges)
	assert.Equal(t, int64(106400), b.FinalPrice)
	assert.Equal(t, 18, b.Karat)
	assert.Equal(t, "weight", b.Strategy)
	assert.False(t, b.Approximate)
}

func TestCalculateDynamicPrice_RoundsHalfUp(t *testing.T) {
	table := domain.PurityTable{
		Tiers:                map[string]domain.PurityTier{"18kt": {Purity: 100, PricePerGram: 1, MakingChargesPercent: 0}},
		DiamondPricePerCarat: 1,
	}
	b, err := NewCalculator(table).CalculateDynamicPrice(2.5, 0.5, 18)
	require.NoError(t, err)
	assert.Equal(t, int64(3), b.GoldPrice)
	assert.Equal(t, int64(1), b.DiamondPrice)
	assert.Equal(t, int64(3), b.FinalPrice)
}

func TestCalculateDynamicPrice_UnsupportedKarat(t *testing.T) {
	_, err := newCalc().CalculateDynamicPrice(10, 1, 9)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedPurity)
}

func TestCalculateDynamicPrice_RejectsBadWeights(t *testing.T) {
	for _, w := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := newCalc().CalculateDynamicPrice(w, 0, 18)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput, "gold weight %v", w)

		_, err = newCalc().CalculateDynamicPrice(0, w, 18)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput, "diamond weight %v", w)
	}
}

func TestCalculateDynamicPrice_DeterministicAndNonNegative(t *testing.T) {
	c := newCalc()
	weights := []float64{0, 0.01, 1.234, 3.5, 7.77, 12}
	for _, karat := range c.Table().Karats() {
		for _, g := range weights {
			for _, d := range weights {
				first, err := c.CalculateDynamicPrice(g, d, karat)
				require.NoError(t, err)
				second, err := c.CalculateDynamicPrice(g, d, karat)
				require.NoError(t, err)

				assert.Equal(t, first, second)
				assert.GreaterOrEqual(t, first.FinalPrice, int64(0))
			}
		}
	}
}

func TestCalculateDynamicPrice_ZeroWeightsCostNothing(t *testing.T) {
	b, err := newCalc().CalculateDynamicPrice(0, 0, 22)
	require.NoError(t, err)
	assert.Zero(t, b.FinalPrice)
}

func TestCalculateDynamicPrice_RejectsPricesBeyondInt64(t *testing.T) {
	c := newCalc()

	_, err := c.CalculateDynamicPrice(1e20, 0, 18)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = c.CalculateDynamicPrice(0, 1e18, 18)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	b, err := c.CalculateDynamicPrice(1e9, 0, 18)
	require.NoError(t, err)
	assert.Positive(t, b.FinalPrice)
}

// --- PriceFromRecord ---

func TestPriceFromRecord_WithoutGoldWeightKeepsStoredPrice(t *testing.T) {
	rec := domain.ProductRecord{PriceINR: 89999}
	price, err := newCalc().PriceFromRecord(rec, 22)
	require.NoError(t, err)
	assert.Equal(t, int64(89999), price)
}

func TestPriceFromRecord_ComputesFromWeights(t *testing.T) {
	rec := domain.ProductRecord{PriceINR: 1, GoldWeight: 10, DiamondWeight: 1}
	price, err := newCalc().PriceFromRecord(rec, domain.DefaultKarat)
	require.NoError(t, err)
	assert.Equal(t, int64(106400), price)

	_, err = newCalc().PriceFromRecord(rec, 10)
	assert.ErrorIs(t, err, domain.ErrUnsupportedPurity)
}

// --- PriceWithGoldPurity ---

func TestPriceWithGoldPurity(t *testing.T) {
	c := newCalc()

	same, err := c.PriceWithGoldPurity(60000, 18)
	require.NoError(t, err)
	assert.Equal(t, int64(60000), same)

	higher, err := c.PriceWithGoldPurity(60000, 22)
	require.NoError(t, err)
	assert.Equal(t, int64(73000), higher)

	lower, err := c.PriceWithGoldPurity(60000, 14)
	require.NoError(t, err)
	assert.Equal(t, int64(47000), lower)

	_, err = c.PriceWithGoldPurity(60000, 10)
	assert.ErrorIs(t, err, domain.ErrUnsupportedPurity)

	_, err = c.PriceWithGoldPurity(-1, 18)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestPriceWithGoldPurity_RejectsPricesBeyondInt64(t *testing.T) {
	_, err := newCalc().PriceWithGoldPurity(math.MaxInt64, 24)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	same, err := newCalc().PriceWithGoldPurity(math.MaxInt64, 18)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), same)
}

func TestPriceWithGoldPurity_MissingReferenceTier(t *testing.T) {
	table := domain.PurityTable{Tiers: map[string]domain.PurityTier{"22kt": {Purity: 91.6, PricePerGram: 7300}}}
	_, err := NewCalculator(table).PriceWithGoldPurity(1000, 22)
	assert.ErrorIs(t, err, domain.ErrUnsupportedPurity)
}

// --- Strategies ---

func TestStrategyFor_SelectsByGoldWeight(t *testing.T) {
	c := newCalc()
	assert.Equal(t, "weight", c.StrategyFor(domain.ProductRecord{GoldWeight: 2}).Name())
	assert.Equal(t, "ratio", c.StrategyFor(domain.ProductRecord{}).Name())
}

func TestQuoteRecord(t *testing.T) {
	c := newCalc()

	weighted, err := c.QuoteRecord(domain.ProductRecord{GoldWeight: 10, DiamondWeight: 1}, 18)
	require.NoError(t, err)
	assert.Equal(t, int64(106400), weighted.FinalPrice)
	assert.False(t, weighted.Approximate)

	ratio, err := c.QuoteRecord(domain.ProductRecord{PriceINR: 60000}, 24)
	require.NoError(t, err)
	assert.Equal(t, int64(79000), ratio.FinalPrice)
	assert.True(t, ratio.Approximate)
	assert.Equal(t, "ratio", ratio.Strategy)
	assert.Zero(t, ratio.GoldPrice)
}

func TestListPrice(t *testing.T) {
	c := newCalc()

	stored, err := c.ListPrice(domain.ProductRecord{PriceINR: 60000}, domain.DefaultKarat)
	require.NoError(t, err)
	assert.Equal(t, int64(60000), stored.FinalPrice)
	assert.Equal(t, "stored", stored.Strategy)
	assert.False(t, stored.Approximate)

	weighted, err := c.ListPrice(domain.ProductRecord{PriceINR: 1, GoldWeight: 10, DiamondWeight: 1}, domain.DefaultKarat)
	require.NoError(t, err)
	assert.Equal(t, int64(106400), weighted.FinalPrice)
	assert.Equal(t, "weight", weighted.Strategy)
}
