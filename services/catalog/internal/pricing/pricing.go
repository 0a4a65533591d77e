// Package pricing computes displayed jewelry prices from physical attributes
// and gold purity reference rates.
package pricing

import (
	"math"

	"github.com/shopspring/decimal"

	apperrors "github.com/utafrali/JewelryGo/pkg/errors"
	"github.com/utafrali/JewelryGo/services/catalog/internal/domain"
)

var (
	hundred   = decimal.NewFromInt(100)
	maxRupees = decimal.NewFromInt(math.MaxInt64)
)

// Breakdown is an itemised price in whole rupees.
type Breakdown struct {
	Karat         int    `json:"karat"`
	GoldPrice     int64  `json:"gold_price"`
	DiamondPrice  int64  `json:"diamond_price"`
	MakingCharges int64  `json:"making_charges"`
	FinalPrice    int64  `json:"final_price"`
	Strategy      string `json:"strategy"`
	Approximate   bool   `json:"approximate"`
}

// Calculator prices items against a purity table. It holds no mutable state
// and is safe for concurrent use.
type Calculator struct {
	table domain.PurityTable
}

// NewCalculator creates a calculator over table.
func NewCalculator(table domain.PurityTable) *Calculator {
	return &Calculator{table: table}
}

// Table returns the reference table the calculator was built with.
func (c *Calculator) Table() domain.PurityTable {
	return c.table
}

// CalculateDynamicPrice prices goldWeightGrams of gold at the given karat plus
// diamondWeightCarats of diamonds, adding the tier's making charges. Each
// component is rounded half-up independently; FinalPrice is the rounded
// unrounded sum.
func (c *Calculator) CalculateDynamicPrice(goldWeightGrams, diamondWeightCarats float64, karat int) (Breakdown, error) {
	if !validWeight(goldWeightGrams) {
		return Breakdown{}, apperrors.InvalidInput("gold weight must be a non-negative number")
	}
	if !validWeight(diamondWeightCarats) {
		return Breakdown{}, apperrors.InvalidInput("diamond weight must be a non-negative number")
	}

	tier, err := c.table.Tier(karat)
	if err != nil {
		return Breakdown{}, err
	}

	goldContent := decimal.NewFromFloat(goldWeightGrams).Mul(percent(tier.Purity))
	goldPrice := goldContent.Mul(decimal.NewFromFloat(tier.PricePerGram))
	diamondPrice := decimal.NewFromFloat(diamondWeightCarats).Mul(decimal.NewFromFloat(c.table.DiamondPricePerCarat))
	making := goldPrice.Add(diamondPrice).Mul(percent(tier.MakingChargesPercent))
	final := goldPrice.Add(diamondPrice).Add(making)

	// Every component is non-negative and at most final.
	finalRupees, ok := roundRupees(final)
	if !ok {
		return Breakdown{}, apperrors.InvalidInput("price out of range")
	}
	gold, _ := roundRupees(goldPrice)
	diamond, _ := roundRupees(diamondPrice)
	makingRupees, _ := roundRupees(making)

	return Breakdown{
		Karat:         karat,
		GoldPrice:     gold,
		DiamondPrice:  diamond,
		MakingCharges: makingRupees,
		FinalPrice:    finalRupees,
		Strategy:      weightStrategyName,
	}, nil
}

// PriceFromRecord returns the dynamic price of rec at karat. Records without
// a gold weight keep their stored PriceINR unchanged.
func (c *Calculator) PriceFromRecord(rec domain.ProductRecord, karat int) (int64, error) {
	if rec.GoldWeight == 0 {
		return rec.PriceINR, nil
	}
	b, err := c.CalculateDynamicPrice(rec.GoldWeight, rec.DiamondWeight, karat)
	if err != nil {
		return 0, err
	}
	return b.FinalPrice, nil
}

// PriceWithGoldPurity scales basePrice by the ratio of the karat's price per
// gram to the 18kt price per gram.
//
// This is an approximation for records without a weight breakdown: it
// scales the whole price, diamonds and making charges included, by the gold
// rate ratio.
func (c *Calculator) PriceWithGoldPurity(basePrice int64, karat int) (int64, error) {
	if basePrice < 0 {
		return 0, apperrors.InvalidInput("base price must not be negative")
	}
	tier, err := c.table.Tier(karat)
	if err != nil {
		return 0, err
	}
	ref, err := c.table.Tier(domain.DefaultKarat)
	if err != nil {
		return 0, err
	}
	if ref.PricePerGram == 0 {
		return 0, apperrors.InvalidInput("reference tier has no price per gram")
	}

	scaled := decimal.NewFromInt(basePrice).
		Mul(decimal.NewFromFloat(tier.PricePerGram)).
		Div(decimal.NewFromFloat(ref.PricePerGram))
	price, ok := roundRupees(scaled)
	if !ok {
		return 0, apperrors.InvalidInput("price out of range")
	}
	return price, nil
}

func percent(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Div(hundred)
}

// roundRupees rounds half away from zero; all inputs are non-negative. ok is
// false when the rounded value does not fit in an int64.
func roundRupees(d decimal.Decimal) (int64, bool) {
	r := d.Round(0)
	if r.GreaterThan(maxRupees) {
		return 0, false
	}
	return r.IntPart(), true
}

func validWeight(w float64) bool {
	return w >= 0 && !math.IsInf(w, 1) && !math.IsNaN(w)
}
