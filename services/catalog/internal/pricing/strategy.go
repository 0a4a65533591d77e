package pricing

import "github.com/utafrali/JewelryGo/services/catalog/internal/domain"

const (
	weightStrategyName = "weight"
	ratioStrategyName  = "ratio"
	storedStrategyName = "stored"
)

// Strategy prices a catalog record at a chosen karat.
type Strategy interface {
	Name() string
	Price(rec domain.ProductRecord, karat int) (Breakdown, error)
}

// WeightStrategy recomputes the price from gold and diamond weights.
type WeightStrategy struct {
	calc *Calculator
}

// Name implements Strategy.
func (WeightStrategy) Name() string { return weightStrategyName }

// Price implements Strategy.
func (s WeightStrategy) Price(rec domain.ProductRecord, karat int) (Breakdown, error) {
	return s.calc.CalculateDynamicPrice(rec.GoldWeight, rec.DiamondWeight, karat)
}

// RatioStrategy scales the stored price by gold rate. Results are
// approximate; see Calculator.PriceWithGoldPurity.
type RatioStrategy struct {
	calc *Calculator
}

// Name implements Strategy.
func (RatioStrategy) Name() string { return ratioStrategyName }

// Price implements Strategy.
func (s RatioStrategy) Price(rec domain.ProductRecord, karat int) (Breakdown, error) {
	price, err := s.calc.PriceWithGoldPurity(rec.PriceINR, karat)
	if err != nil {
		return Breakdown{}, err
	}
	return Breakdown{
		Karat:       karat,
		FinalPrice:  price,
		Strategy:    ratioStrategyName,
		Approximate: true,
	}, nil
}

// StrategyFor picks the weight strategy when rec carries a gold weight and
// the ratio strategy otherwise.
func (c *Calculator) StrategyFor(rec domain.ProductRecord) Strategy {
	if rec.GoldWeight > 0 {
		return WeightStrategy{calc: c}
	}
	return RatioStrategy{calc: c}
}

// QuoteRecord prices rec at karat with the strategy its data supports.
func (c *Calculator) QuoteRecord(rec domain.ProductRecord, karat int) (Breakdown, error) {
	return c.StrategyFor(rec).Price(rec, karat)
}

// ListPrice prices rec at the karat it is listed at. Records with a gold
// weight are recomputed; the rest keep their stored price exactly.
func (c *Calculator) ListPrice(rec domain.ProductRecord, karat int) (Breakdown, error) {
	if rec.GoldWeight > 0 {
		return c.QuoteRecord(rec, karat)
	}
	price, err := c.PriceFromRecord(rec, karat)
	if err != nil {
		return Breakdown{}, err
	}
	return Breakdown{Karat: karat, FinalPrice: price, Strategy: storedStrategyName}, nil
}
