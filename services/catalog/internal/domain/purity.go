package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	apperrors "github.com/utafrali/JewelryGo/pkg/errors"
)

// ErrUnsupportedPurity is returned for karat tiers missing from the table.
var ErrUnsupportedPurity = apperrors.ErrUnsupportedPurity

// DefaultKarat is the tier used when a caller does not choose one.
const DefaultKarat = 18

// PurityTier is the pricing reference for one gold fineness.
type PurityTier struct {
	Purity               float64 `json:"purity" yaml:"purity"`
	PricePerGram         float64 `json:"price_per_gram" yaml:"price_per_gram"`
	MakingChargesPercent float64 `json:"making_charges_percent" yaml:"making_charges_percent"`
	DisplayName          string  `json:"display_name" yaml:"display_name"`
}

// PurityTable maps "{karat}kt" keys to tiers. It is read-only once loaded.
type PurityTable struct {
	Tiers                map[string]PurityTier `json:"tiers" yaml:"tiers"`
	DiamondPricePerCarat float64               `json:"diamond_price_per_carat" yaml:"diamond_price_per_carat"`
}

// TierKey returns the table key for karat, e.g. "18kt".
func TierKey(karat int) string {
	return strconv.Itoa(karat) + "kt"
}

// DefaultPurityTable returns the built-in reference rates.
func DefaultPurityTable() PurityTable {
	return PurityTable{
		Tiers: map[string]PurityTier{
			"14kt": {Purity: 58.5, PricePerGram: 4700, MakingChargesPercent: 14, DisplayName: "14K Gold"},
			"18kt": {Purity: 75, PricePerGram: 6000, MakingChargesPercent: 12, DisplayName: "18K Gold"},
			"22kt": {Purity: 91.6, PricePerGram: 7300, MakingChargesPercent: 10, DisplayName: "22K Gold"},
			"24kt": {Purity: 99.9, PricePerGram: 7900, MakingChargesPercent: 8, DisplayName: "24K Gold"},
		},
		DiamondPricePerCarat: 50000,
	}
}

// Tier looks up karat. Unknown tiers fail with ErrUnsupportedPurity.
func (t PurityTable) Tier(karat int) (PurityTier, error) {
	tier, ok := t.Tiers[TierKey(karat)]
	if !ok {
		return PurityTier{}, apperrors.UnsupportedPurity(karat)
	}
	return tier, nil
}

// Karats returns the configured karat values in ascending order.
func (t PurityTable) Karats() []int {
	karats := make([]int, 0, len(t.Tiers))
	for key := range t.Tiers {
		if k, err := parseTierKey(key); err == nil {
			karats = append(karats, k)
		}
	}
	sort.Ints(karats)
	return karats
}

// Validate checks key format and value bounds.
func (t PurityTable) Validate() error {
	if len(t.Tiers) == 0 {
		return fmt.Errorf("purity table has no tiers")
	}
	if t.DiamondPricePerCarat < 0 {
		return fmt.Errorf("diamond price per carat must not be negative")
	}
	for key, tier := range t.Tiers {
		if _, err := parseTierKey(key); err != nil {
			return err
		}
		if tier.Purity < 0 || tier.Purity > 100 {
			return fmt.Errorf("tier %s: purity %.2f outside [0,100]", key, tier.Purity)
		}
		if tier.MakingChargesPercent < 0 || tier.MakingChargesPercent > 100 {
			return fmt.Errorf("tier %s: making charges %.2f outside [0,100]", key, tier.MakingChargesPercent)
		}
		if tier.PricePerGram < 0 {
			return fmt.Errorf("tier %s: price per gram must not be negative", key)
		}
	}
	return nil
}

func parseTierKey(key string) (int, error) {
	num, ok := strings.CutSuffix(key, "kt")
	if !ok {
		return 0, fmt.Errorf("tier key %q must look like {karat}kt", key)
	}
	k, err := strconv.Atoi(num)
	if err != nil || k <= 0 {
		return 0, fmt.Errorf("tier key %q must look like {karat}kt", key)
	}
	return k, nil
}
