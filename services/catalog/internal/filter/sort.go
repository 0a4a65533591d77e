package filter

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/utafrali/JewelryGo/services/catalog/internal/domain"
)

// Locale is the collation language used by the name sort.
var Locale = language.English

// SortRecords returns a stably sorted copy of records. Unknown options keep
// input order.
func SortRecords(records []domain.ProductRecord, opt domain.SortOption) []domain.ProductRecord {
	out := make([]domain.ProductRecord, len(records))
	copy(out, records)

	var less func(a, b domain.ProductRecord) bool
	switch opt {
	case domain.SortName:
		c := collate.New(Locale)
		less = func(a, b domain.ProductRecord) bool { return c.CompareString(a.Name, b.Name) < 0 }
	case domain.SortPriceLow:
		less = func(a, b domain.ProductRecord) bool { return a.PriceINR < b.PriceINR }
	case domain.SortPriceHigh:
		less = func(a, b domain.ProductRecord) bool { return a.PriceINR > b.PriceINR }
	case domain.SortNewest:
		less = func(a, b domain.ProductRecord) bool {
			return newer(a.ListedAt, a.VariantID, b.ListedAt, b.VariantID)
		}
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// SortGroups returns a stably sorted copy of groups. price-low orders by the
// cheapest variant, price-high by the dearest, newest by the latest listing
// time and then the highest variant ID.
func SortGroups(groups []domain.ProductGroup, opt domain.SortOption) []domain.ProductGroup {
	out := make([]domain.ProductGroup, len(groups))
	copy(out, groups)

	var less func(a, b domain.ProductGroup) bool
	switch opt {
	case domain.SortName:
		c := collate.New(Locale)
		less = func(a, b domain.ProductGroup) bool { return c.CompareString(a.Name, b.Name) < 0 }
	case domain.SortPriceLow:
		less = func(a, b domain.ProductGroup) bool { return a.PriceRange.Min < b.PriceRange.Min }
	case domain.SortPriceHigh:
		less = func(a, b domain.ProductGroup) bool { return a.PriceRange.Max > b.PriceRange.Max }
	case domain.SortNewest:
		less = func(a, b domain.ProductGroup) bool {
			at, aid := a.Newest()
			bt, bid := b.Newest()
			return newer(at, aid, bt, bid)
		}
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func newer(aTime time.Time, aID int, bTime time.Time, bID int) bool {
	if !aTime.Equal(bTime) {
		return aTime.After(bTime)
	}
	return aID > bID
}
