package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/smartshoplabs/smartshop-backend/pkg/errors"
)

// PriceBand selects one of the configured price ranges.
type PriceBand string

const (
	PriceBandAll          PriceBand = "All"
	PriceBandBelow        PriceBand = "Below"
	PriceBandAboveOrEqual PriceBand = "AboveOrEqual"
)

// ParsePriceBand maps a query value onto a band; empty means PriceBandAll.
func ParsePriceBand(value string) (PriceBand, error) {
	switch strings.TrimSpace(value) {
	case "", string(PriceBandAll):
		return PriceBandAll, nil
	case string(PriceBandBelow):
		return PriceBandBelow, nil
	case string(PriceBandAboveOrEqual):
		return PriceBandAboveOrEqual, nil
	}
	return PriceBandAll, pkgerrors.New(pkgerrors.CodeValidation, "unknown price band").WithDetails(map[string]string{"price_band": value})
}

// FilterConfig carries the price-band boundary; the threshold is
// configuration so the band layout can be reused with other currencies.
type FilterConfig struct {
	Threshold decimal.Decimal
}

// DefaultFilterConfig uses the 500 boundary observed in the shop screens.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{Threshold: decimal.NewFromInt(500)}
}

// Query captures the browse state: free text, category and price band.
type Query struct {
	Search   string
	Category string
	Band     PriceBand
}

// List applies the three filter predicates (category AND price band AND
// text) over the catalog and returns matches in catalog order. An empty
// result is a valid outcome, not an error.
func (c *Catalog) List(q Query, cfg FilterConfig) []Product {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	category := strings.TrimSpace(q.Category)
	band := q.Band
	if band == "" {
		band = PriceBandAll
	}

	out := []Product{}
	for _, p := range c.products {
		if !matchesCategory(p, category) {
			continue
		}
		if !matchesBand(p, band, cfg.Threshold) {
			continue
		}
		if !matchesSearch(p, search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesCategory(p Product, category string) bool {
	return category == "" || category == CategoryAll || p.Category == category
}

func matchesBand(p Product, band PriceBand, threshold decimal.Decimal) bool {
	switch band {
	case PriceBandBelow:
		return p.Price.LessThan(threshold)
	case PriceBandAboveOrEqual:
		return p.Price.GreaterThanOrEqual(threshold)
	default:
		return true
	}
}

func matchesSearch(p Product, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), search) ||
		strings.Contains(strings.ToLower(p.Description), search) ||
		strings.Contains(strings.ToLower(p.Category), search)
}
