package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/smartshoplabs/smartshop-backend/pkg/errors"
)

// CategoryAll matches every category when filtering.
const CategoryAll = "All"

// Product is an immutable catalog record.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	ImageRef    string          `json:"image_ref"`
}

// Catalog is a static, ordered product listing with id lookup.
type Catalog struct {
	products []Product
	byID     map[string]int
}

// New builds a catalog from the supplied products. Ids must be unique
// and prices non-negative; the input order is preserved.
func New(products []Product) (*Catalog, error) {
	byID := make(map[string]int, len(products))
	owned := make([]Product, 0, len(products))
	for i, p := range products {
		if strings.TrimSpace(p.ID) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
		}
		if _, exists := byID[p.ID]; exists {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "duplicate product id").WithDetails(map[string]string{"id": p.ID})
		}
		if p.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product price must be non-negative").WithDetails(map[string]string{"id": p.ID})
		}
		byID[p.ID] = i
		owned = append(owned, p)
	}
	return &Catalog{products: owned, byID: byID}, nil
}

// Get returns the product for the given id.
func (c *Catalog) Get(id string) (Product, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[idx], true
}

// Len reports the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Products returns a copy of the full listing in catalog order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Categories returns CategoryAll followed by the distinct categories
// in catalog order.
func (c *Catalog) Categories() []string {
	seen := map[string]struct{}{}
	out := []string{CategoryAll}
	for _, p := range c.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
