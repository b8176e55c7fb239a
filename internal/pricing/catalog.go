package pricing

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/wekeza/pricing-engine/internal/domain"
)

// Catalog is an immutable snapshot of the tenant's loan products and
// their pricing tiers, built once per pricing pass from data the
// caller has already fetched. It never mutates its inputs.
type Catalog struct {
	products       []*domain.LoanProduct
	typesByProduct map[int64][]*domain.ProductType
	typeByID       map[int64]*domain.ProductType
}

// NewCatalog builds a catalog snapshot. Tiers are ordered by duration
// ascending, then by id, so auto-selection never depends on incidental
// list order.
func NewCatalog(products []*domain.LoanProduct, types []*domain.ProductType) *Catalog {
	c := &Catalog{
		products:       products,
		typesByProduct: make(map[int64][]*domain.ProductType),
		typeByID:       make(map[int64]*domain.ProductType, len(types)),
	}

	for _, t := range types {
		c.typesByProduct[t.ProductID] = append(c.typesByProduct[t.ProductID], t)
		c.typeByID[t.ID] = t
	}

	for _, list := range c.typesByProduct {
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].DurationWeeks != list[j].DurationWeeks {
				return list[i].DurationWeeks < list[j].DurationWeeks
			}
			return list[i].ID < list[j].ID
		})
	}

	return c
}

// MatchProduct selects the product whose range contains principal.
// Ranges are non-overlapping by catalog invariant, so the first hit is
// the only hit.
func (c *Catalog) MatchProduct(principal decimal.Decimal) (*domain.LoanProduct, bool) {
	if principal.Sign() < 0 {
		return nil, false
	}
	for _, p := range c.products {
		if p.Contains(principal) {
			return p, true
		}
	}
	return nil, false
}

// TypesForProduct returns the product's tiers in catalog order.
func (c *Catalog) TypesForProduct(productID int64) []*domain.ProductType {
	return c.typesByProduct[productID]
}

// SelectType resolves the pricing tier for a matched product.
// An explicit selection wins while it still belongs to the product;
// a stale or absent selection falls back to a tier matching the held
// duration, then to the first tier in catalog order.
func (c *Catalog) SelectType(productID int64, selectedTypeID int64, heldDurationWeeks int) (*domain.ProductType, bool) {
	available := c.typesByProduct[productID]
	if len(available) == 0 {
		return nil, false
	}

	if selectedTypeID != 0 {
		if t, ok := c.typeByID[selectedTypeID]; ok && t.ProductID == productID {
			return t, true
		}
	}

	if heldDurationWeeks > 0 {
		for _, t := range available {
			if t.DurationWeeks == heldDurationWeeks {
				return t, true
			}
		}
	}

	return available[0], true
}
