package catalog

import "github.com/shopspring/decimal"

// Product is the catalog snapshot carried into carts and wishlists.
// BulkPrice is the alternate unit price applied for business buyers.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	BulkPrice decimal.Decimal `json:"bulkPrice"`
	Image     string          `json:"image"`
	Category  string          `json:"category"`
}

// PriceFor returns the unit price applicable to the given buyer role.
func (p Product) PriceFor(bulk bool) decimal.Decimal {
	if bulk {
		return p.BulkPrice
	}
	return p.Price
}
