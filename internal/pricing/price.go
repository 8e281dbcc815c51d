package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"football-kit-shop/internal/catalog"
)

// FinalPrice is the price a variant sells at: product base price plus the
// variant's adjustment. Nothing here clamps the result.
func FinalPrice(p *catalog.Product, v *catalog.ProductVariant) decimal.Decimal {
	return p.BasePrice.Add(v.PriceAdjustment)
}

// DisplayBasePrice applies the best currently active product discount to the
// base price for catalog display. Checkout totals never call this; they work
// from cart snapshots and coupon or loyalty discounts.
func DisplayBasePrice(p *catalog.Product, now time.Time) decimal.Decimal {
	best := decimal.Zero
	for i := range p.Discounts {
		d := &p.Discounts[i]
		if !d.ActiveAt(now) {
			continue
		}
		var off decimal.Decimal
		switch DiscountType(d.DiscountType) {
		case DiscountPercentage:
			off = p.BasePrice.Mul(d.DiscountValue).Div(oneHundred)
		case DiscountFixedAmount:
			off = d.DiscountValue
		default:
			continue
		}
		if off.GreaterThan(best) {
			best = off
		}
	}
	price := p.BasePrice.Sub(best)
	if price.IsNegative() {
		return decimal.Zero
	}
	return price.Round(2)
}
