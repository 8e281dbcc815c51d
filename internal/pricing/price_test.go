package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"football-kit-shop/internal/catalog"
)

func TestFinalPrice(t *testing.T) {
	p := &catalog.Product{BasePrice: dec("100")}

	up := &catalog.ProductVariant{PriceAdjustment: dec("7.50")}
	assert.True(t, FinalPrice(p, up).Equal(dec("107.50")))

	down := &catalog.ProductVariant{PriceAdjustment: dec("-12")}
	assert.True(t, FinalPrice(p, down).Equal(dec("88")))

	// No floor: an oversized negative adjustment goes right through.
	broken := &catalog.ProductVariant{PriceAdjustment: dec("-150")}
	assert.True(t, FinalPrice(p, broken).Equal(dec("-50")))
}

func TestDisplayBasePrice(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	longGone := now.Add(-48 * time.Hour)

	p := &catalog.Product{
		BasePrice: dec("100"),
		Discounts: []catalog.ProductDiscount{
			{DiscountType: "percentage", DiscountValue: dec("10"), StartDate: &past, EndDate: &future, IsActive: true},
			{DiscountType: "fixed_amount", DiscountValue: dec("25"), StartDate: &past, EndDate: &future, IsActive: true},
			{DiscountType: "percentage", DiscountValue: dec("90"), StartDate: &longGone, EndDate: &past, IsActive: true},
			{DiscountType: "percentage", DiscountValue: dec("95"), IsActive: false},
		},
	}

	// Best active discount wins: fixed 25 beats 10%.
	assert.True(t, DisplayBasePrice(p, now).Equal(dec("75.00")))
}

func TestDisplayBasePriceNoActiveDiscounts(t *testing.T) {
	p := &catalog.Product{BasePrice: dec("60")}
	assert.True(t, DisplayBasePrice(p, time.Now()).Equal(dec("60.00")))
}

func TestDisplayBasePriceClampedAtZero(t *testing.T) {
	p := &catalog.Product{
		BasePrice: dec("10"),
		Discounts: []catalog.ProductDiscount{
			{DiscountType: "fixed_amount", DiscountValue: dec("40"), IsActive: true},
		},
	}
	assert.True(t, DisplayBasePrice(p, time.Now()).IsZero())
}
