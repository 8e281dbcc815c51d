package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func percentCoupon(value string) *Coupon {
	return &Coupon{
		Code:          "SAVE",
		DiscountType:  DiscountPercentage,
		DiscountValue: dec(value),
		IsActive:      true,
	}
}

func TestCouponValid(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	limit := 3

	cases := []struct {
		name   string
		coupon Coupon
		want   bool
	}{
		{"active, no bounds", Coupon{IsActive: true}, true},
		{"inactive", Coupon{IsActive: false}, false},
		{"inside window", Coupon{IsActive: true, StartDate: &past, EndDate: &future}, true},
		{"before start", Coupon{IsActive: true, StartDate: &future}, false},
		{"after end", Coupon{IsActive: true, EndDate: &past}, false},
		{"under usage limit", Coupon{IsActive: true, UsageLimit: &limit, UsedCount: 2}, true},
		{"usage limit reached", Coupon{IsActive: true, UsageLimit: &limit, UsedCount: 3}, false},
		{"no usage limit", Coupon{IsActive: true, UsedCount: 9999}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.coupon.Valid(now))
		})
	}
}

func TestDiscountForInvalidCouponIsZero(t *testing.T) {
	now := time.Now()
	c := percentCoupon("50")
	c.IsActive = false

	for _, subtotal := range []string{"0", "10", "99999.99"} {
		assert.True(t, c.DiscountFor(dec(subtotal), now).IsZero(),
			"invalid coupon must give zero discount at subtotal %s", subtotal)
	}
}

func TestDiscountForMinimumPurchase(t *testing.T) {
	now := time.Now()
	c := percentCoupon("10")
	c.MinPurchaseAmount = dec("50")

	assert.True(t, c.DiscountFor(dec("49.99"), now).IsZero())
	assert.True(t, c.DiscountFor(dec("50.00"), now).Equal(dec("5.00")))
}

func TestDiscountForPercentage(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name     string
		value    string
		cap      string
		subtotal string
		want     string
	}{
		{"plain percentage", "10", "0", "130", "13.00"},
		{"capped", "50", "20", "100", "20.00"},
		{"cap not reached", "10", "20", "100", "10.00"},
		{"full percentage equals subtotal", "100", "0", "80", "80.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := percentCoupon(tc.value)
			c.MaxDiscountAmount = dec(tc.cap)
			got := c.DiscountFor(dec(tc.subtotal), now)
			assert.True(t, got.Equal(dec(tc.want)), "got %s want %s", got, tc.want)
		})
	}
}

func TestDiscountForFixedAmount(t *testing.T) {
	now := time.Now()
	c := &Coupon{
		Code:          "TAKE15",
		DiscountType:  DiscountFixedAmount,
		DiscountValue: dec("15"),
		IsActive:      true,
	}

	assert.True(t, c.DiscountFor(dec("100"), now).Equal(dec("15.00")))
	// Never exceeds the order value.
	assert.True(t, c.DiscountFor(dec("10"), now).Equal(dec("10")))
}

func TestDiscountForNeverNegative(t *testing.T) {
	now := time.Now()
	c := &Coupon{
		DiscountType:  DiscountFixedAmount,
		DiscountValue: dec("-5"),
		IsActive:      true,
	}
	assert.True(t, c.DiscountFor(dec("100"), now).IsZero())
}

func TestDiscountForUnknownTypeIsZero(t *testing.T) {
	c := &Coupon{DiscountType: "mystery", DiscountValue: dec("10"), IsActive: true}
	assert.True(t, c.DiscountFor(dec("100"), time.Now()).IsZero())
}
