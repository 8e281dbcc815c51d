package pricing

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType selects how a coupon's value is applied to a subtotal.
type DiscountType string

const (
	// DiscountPercentage applies discount_value as a percentage of the subtotal.
	DiscountPercentage DiscountType = "percentage"
	// DiscountFixedAmount subtracts discount_value directly.
	DiscountFixedAmount DiscountType = "fixed_amount"
)

// ErrInvalidCoupon is returned when a coupon code does not resolve to a
// currently valid coupon.
var ErrInvalidCoupon = errors.New("invalid coupon")

var oneHundred = decimal.NewFromInt(100)

// Coupon is a redeemable discount code with validity and usage constraints.
type Coupon struct {
	ID                uint            `gorm:"primaryKey"`
	Code              string          `gorm:"size:64;uniqueIndex;not null"`
	DiscountType      DiscountType    `gorm:"size:16;not null"`
	DiscountValue     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	MinPurchaseAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	MaxDiscountAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	UsageLimit        *int
	UsedCount         int `gorm:"not null;default:0"`
	StartDate         *time.Time
	EndDate           *time.Time
	IsActive          bool `gorm:"not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Valid reports whether the coupon can be redeemed at the given moment:
// active, inside its date window (absent bounds are unbounded) and under its
// usage limit when one is set.
func (c *Coupon) Valid(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if c.StartDate != nil && now.Before(*c.StartDate) {
		return false
	}
	if c.EndDate != nil && now.After(*c.EndDate) {
		return false
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return false
	}
	return true
}

// DiscountFor computes the discount the coupon grants on a subtotal. It fails
// closed: an invalid coupon or a subtotal under the minimum purchase yields
// zero. Percentage discounts are capped at MaxDiscountAmount when set, and the
// result never exceeds the subtotal or drops below zero.
func (c *Coupon) DiscountFor(subtotal decimal.Decimal, now time.Time) decimal.Decimal {
	if !c.Valid(now) {
		return decimal.Zero
	}
	if c.MinPurchaseAmount.IsPositive() && subtotal.LessThan(c.MinPurchaseAmount) {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch c.DiscountType {
	case DiscountPercentage:
		discount = subtotal.Mul(c.DiscountValue).Div(oneHundred)
		if c.MaxDiscountAmount.IsPositive() && discount.GreaterThan(c.MaxDiscountAmount) {
			discount = c.MaxDiscountAmount
		}
	case DiscountFixedAmount:
		discount = c.DiscountValue
	default:
		return decimal.Zero
	}

	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	if discount.IsNegative() {
		return decimal.Zero
	}
	return discount.Round(2)
}
