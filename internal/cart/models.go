package cart

import (
	"time"

	"github.com/shopspring/decimal"

	"football-kit-shop/internal/catalog"
)

// Cart holds a shopper's pending line items. Guest carts carry a session id
// and an expiry; user carts normally carry neither.
type Cart struct {
	ID        uint    `gorm:"primaryKey"`
	UserID    *uint   `gorm:"index"`
	SessionID *string `gorm:"size:64;index"`
	MergedAt  *time.Time
	ExpiresAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []Item `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// Expired reports whether the cart passed its expiry. Carts without an expiry
// never expire.
func (c *Cart) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}

// Total sums the loaded line subtotals.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].Subtotal())
	}
	return total
}

// ItemCount sums the loaded line quantities.
func (c *Cart) ItemCount() int {
	n := 0
	for i := range c.Items {
		n += c.Items[i].Quantity
	}
	return n
}

// Item is one cart line. PriceSnapshot is the variant's final price at the
// moment the line was added or last updated, deliberately insulated from later
// catalog price changes.
type Item struct {
	ID               uint            `gorm:"primaryKey"`
	CartID           uint            `gorm:"not null;uniqueIndex:idx_cart_items_cart_variant"`
	ProductVariantID uint            `gorm:"not null;uniqueIndex:idx_cart_items_cart_variant"`
	Quantity         int             `gorm:"not null"`
	PriceSnapshot    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Variant *catalog.ProductVariant `gorm:"foreignKey:ProductVariantID"`
}

// TableName keeps cart lines in their own table; the default "items" would
// collide with the order package's Item.
func (Item) TableName() string { return "cart_items" }

// Subtotal is snapshot price times quantity.
func (i *Item) Subtotal() decimal.Decimal {
	return i.PriceSnapshot.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
