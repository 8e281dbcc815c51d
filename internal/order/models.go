package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how the customer pays for an order.
type PaymentMethod string

const (
	PaymentCOD  PaymentMethod = "cod"
	PaymentKHQR PaymentMethod = "khqr"
)

// PaymentStatus tracks whether payment has settled.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Order is an immutable record of a completed checkout. Shipping fields are
// snapshots copied from the customer's address at placement time.
type Order struct {
	ID              uint            `gorm:"primaryKey"`
	OrderNumber     string          `gorm:"size:32;uniqueIndex;not null"`
	UserID          *uint           `gorm:"index"`
	RecipientName   string          `gorm:"size:128;not null"`
	RecipientPhone  string          `gorm:"size:32;not null"`
	ShippingAddress string          `gorm:"size:500;not null"`
	ProvinceID      *uint           `gorm:"index"`
	ProvinceName    string          `gorm:"size:128"`
	ShippingFee     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	PaymentMethod   PaymentMethod   `gorm:"size:16;not null"`
	PaymentStatus   PaymentStatus   `gorm:"size:16;not null;default:'pending'"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	DiscountSource  string          `gorm:"size:64"`
	Total           decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status          Status          `gorm:"size:16;index;not null;default:'pending'"`
	ConfirmedAt     *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Items   []Item          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History []StatusHistory `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// Paid reports whether payment has settled.
func (o *Order) Paid() bool {
	return o.PaymentStatus == PaymentPaid
}

// Item is a purchase line frozen at placement time, independent of later
// product or variant mutation.
type Item struct {
	ID               uint            `gorm:"primaryKey"`
	OrderID          uint            `gorm:"index;not null"`
	ProductID        *uint           `gorm:"index"`
	ProductVariantID *uint           `gorm:"index"`
	ProductName      string          `gorm:"size:255;not null"`
	VariantSKU       string          `gorm:"size:64;not null"`
	VariantSize      string          `gorm:"size:32"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity         int             `gorm:"not null"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt        time.Time
}

// TableName keeps order lines in their own table; the default "items" would
// collide with the cart package's Item.
func (Item) TableName() string { return "order_items" }

// StatusHistory is an append-only log entry; rows are never updated or deleted.
type StatusHistory struct {
	ID        uint   `gorm:"primaryKey"`
	OrderID   uint   `gorm:"index;not null"`
	Status    Status `gorm:"size:16;not null"`
	Notes     string `gorm:"size:500"`
	ChangedBy *uint  `gorm:"index"`
	CreatedAt time.Time
}

// Sequence is the per-year order number counter, bumped inside the placement
// transaction so concurrent checkouts never mint the same number.
type Sequence struct {
	Year      int   `gorm:"primaryKey;autoIncrement:false"`
	LastValue int64 `gorm:"not null"`
}
