package customer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"football-kit-shop/internal/loyalty"
)

// User carries the account fields this core consumes. Authentication lives in
// a separate service; TotalSpent is maintained externally when orders complete.
type User struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"size:128;not null"`
	Email       string          `gorm:"size:255;uniqueIndex;not null"`
	Phone       string          `gorm:"size:32"`
	LoyaltyTier loyalty.Tier    `gorm:"size:16;not null;default:'none'"`
	TotalSpent  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Addresses []Address `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// Tier recomputes the loyalty tier from cumulative spend.
func (u *User) Tier() loyalty.Tier {
	return loyalty.TierFor(u.TotalSpent)
}

// Province is a shipping region with a flat delivery fee.
type Province struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"size:128;uniqueIndex;not null"`
	ShippingFee decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
}

// Address is a saved delivery destination. Orders copy its fields at placement
// time, so later edits never touch existing orders.
type Address struct {
	ID            uint   `gorm:"primaryKey"`
	UserID        uint   `gorm:"index;not null"`
	ProvinceID    *uint  `gorm:"index"`
	Label         string `gorm:"size:64"`
	RecipientName string `gorm:"size:128;not null"`
	Phone         string `gorm:"size:32;not null"`
	StreetAddress string `gorm:"size:255;not null"`
	Village       string `gorm:"size:128"`
	District      string `gorm:"size:128"`
	Notes         string `gorm:"size:500"`
	IsDefault     bool   `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Province *Province `gorm:"foreignKey:ProvinceID"`
}

// FullAddress joins the populated address parts into one line.
func (a *Address) FullAddress() string {
	parts := make([]string, 0, 4)
	for _, part := range []string{a.StreetAddress, a.Village, a.District} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	if a.Province != nil && a.Province.Name != "" {
		parts = append(parts, a.Province.Name)
	}
	return strings.Join(parts, ", ")
}
