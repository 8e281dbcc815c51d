package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups products and blocks deletion while products still reference it.
type Category struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:128;not null"`
	Slug        string `gorm:"size:160;uniqueIndex;not null"`
	Description string `gorm:"size:500"`
	SortOrder   int    `gorm:"not null;default:0"`
	IsActive    bool   `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Brand is an optional taxonomy reference for products.
type Brand struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:128;not null"`
	Slug      string `gorm:"size:160;uniqueIndex;not null"`
	IsActive  bool   `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// League is an optional taxonomy reference for products; teams belong to a league.
type League struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:128;not null"`
	Slug      string `gorm:"size:160;uniqueIndex;not null"`
	IsActive  bool   `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Teams []Team `gorm:"foreignKey:LeagueID;constraint:OnDelete:SET NULL"`
}

// Team is an optional taxonomy reference for products.
type Team struct {
	ID        uint   `gorm:"primaryKey"`
	LeagueID  *uint  `gorm:"index"`
	Name      string `gorm:"size:128;not null"`
	Slug      string `gorm:"size:160;uniqueIndex;not null"`
	IsActive  bool   `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SurfaceType classifies the playing surface a product is made for (firm ground, turf, indoor).
type SurfaceType struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:128;not null"`
	Slug        string `gorm:"size:160;uniqueIndex;not null"`
	Code        string `gorm:"size:16"`
	Description string `gorm:"size:500"`
	IsActive    bool   `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Product is a sellable catalog entry. Purchasable units are its variants.
type Product struct {
	ID            uint            `gorm:"primaryKey"`
	CategoryID    uint            `gorm:"index;not null"`
	BrandID       *uint           `gorm:"index"`
	LeagueID      *uint           `gorm:"index"`
	TeamID        *uint           `gorm:"index"`
	SurfaceTypeID *uint           `gorm:"index"`
	Name          string          `gorm:"size:255;not null"`
	Slug          string          `gorm:"size:280;uniqueIndex;not null"`
	Description   string          `gorm:"size:2000"`
	BasePrice     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	IsFeatured    bool            `gorm:"not null;default:false"`
	IsActive      bool            `gorm:"not null"`
	ViewCount     uint            `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Category  Category
	Variants  []ProductVariant  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Discounts []ProductDiscount `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Reviews   []ProductReview   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// ProductVariant is a size/SKU level unit with its own stock and price adjustment.
type ProductVariant struct {
	ID                uint            `gorm:"primaryKey"`
	ProductID         uint            `gorm:"not null;uniqueIndex:idx_variants_product_size"`
	SKU               string          `gorm:"size:64;uniqueIndex;not null"`
	Size              string          `gorm:"size:32;not null;uniqueIndex:idx_variants_product_size"`
	PriceAdjustment   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	StockQuantity     int             `gorm:"not null;default:0"`
	LowStockThreshold int             `gorm:"not null;default:5"`
	IsActive          bool            `gorm:"not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

// FinalPrice is the product base price plus this variant's adjustment.
// No floor is enforced; a large negative adjustment is a data-entry problem.
func (v *ProductVariant) FinalPrice(basePrice decimal.Decimal) decimal.Decimal {
	return basePrice.Add(v.PriceAdjustment)
}

// InStock reports whether the variant can currently be sold at all.
func (v *ProductVariant) InStock() bool {
	return v.StockQuantity > 0 && v.IsActive
}

// LowStock reports whether remaining stock sits at or below the alert threshold.
func (v *ProductVariant) LowStock() bool {
	return v.StockQuantity > 0 && v.StockQuantity <= v.LowStockThreshold
}

// ProductDiscount is a time-windowed promotional price rule used for catalog
// display. Checkout discounts come from coupons and loyalty tiers, not from here.
type ProductDiscount struct {
	ID            uint            `gorm:"primaryKey"`
	ProductID     uint            `gorm:"index;not null"`
	DiscountType  string          `gorm:"size:16;not null"`
	DiscountValue decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StartDate     *time.Time
	EndDate       *time.Time
	IsActive      bool `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ActiveAt reports whether the discount window covers the given moment.
func (d *ProductDiscount) ActiveAt(now time.Time) bool {
	if !d.IsActive {
		return false
	}
	if d.StartDate != nil && now.Before(*d.StartDate) {
		return false
	}
	if d.EndDate != nil && now.After(*d.EndDate) {
		return false
	}
	return true
}

// ProductReview is a customer rating with optional verified-purchase linkage.
type ProductReview struct {
	ID                 uint   `gorm:"primaryKey"`
	ProductID          uint   `gorm:"index;not null"`
	UserID             uint   `gorm:"index;not null"`
	OrderItemID        *uint  `gorm:"index"`
	Rating             int    `gorm:"not null"`
	Title              string `gorm:"size:255"`
	Comment            string `gorm:"size:2000"`
	IsVerifiedPurchase bool   `gorm:"not null;default:false"`
	IsApproved         bool   `gorm:"not null;default:false"`
	HelpfulCount       uint   `gorm:"not null;default:0"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Wishlist links a user to a product they saved for later.
type Wishlist struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_wishlists_user_product"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_wishlists_user_product"`
	CreatedAt time.Time
}
