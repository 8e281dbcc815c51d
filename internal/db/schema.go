package db

import (
	"gorm.io/gorm"

	"football-kit-shop/internal/cart"
	"football-kit-shop/internal/catalog"
	"football-kit-shop/internal/customer"
	"football-kit-shop/internal/order"
	"football-kit-shop/internal/pricing"
)

// EnsureSchema applies the required database schema.
func EnsureSchema(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&catalog.Category{},
		&catalog.Brand{},
		&catalog.League{},
		&catalog.Team{},
		&catalog.SurfaceType{},
		&catalog.Product{},
		&catalog.ProductVariant{},
		&catalog.ProductDiscount{},
		&catalog.ProductReview{},
		&catalog.Wishlist{},
		&customer.User{},
		&customer.Province{},
		&customer.Address{},
		&pricing.Coupon{},
		&cart.Cart{},
		&cart.Item{},
		&order.Order{},
		&order.Item{},
		&order.StatusHistory{},
		&order.Sequence{},
	)
}
