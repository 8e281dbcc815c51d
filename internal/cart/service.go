package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"football-kit-shop/internal/catalog"
)

// ErrOutOfStock is returned when a requested quantity exceeds a variant's
// available stock or the variant is inactive.
var ErrOutOfStock = errors.New("variant out of stock")

// ErrInvalidQuantity is returned for quantities below one.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// GuestCartTTL is how long a guest cart stays usable after creation.
const GuestCartTTL = 7 * 24 * time.Hour

// Service manages carts and their line items.
type Service struct {
	db *gorm.DB
}

// NewService wraps a gorm DB in a cart service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateGuestCart starts an anonymous cart with a fresh session id and expiry.
func (s *Service) CreateGuestCart(ctx context.Context) (*Cart, error) {
	sessionID := uuid.NewString()
	expires := time.Now().Add(GuestCartTTL)
	c := &Cart{SessionID: &sessionID, ExpiresAt: &expires}
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, fmt.Errorf("create guest cart: %w", err)
	}
	return c, nil
}

// CartForUser returns the user's cart, creating an empty one on first use.
func (s *Service) CartForUser(ctx context.Context, userID uint) (*Cart, error) {
	var c Cart
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND merged_at IS NULL", userID).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c = Cart{UserID: &userID}
		if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
			return nil, fmt.Errorf("create user cart: %w", err)
		}
		return &c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user cart: %w", err)
	}
	return &c, nil
}

// Get loads a cart with its items and their variants.
func (s *Service) Get(ctx context.Context, cartID uint) (*Cart, error) {
	var c Cart
	err := s.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Variant").
		Preload("Items.Variant.Product").
		First(&c, cartID).Error
	if err != nil {
		return nil, fmt.Errorf("load cart %d: %w", cartID, err)
	}
	return &c, nil
}

// AddItem puts a variant in the cart, or raises the quantity of an existing
// line. Either way the line's price snapshot is refreshed to the variant's
// current final price.
func (s *Service) AddItem(ctx context.Context, cartID, variantID uint, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var variant catalog.ProductVariant
		if err := tx.Preload("Product").First(&variant, variantID).Error; err != nil {
			return fmt.Errorf("load variant %d: %w", variantID, err)
		}
		if !variant.IsActive || variant.StockQuantity < quantity {
			return fmt.Errorf("variant %d: %w", variantID, ErrOutOfStock)
		}
		price := variant.FinalPrice(variant.Product.BasePrice)

		var item Item
		err := tx.Where("cart_id = ? AND product_variant_id = ?", cartID, variantID).First(&item).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = Item{
				CartID:           cartID,
				ProductVariantID: variantID,
				Quantity:         quantity,
				PriceSnapshot:    price,
			}
			return tx.Create(&item).Error
		case err != nil:
			return err
		}

		newQuantity := item.Quantity + quantity
		if variant.StockQuantity < newQuantity {
			return fmt.Errorf("variant %d: %w", variantID, ErrOutOfStock)
		}
		return tx.Model(&item).Updates(map[string]any{
			"quantity":       newQuantity,
			"price_snapshot": price,
		}).Error
	})
}

// UpdateQuantity sets an existing line to a new quantity after re-checking
// stock. The price snapshot is left alone.
func (s *Service) UpdateQuantity(ctx context.Context, cartID, variantID uint, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var variant catalog.ProductVariant
		if err := tx.First(&variant, variantID).Error; err != nil {
			return fmt.Errorf("load variant %d: %w", variantID, err)
		}
		if !variant.IsActive || variant.StockQuantity < quantity {
			return fmt.Errorf("variant %d: %w", variantID, ErrOutOfStock)
		}
		return tx.Model(&Item{}).
			Where("cart_id = ? AND product_variant_id = ?", cartID, variantID).
			Update("quantity", quantity).Error
	})
}

// RemoveItem deletes a line from the cart.
func (s *Service) RemoveItem(ctx context.Context, cartID, variantID uint) error {
	return s.db.WithContext(ctx).
		Where("cart_id = ? AND product_variant_id = ?", cartID, variantID).
		Delete(&Item{}).Error
}

// Merge folds a guest cart into a user cart after login: lines are unioned by
// variant with quantities summed and capped at available stock, and the guest
// cart is stamped merged rather than deleted.
func (s *Service) Merge(ctx context.Context, guestCartID, userCartID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var guestItems []Item
		if err := tx.Where("cart_id = ?", guestCartID).Find(&guestItems).Error; err != nil {
			return err
		}

		for _, gi := range guestItems {
			var variant catalog.ProductVariant
			if err := tx.First(&variant, gi.ProductVariantID).Error; err != nil {
				return fmt.Errorf("load variant %d: %w", gi.ProductVariantID, err)
			}

			var existing Item
			err := tx.Where("cart_id = ? AND product_variant_id = ?", userCartID, gi.ProductVariantID).
				First(&existing).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				quantity := min(gi.Quantity, variant.StockQuantity)
				if quantity < 1 {
					continue
				}
				item := Item{
					CartID:           userCartID,
					ProductVariantID: gi.ProductVariantID,
					Quantity:         quantity,
					PriceSnapshot:    gi.PriceSnapshot,
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
			case err != nil:
				return err
			default:
				quantity := min(existing.Quantity+gi.Quantity, variant.StockQuantity)
				if quantity != existing.Quantity {
					if err := tx.Model(&existing).Update("quantity", quantity).Error; err != nil {
						return err
					}
				}
			}
		}

		return tx.Model(&Cart{}).
			Where("id = ?", guestCartID).
			Update("merged_at", time.Now()).Error
	})
}
