package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"football-kit-shop/internal/cart"
	"football-kit-shop/internal/catalog"
	"football-kit-shop/internal/customer"
	"football-kit-shop/internal/loyalty"
	"football-kit-shop/internal/pricing"
)

// DiscountSourceLoyalty labels discounts that came from the customer's tier
// rather than a coupon code.
const DiscountSourceLoyalty = "loyalty"

var oneHundred = decimal.NewFromInt(100)

// ShippingInfo is the delivery snapshot captured into an order at placement.
type ShippingInfo struct {
	RecipientName string
	Phone         string
	Address       string
	ProvinceID    *uint
	ProvinceName  string
	Fee           decimal.Decimal
}

// ShippingFromAddress builds a placement snapshot from a saved address. Later
// edits to the address leave the order untouched.
func ShippingFromAddress(a *customer.Address) ShippingInfo {
	info := ShippingInfo{
		RecipientName: a.RecipientName,
		Phone:         a.Phone,
		Address:       a.FullAddress(),
		ProvinceID:    a.ProvinceID,
	}
	if a.Province != nil {
		info.ProvinceName = a.Province.Name
		info.Fee = a.Province.ShippingFee
	}
	return info
}

// Engine turns carts into orders and drives order status changes. Every
// mutation runs as a single transaction: partial placement is never observable.
type Engine struct {
	db *gorm.DB
}

// NewEngine wraps a gorm DB in an order engine.
func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// Place converts a cart into an order. Validation failures (empty cart,
// expired cart, insufficient stock, bad coupon) happen before any write and
// leave everything unchanged. The mutation phase creates the order, its items
// and the initial history row, decrements stock and bumps coupon usage in one
// transaction; any failure there rolls the whole placement back and surfaces
// as ErrOrderPlacementFailed.
func (e *Engine) Place(ctx context.Context, cartID uint, shipping ShippingInfo, method PaymentMethod, couponCode string) (*Order, error) {
	now := time.Now()
	var placed *Order

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c cart.Cart
		if err := tx.Preload("Items").Preload("Items.Variant").Preload("Items.Variant.Product").
			First(&c, cartID).Error; err != nil {
			return fmt.Errorf("load cart %d: %w", cartID, err)
		}
		if len(c.Items) == 0 {
			return ErrEmptyCart
		}
		if c.Expired(now) {
			return ErrCartExpired
		}

		for i := range c.Items {
			item := &c.Items[i]
			v := item.Variant
			if v == nil {
				return fmt.Errorf("cart item %d references missing variant %d", item.ID, item.ProductVariantID)
			}
			if !v.IsActive || v.StockQuantity < item.Quantity {
				return &InsufficientStockError{
					VariantID: v.ID,
					SKU:       v.SKU,
					Requested: item.Quantity,
					Available: v.StockQuantity,
				}
			}
		}

		subtotal := c.Total()

		discount := decimal.Zero
		discountSource := ""
		var coupon *pricing.Coupon
		if couponCode != "" {
			coupon = &pricing.Coupon{}
			err := tx.Where("code = ?", couponCode).First(coupon).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("coupon %q: %w", couponCode, pricing.ErrInvalidCoupon)
			}
			if err != nil {
				return fmt.Errorf("load coupon %q: %w", couponCode, err)
			}
			if !coupon.Valid(now) {
				return fmt.Errorf("coupon %q: %w", couponCode, pricing.ErrInvalidCoupon)
			}
			discount = coupon.DiscountFor(subtotal, now)
			if discount.IsPositive() {
				discountSource = coupon.Code
			}
		} else if c.UserID != nil {
			// No coupon supplied: the customer's loyalty tier discount applies
			// automatically. The two discount paths never combine.
			var u customer.User
			if err := tx.First(&u, *c.UserID).Error; err == nil {
				if pct := loyalty.TierFor(u.TotalSpent).DiscountPercent(); pct > 0 {
					discount = subtotal.Mul(decimal.NewFromInt(pct)).Div(oneHundred).Round(2)
					discountSource = DiscountSourceLoyalty
				}
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("load user %d: %w", *c.UserID, err)
			}
		}

		if discount.GreaterThan(subtotal) {
			discount = subtotal
		}
		total := subtotal.Sub(discount)

		number, err := nextOrderNumber(tx, now.Year())
		if err != nil {
			return fmt.Errorf("%w: %w", ErrOrderPlacementFailed, err)
		}

		o := Order{
			OrderNumber:     number,
			UserID:          c.UserID,
			RecipientName:   shipping.RecipientName,
			RecipientPhone:  shipping.Phone,
			ShippingAddress: shipping.Address,
			ProvinceID:      shipping.ProvinceID,
			ProvinceName:    shipping.ProvinceName,
			ShippingFee:     shipping.Fee,
			PaymentMethod:   method,
			PaymentStatus:   PaymentPending,
			Subtotal:        subtotal,
			DiscountAmount:  discount,
			DiscountSource:  discountSource,
			Total:           total,
			Status:          StatusPending,
		}
		if err := tx.Create(&o).Error; err != nil {
			return fmt.Errorf("%w: create order: %w", ErrOrderPlacementFailed, err)
		}

		for i := range c.Items {
			item := &c.Items[i]
			v := item.Variant
			productID := v.ProductID
			variantID := v.ID
			line := Item{
				OrderID:          o.ID,
				ProductID:        &productID,
				ProductVariantID: &variantID,
				ProductName:      v.Product.Name,
				VariantSKU:       v.SKU,
				VariantSize:      v.Size,
				UnitPrice:        item.PriceSnapshot,
				Quantity:         item.Quantity,
				Subtotal:         item.Subtotal(),
			}
			if err := tx.Create(&line).Error; err != nil {
				return fmt.Errorf("%w: create order item: %w", ErrOrderPlacementFailed, err)
			}
			o.Items = append(o.Items, line)

			// The authoritative stock check: the guard re-evaluates inside
			// this transaction, so a concurrent placement cannot race both
			// decrements past zero.
			res := tx.Model(&catalog.ProductVariant{}).
				Where("id = ? AND stock_quantity >= ?", v.ID, item.Quantity).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity))
			if res.Error != nil {
				return fmt.Errorf("%w: decrement stock: %w", ErrOrderPlacementFailed, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: %w", ErrOrderPlacementFailed, &InsufficientStockError{
					VariantID: v.ID,
					SKU:       v.SKU,
					Requested: item.Quantity,
					Available: v.StockQuantity,
				})
			}
		}

		history := StatusHistory{OrderID: o.ID, Status: StatusPending, Notes: "Order placed"}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("%w: create status history: %w", ErrOrderPlacementFailed, err)
		}
		o.History = append(o.History, history)

		if coupon != nil && discount.IsPositive() {
			res := tx.Model(&pricing.Coupon{}).
				Where("id = ? AND (usage_limit IS NULL OR used_count < usage_limit)", coupon.ID).
				UpdateColumn("used_count", gorm.Expr("used_count + 1"))
			if res.Error != nil {
				return fmt.Errorf("%w: increment coupon usage: %w", ErrOrderPlacementFailed, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: coupon %q: %w", ErrOrderPlacementFailed, coupon.Code, pricing.ErrInvalidCoupon)
			}
		}

		if err := tx.Where("cart_id = ?", cartID).Delete(&cart.Item{}).Error; err != nil {
			return fmt.Errorf("%w: clear cart: %w", ErrOrderPlacementFailed, err)
		}

		placed = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

// nextOrderNumber bumps the per-year counter row and formats the order number.
// The first placement of a year creates the row; a racing creator loses on the
// primary key and retries the update.
func nextOrderNumber(tx *gorm.DB, year int) (string, error) {
	bump := func() (int64, error) {
		res := tx.Model(&Sequence{}).
			Where("year = ?", year).
			UpdateColumn("last_value", gorm.Expr("last_value + 1"))
		if res.Error != nil {
			return 0, res.Error
		}
		if res.RowsAffected == 0 {
			return 0, gorm.ErrRecordNotFound
		}
		var seq Sequence
		if err := tx.Where("year = ?", year).First(&seq).Error; err != nil {
			return 0, err
		}
		return seq.LastValue, nil
	}

	value, err := bump()
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := tx.Create(&Sequence{Year: year, LastValue: 1}).Error; err != nil {
			// Lost the creation race; the row exists now.
			value, err = bump()
			if err != nil {
				return "", err
			}
			return formatOrderNumber(year, value), nil
		}
		return formatOrderNumber(year, 1), nil
	}
	if err != nil {
		return "", err
	}
	return formatOrderNumber(year, value), nil
}

func formatOrderNumber(year int, seq int64) string {
	return fmt.Sprintf("ORD-%d-%05d", year, seq)
}

// Transition moves an order to a new status. Forward skips are allowed,
// backward moves and any move out of a terminal state fail with
// InvalidTransitionError. Cancelling an order that has not shipped restocks
// its items in the same transaction.
func (e *Engine) Transition(ctx context.Context, orderID uint, to Status, actor *uint, notes string) error {
	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o Order
		if err := tx.Preload("Items").First(&o, orderID).Error; err != nil {
			return fmt.Errorf("load order %d: %w", orderID, err)
		}
		if !CanTransition(o.Status, to) {
			return &InvalidTransitionError{From: o.Status, To: to}
		}

		now := time.Now()
		updates := map[string]any{"status": to}
		switch to {
		case StatusConfirmed:
			updates["confirmed_at"] = now
		case StatusShipped:
			updates["shipped_at"] = now
		case StatusDelivered:
			updates["delivered_at"] = now
		}

		if to == StatusCancelled && o.Status != StatusShipped {
			for i := range o.Items {
				item := &o.Items[i]
				if item.ProductVariantID == nil {
					continue
				}
				err := tx.Model(&catalog.ProductVariant{}).
					Where("id = ?", *item.ProductVariantID).
					UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", item.Quantity)).Error
				if err != nil {
					return fmt.Errorf("restock variant %d: %w", *item.ProductVariantID, err)
				}
			}
		}

		if err := tx.Model(&o).Updates(updates).Error; err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		history := StatusHistory{OrderID: o.ID, Status: to, Notes: notes, ChangedBy: actor}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("append status history: %w", err)
		}
		return nil
	})
}

// UpdatePaymentStatus records a payment settling or failing.
func (e *Engine) UpdatePaymentStatus(ctx context.Context, orderID uint, status PaymentStatus) error {
	switch status {
	case PaymentPending, PaymentPaid, PaymentFailed:
	default:
		return fmt.Errorf("unknown payment status %q", status)
	}
	res := e.db.WithContext(ctx).
		Model(&Order{}).
		Where("id = ?", orderID).
		Update("payment_status", status)
	if res.Error != nil {
		return fmt.Errorf("update payment status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %d: %w", orderID, gorm.ErrRecordNotFound)
	}
	return nil
}

// ByNumber loads an order with its items and full status history.
func (e *Engine) ByNumber(ctx context.Context, number string) (*Order, error) {
	var o Order
	err := e.db.WithContext(ctx).
		Preload("Items").
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		Where("order_number = ?", number).
		First(&o).Error
	if err != nil {
		return nil, fmt.Errorf("order %q: %w", number, err)
	}
	return &o, nil
}

// HistoryFor returns the append-only status log for an order, oldest first.
func (e *Engine) HistoryFor(ctx context.Context, orderID uint) ([]StatusHistory, error) {
	var entries []StatusHistory
	err := e.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("order %d history: %w", orderID, err)
	}
	return entries, nil
}
