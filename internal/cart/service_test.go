package cart_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"football-kit-shop/internal/cart"
	"football-kit-shop/internal/catalog"
	"football-kit-shop/internal/dbtest"
)

type fixture struct {
	gdb     *gorm.DB
	svc     *cart.Service
	product catalog.Product
	variant catalog.ProductVariant
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb := dbtest.Open(t)

	category := catalog.Category{Name: "Boots", Slug: "boots", IsActive: true}
	require.NoError(t, gdb.Create(&category).Error)

	product := catalog.Product{
		CategoryID: category.ID,
		Name:       "Predator Elite",
		Slug:       "predator-elite",
		BasePrice:  decimal.NewFromInt(100),
		IsActive:   true,
	}
	require.NoError(t, gdb.Create(&product).Error)

	variant := catalog.ProductVariant{
		ProductID:         product.ID,
		SKU:               "PRED-42",
		Size:              "42",
		PriceAdjustment:   decimal.NewFromInt(10),
		StockQuantity:     5,
		LowStockThreshold: 2,
		IsActive:          true,
	}
	require.NoError(t, gdb.Create(&variant).Error)

	return &fixture{gdb: gdb, svc: cart.NewService(gdb), product: product, variant: variant}
}

func (f *fixture) newCart(t *testing.T) *cart.Cart {
	t.Helper()
	userID := uint(1)
	c := cart.Cart{UserID: &userID}
	require.NoError(t, f.gdb.Create(&c).Error)
	return &c
}

func TestAddItemSnapshotsFinalPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.newCart(t)

	require.NoError(t, f.svc.AddItem(ctx, c.ID, f.variant.ID, 2))

	loaded, err := f.svc.Get(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	item := loaded.Items[0]
	assert.Equal(t, 2, item.Quantity)
	// base 100 + adjustment 10
	assert.True(t, item.PriceSnapshot.Equal(decimal.NewFromInt(110)))
	assert.True(t, item.Subtotal().Equal(decimal.NewFromInt(220)))
}

func TestAddItemIncrementsAndRefreshesSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.newCart(t)

	require.NoError(t, f.svc.AddItem(ctx, c.ID, f.variant.ID, 1))

	// Catalog price changes between adds; the snapshot follows the latest add.
	require.NoError(t, f.gdb.Model(&catalog.Product{}).
		Where("id = ?", f.product.ID).
		Update("base_price", decimal.NewFromInt(120)).Error)

	require.NoError(t, f.svc.AddItem(ctx, c.ID, f.variant.ID, 2))

	loaded, err := f.svc.Get(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, 3, loaded.Items[0].Quantity)
	assert.True(t, loaded.Items[0].PriceSnapshot.Equal(decimal.NewFromInt(130)))
}

func TestAddItemStockChecks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.newCart(t)

	assert.ErrorIs(t, f.svc.AddItem(ctx, c.ID, f.variant.ID, 6), cart.ErrOutOfStock)
	assert.ErrorIs(t, f.svc.AddItem(ctx, c.ID, f.variant.ID, 0), cart.ErrInvalidQuantity)

	require.NoError(t, f.svc.AddItem(ctx, c.ID, f.variant.ID, 3))
	// 3 in cart + 3 more would exceed the 5 in stock.
	assert.ErrorIs(t, f.svc.AddItem(ctx, c.ID, f.variant.ID, 3), cart.ErrOutOfStock)

	require.NoError(t, f.gdb.Model(&catalog.ProductVariant{}).
		Where("id = ?", f.variant.ID).
		Update("is_active", false).Error)
	assert.ErrorIs(t, f.svc.AddItem(ctx, c.ID, f.variant.ID, 1), cart.ErrOutOfStock)
}

func TestUpdateQuantityRechecksStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.newCart(t)

	require.NoError(t, f.svc.AddItem(ctx, c.ID, f.variant.ID, 1))

	assert.ErrorIs(t, f.svc.UpdateQuantity(ctx, c.ID, f.variant.ID, 9), cart.ErrOutOfStock)
	assert.ErrorIs(t, f.svc.UpdateQuantity(ctx, c.ID, f.variant.ID, 0), cart.ErrInvalidQuantity)
	require.NoError(t, f.svc.UpdateQuantity(ctx, c.ID, f.variant.ID, 4))

	loaded, err := f.svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.Items[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.newCart(t)

	require.NoError(t, f.svc.AddItem(ctx, c.ID, f.variant.ID, 1))
	require.NoError(t, f.svc.RemoveItem(ctx, c.ID, f.variant.ID))

	loaded, err := f.svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Items)
}

func TestCartTotals(t *testing.T) {
	c := cart.Cart{Items: []cart.Item{
		{Quantity: 2, PriceSnapshot: decimal.NewFromInt(50)},
		{Quantity: 1, PriceSnapshot: decimal.NewFromInt(30)},
	}}
	assert.True(t, c.Total().Equal(decimal.NewFromInt(130)))
	assert.Equal(t, 3, c.ItemCount())
}

func TestCartExpiry(t *testing.T) {
	now := time.Now()

	var userCart cart.Cart
	assert.False(t, userCart.Expired(now), "a cart without expiry never expires")

	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)
	assert.True(t, (&cart.Cart{ExpiresAt: &past}).Expired(now))
	assert.False(t, (&cart.Cart{ExpiresAt: &future}).Expired(now))
}

func TestCreateGuestCart(t *testing.T) {
	f := newFixture(t)
	c, err := f.svc.CreateGuestCart(context.Background())
	require.NoError(t, err)
	require.NotNil(t, c.SessionID)
	assert.NotEmpty(t, *c.SessionID)
	require.NotNil(t, c.ExpiresAt)
	assert.True(t, c.ExpiresAt.After(time.Now()))
	assert.Nil(t, c.UserID)
}

func TestCartForUserGetOrCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.CartForUser(ctx, 42)
	require.NoError(t, err)
	second, err := f.svc.CartForUser(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestMerge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other := catalog.ProductVariant{
		ProductID:     f.product.ID,
		SKU:           "PRED-43",
		Size:          "43",
		StockQuantity: 10,
		IsActive:      true,
	}
	require.NoError(t, f.gdb.Create(&other).Error)

	guest, err := f.svc.CreateGuestCart(ctx)
	require.NoError(t, err)
	user, err := f.svc.CartForUser(ctx, 7)
	require.NoError(t, err)

	// Overlapping variant in both carts, a second variant only in the guest cart.
	require.NoError(t, f.svc.AddItem(ctx, user.ID, f.variant.ID, 3))
	require.NoError(t, f.svc.AddItem(ctx, guest.ID, f.variant.ID, 4))
	require.NoError(t, f.svc.AddItem(ctx, guest.ID, other.ID, 2))

	require.NoError(t, f.svc.Merge(ctx, guest.ID, user.ID))

	merged, err := f.svc.Get(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, merged.Items, 2)

	byVariant := map[uint]cart.Item{}
	for _, item := range merged.Items {
		byVariant[item.ProductVariantID] = item
	}
	// 3 + 4 capped at the 5 in stock.
	assert.Equal(t, 5, byVariant[f.variant.ID].Quantity)
	assert.Equal(t, 2, byVariant[other.ID].Quantity)

	var guestReloaded cart.Cart
	require.NoError(t, f.gdb.First(&guestReloaded, guest.ID).Error)
	assert.NotNil(t, guestReloaded.MergedAt, "guest cart is stamped merged, not deleted")

	var guestItems int64
	require.NoError(t, f.gdb.Model(&cart.Item{}).Where("cart_id = ?", guest.ID).Count(&guestItems).Error)
	assert.EqualValues(t, 2, guestItems, "guest items stay in place after merge")
}
