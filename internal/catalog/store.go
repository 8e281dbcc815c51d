package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrCategoryInUse is returned when deleting a category that products still reference.
var ErrCategoryInUse = errors.New("category has products and cannot be deleted")

// ErrInvalidRating is returned for review ratings outside 1..5.
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// Store provides catalog persistence on top of a gorm DB.
type Store struct {
	db *gorm.DB
}

// NewStore wraps a gorm DB in a catalog store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CreateProduct inserts a product, deriving a unique slug from the name when
// none is supplied.
func (s *Store) CreateProduct(ctx context.Context, p *Product) error {
	if p.Slug == "" {
		slug, err := s.uniqueSlug(ctx, p.Name)
		if err != nil {
			return err
		}
		p.Slug = slug
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (s *Store) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := Slugify(name)
	candidate := base
	for i := 2; ; i++ {
		var n int64
		if err := s.db.WithContext(ctx).Model(&Product{}).Where("slug = ?", candidate).Count(&n).Error; err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if n == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// ProductBySlug loads a product with its variants and discounts.
func (s *Store) ProductBySlug(ctx context.Context, slug string) (*Product, error) {
	var p Product
	err := s.db.WithContext(ctx).
		Preload("Variants").
		Preload("Discounts").
		Where("slug = ?", slug).
		First(&p).Error
	if err != nil {
		return nil, fmt.Errorf("product by slug %q: %w", slug, err)
	}
	return &p, nil
}

// VariantBySKU loads a single variant with its parent product.
func (s *Store) VariantBySKU(ctx context.Context, sku string) (*ProductVariant, error) {
	var v ProductVariant
	err := s.db.WithContext(ctx).
		Preload("Product").
		Where("sku = ?", sku).
		First(&v).Error
	if err != nil {
		return nil, fmt.Errorf("variant by sku %q: %w", sku, err)
	}
	return &v, nil
}

// ActiveProducts lists active products, optionally restricted to featured ones.
func (s *Store) ActiveProducts(ctx context.Context, featuredOnly bool) ([]Product, error) {
	q := s.db.WithContext(ctx).Preload("Variants").Where("is_active = ?", true)
	if featuredOnly {
		q = q.Where("is_featured = ?", true)
	}
	var products []Product
	if err := q.Order("name ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// IncrementViewCount bumps a product's view counter without racing other readers.
func (s *Store) IncrementViewCount(ctx context.Context, productID uint) error {
	return s.db.WithContext(ctx).
		Model(&Product{}).
		Where("id = ?", productID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// DeleteCategory refuses to delete a category while products reference it.
func (s *Store) DeleteCategory(ctx context.Context, categoryID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&Product{}).Where("category_id = ?", categoryID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrCategoryInUse
		}
		return tx.Delete(&Category{}, categoryID).Error
	})
}

// DeleteBrand detaches the brand from its products, then removes it.
func (s *Store) DeleteBrand(ctx context.Context, brandID uint) error {
	return s.detachAndDelete(ctx, "brand_id", brandID, &Brand{})
}

// DeleteLeague detaches the league from products and teams, then removes it.
func (s *Store) DeleteLeague(ctx context.Context, leagueID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Product{}).Where("league_id = ?", leagueID).Update("league_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&Team{}).Where("league_id = ?", leagueID).Update("league_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&League{}, leagueID).Error
	})
}

// DeleteTeam detaches the team from its products, then removes it.
func (s *Store) DeleteTeam(ctx context.Context, teamID uint) error {
	return s.detachAndDelete(ctx, "team_id", teamID, &Team{})
}

// DeleteSurfaceType detaches the surface type from its products, then removes it.
func (s *Store) DeleteSurfaceType(ctx context.Context, surfaceTypeID uint) error {
	return s.detachAndDelete(ctx, "surface_type_id", surfaceTypeID, &SurfaceType{})
}

func (s *Store) detachAndDelete(ctx context.Context, column string, id uint, model any) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Product{}).Where(column+" = ?", id).Update(column, nil).Error; err != nil {
			return err
		}
		return tx.Delete(model, id).Error
	})
}

// AddReview stores a product review. Reviews tied to an order item count as
// verified purchases and start unapproved.
func (s *Store) AddReview(ctx context.Context, r *ProductReview) error {
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	r.IsVerifiedPurchase = r.OrderItemID != nil
	r.IsApproved = false
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("add review: %w", err)
	}
	return nil
}

// ApproveReview marks a review visible.
func (s *Store) ApproveReview(ctx context.Context, reviewID uint) error {
	return s.db.WithContext(ctx).
		Model(&ProductReview{}).
		Where("id = ?", reviewID).
		Update("is_approved", true).Error
}

// MarkReviewHelpful increments a review's helpful counter.
func (s *Store) MarkReviewHelpful(ctx context.Context, reviewID uint) error {
	return s.db.WithContext(ctx).
		Model(&ProductReview{}).
		Where("id = ?", reviewID).
		UpdateColumn("helpful_count", gorm.Expr("helpful_count + 1")).Error
}

// ApprovedReviews lists visible reviews for a product, newest first.
func (s *Store) ApprovedReviews(ctx context.Context, productID uint) ([]ProductReview, error) {
	var reviews []ProductReview
	err := s.db.WithContext(ctx).
		Where("product_id = ? AND is_approved = ?", productID, true).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// AddToWishlist saves a product for a user. Adding the same product twice is a no-op.
func (s *Store) AddToWishlist(ctx context.Context, userID, productID uint) error {
	var existing int64
	if err := s.db.WithContext(ctx).Model(&Wishlist{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&Wishlist{UserID: userID, ProductID: productID}).Error
}

// RemoveFromWishlist deletes a user's saved product entry.
func (s *Store) RemoveFromWishlist(ctx context.Context, userID, productID uint) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&Wishlist{}).Error
}

// LowStockVariants lists active variants at or below their alert threshold.
func (s *Store) LowStockVariants(ctx context.Context) ([]ProductVariant, error) {
	var variants []ProductVariant
	err := s.db.WithContext(ctx).
		Preload("Product").
		Where("is_active = ? AND stock_quantity > 0 AND stock_quantity <= low_stock_threshold", true).
		Order("stock_quantity ASC").
		Find(&variants).Error
	if err != nil {
		return nil, fmt.Errorf("list low stock variants: %w", err)
	}
	return variants, nil
}
