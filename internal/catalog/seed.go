package catalog

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedConfig controls how much demo catalog data is inserted.
type SeedConfig struct {
	Products  int
	BatchSize int
}

var (
	seedCategories = []string{"Boots", "Jerseys", "Balls", "Accessories"}
	seedBrands     = []string{"Adidas", "Nike", "Puma", "Mizuno"}
	seedLeagues    = map[string][]string{
		"Premier League": {"Arsenal", "Liverpool", "Manchester City"},
		"La Liga":        {"Barcelona", "Real Madrid"},
		"Serie A":        {"Inter", "Juventus"},
	}
	seedSurfaces = []struct{ Name, Code string }{
		{"Firm Ground", "FG"},
		{"Artificial Turf", "AG"},
		{"Indoor Court", "IC"},
	}
	seedSizes = []string{"XS", "S", "M", "L", "XL", "39", "40", "41", "42", "43"}
)

// SeedCatalog populates taxonomy, products and variants with deterministic
// synthetic data. Re-running against a seeded database is a no-op.
func SeedCatalog(ctx context.Context, db *gorm.DB, cfg SeedConfig) error {
	if cfg.Products <= 0 {
		cfg.Products = 200
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}

	if err := seedTaxonomy(ctx, db); err != nil {
		return err
	}
	return seedProducts(ctx, db, cfg)
}

func seedTaxonomy(ctx context.Context, db *gorm.DB) error {
	var existing int64
	if err := db.WithContext(ctx).Model(&Category{}).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	for i, name := range seedCategories {
		c := Category{Name: name, Slug: Slugify(name), SortOrder: i, IsActive: true}
		if err := db.WithContext(ctx).Create(&c).Error; err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
	}
	for _, name := range seedBrands {
		b := Brand{Name: name, Slug: Slugify(name), IsActive: true}
		if err := db.WithContext(ctx).Create(&b).Error; err != nil {
			return fmt.Errorf("seed brand %q: %w", name, err)
		}
	}
	for leagueName, teams := range seedLeagues {
		l := League{Name: leagueName, Slug: Slugify(leagueName), IsActive: true}
		if err := db.WithContext(ctx).Create(&l).Error; err != nil {
			return fmt.Errorf("seed league %q: %w", leagueName, err)
		}
		for _, teamName := range teams {
			t := Team{LeagueID: &l.ID, Name: teamName, Slug: Slugify(teamName), IsActive: true}
			if err := db.WithContext(ctx).Create(&t).Error; err != nil {
				return fmt.Errorf("seed team %q: %w", teamName, err)
			}
		}
	}
	for _, s := range seedSurfaces {
		st := SurfaceType{Name: s.Name, Slug: Slugify(s.Name), Code: s.Code, IsActive: true}
		if err := db.WithContext(ctx).Create(&st).Error; err != nil {
			return fmt.Errorf("seed surface type %q: %w", s.Name, err)
		}
	}
	return nil
}

func seedProducts(ctx context.Context, db *gorm.DB, cfg SeedConfig) error {
	var existing int64
	if err := db.WithContext(ctx).Model(&Product{}).Count(&existing).Error; err != nil {
		return err
	}
	if int(existing) >= cfg.Products {
		return nil
	}

	var categories []Category
	if err := db.WithContext(ctx).Find(&categories).Error; err != nil {
		return err
	}
	var brands []Brand
	if err := db.WithContext(ctx).Find(&brands).Error; err != nil {
		return err
	}
	var teams []Team
	if err := db.WithContext(ctx).Find(&teams).Error; err != nil {
		return err
	}
	var surfaces []SurfaceType
	if err := db.WithContext(ctx).Find(&surfaces).Error; err != nil {
		return err
	}
	if len(categories) == 0 {
		return fmt.Errorf("no categories to attach products to")
	}

	rnd := rand.New(rand.NewSource(42))
	toCreate := cfg.Products - int(existing)
	start := int(existing)

	batch := make([]Product, 0, cfg.BatchSize)
	for i := 0; i < toCreate; i++ {
		idx := start + i
		category := categories[rnd.Intn(len(categories))]
		name := fmt.Sprintf("%s %s %03d", seedBrands[rnd.Intn(len(seedBrands))], category.Name, idx)

		p := Product{
			CategoryID: category.ID,
			Name:       name,
			Slug:       Slugify(name),
			BasePrice:  decimal.NewFromInt(int64(20 + rnd.Intn(180))),
			IsFeatured: rnd.Float64() < 0.1,
			IsActive:   true,
		}
		if len(brands) > 0 && rnd.Float64() < 0.8 {
			p.BrandID = &brands[rnd.Intn(len(brands))].ID
		}
		if len(teams) > 0 && rnd.Float64() < 0.5 {
			team := teams[rnd.Intn(len(teams))]
			p.TeamID = &team.ID
			p.LeagueID = team.LeagueID
		}
		if len(surfaces) > 0 && rnd.Float64() < 0.4 {
			p.SurfaceTypeID = &surfaces[rnd.Intn(len(surfaces))].ID
		}

		batch = append(batch, p)
		if len(batch) == cfg.BatchSize || i == toCreate-1 {
			if err := db.WithContext(ctx).Create(&batch).Error; err != nil {
				return fmt.Errorf("seed products: %w", err)
			}
			if err := seedVariants(ctx, db, batch, rnd); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	return nil
}

func seedVariants(ctx context.Context, db *gorm.DB, products []Product, rnd *rand.Rand) error {
	variants := make([]ProductVariant, 0, len(products)*3)
	for _, p := range products {
		count := 2 + rnd.Intn(3)
		offset := rnd.Intn(len(seedSizes) - count)
		for j := 0; j < count; j++ {
			size := seedSizes[offset+j]
			variants = append(variants, ProductVariant{
				ProductID:         p.ID,
				SKU:               seedSKU(p.Slug, size),
				Size:              size,
				PriceAdjustment:   decimal.NewFromInt(int64(rnd.Intn(11) - 5)),
				StockQuantity:     rnd.Intn(50),
				LowStockThreshold: 5,
				IsActive:          true,
			})
		}
	}
	if len(variants) == 0 {
		return nil
	}
	if err := db.WithContext(ctx).Create(&variants).Error; err != nil {
		return fmt.Errorf("seed variants: %w", err)
	}
	return nil
}

func seedSKU(slug, size string) string {
	token := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("%s-%s-%s", strings.ToUpper(Slugify(size)), token, shortSlug(slug))
}

func shortSlug(slug string) string {
	const limit = 24
	if len(slug) <= limit {
		return slug
	}
	return slug[:limit]
}

// SeedWindowedDiscount attaches a demo discount window to a product.
func SeedWindowedDiscount(ctx context.Context, db *gorm.DB, productID uint, percent int64, days int) error {
	start := time.Now()
	end := start.Add(time.Duration(days) * 24 * time.Hour)
	d := ProductDiscount{
		ProductID:     productID,
		DiscountType:  "percentage",
		DiscountValue: decimal.NewFromInt(percent),
		StartDate:     &start,
		EndDate:       &end,
		IsActive:      true,
	}
	return db.WithContext(ctx).Create(&d).Error
}
