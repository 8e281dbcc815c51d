package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"gorm.io/gorm"

	"football-kit-shop/internal/catalog"
	"football-kit-shop/internal/db"
	"football-kit-shop/internal/order"
)

func main() {
	var (
		productCount = flag.Int("products", 200, "target number of demo products to seed")
		batchSize    = flag.Int("batch", 100, "batch size for bulk inserts")
		skipSeed     = flag.Bool("skip-seed", false, "skip inserting demo catalog data")
		lowStock     = flag.Bool("low-stock", true, "print the low stock report")
		salesReport  = flag.Bool("sales", true, "print the order status summary")
	)
	flag.Parse()

	cfg := db.FromEnv()
	gdb, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("failed to connect to MySQL: %v", err)
	}

	if err := db.EnsureSchema(gdb); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	ctx := context.Background()

	if !*skipSeed {
		start := time.Now()
		seedCfg := catalog.SeedConfig{
			Products:  *productCount,
			BatchSize: *batchSize,
		}
		if err := catalog.SeedCatalog(ctx, gdb, seedCfg); err != nil {
			log.Fatalf("failed to seed catalog: %v", err)
		}
		log.Printf("catalog ready (products target=%d) in %s", *productCount, time.Since(start))
	} else {
		log.Printf("skip-seed enabled; reusing existing data")
	}

	if *lowStock {
		if err := printLowStockReport(ctx, gdb); err != nil {
			log.Fatalf("failed to build low stock report: %v", err)
		}
	}
	if *salesReport {
		if err := printSalesReport(ctx, gdb); err != nil {
			log.Fatalf("failed to build sales report: %v", err)
		}
	}
}

func printLowStockReport(ctx context.Context, gdb *gorm.DB) error {
	store := catalog.NewStore(gdb)
	variants, err := store.LowStockVariants(ctx)
	if err != nil {
		return err
	}

	fmt.Println("Low stock variants")
	table := tablewriter.NewTable(os.Stdout)
	table.Header("SKU", "Product", "Size", "Stock", "Threshold")
	for _, v := range variants {
		productName := ""
		if v.Product != nil {
			productName = v.Product.Name
		}
		table.Append([]string{
			v.SKU,
			productName,
			v.Size,
			fmt.Sprintf("%d", v.StockQuantity),
			fmt.Sprintf("%d", v.LowStockThreshold),
		})
	}
	return table.Render()
}

type statusSummary struct {
	Status string
	Orders int64
	Total  float64
}

func printSalesReport(ctx context.Context, gdb *gorm.DB) error {
	var rows []statusSummary
	err := gdb.WithContext(ctx).
		Model(&order.Order{}).
		Select("status, COUNT(*) AS orders, COALESCE(SUM(total), 0) AS total").
		Group("status").
		Order("status").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	fmt.Println("Orders by status")
	table := tablewriter.NewTable(os.Stdout)
	table.Header("Status", "Orders", "Total")
	for _, r := range rows {
		table.Append([]string{r.Status, fmt.Sprintf("%d", r.Orders), fmt.Sprintf("%.2f", r.Total)})
	}
	return table.Render()
}
