package main

import (
	"errors"

	"github.com/kasuwa-shop/internal/config"
	"github.com/kasuwa-shop/internal/logger"
	"github.com/kasuwa-shop/internal/models"
	"github.com/kasuwa-shop/internal/repository"
	"github.com/kasuwa-shop/internal/service"

	"github.com/shopspring/decimal"
)

type seedVariant struct {
	Name       string
	Value      string
	Adjustment string
	Stock      int
}

type seedProduct struct {
	Category    string
	Name        string
	Description string
	Price       string
	Weight      string
	Stock       int
	Images      []string
	Variants    []seedVariant
}

type seedCategory struct {
	Name   string
	Slug   string
	Parent string
}

var seedCategories = []seedCategory{
	{Name: "Fashion", Slug: "fashion"},
	{Name: "Men's Clothing", Slug: "mens-clothing", Parent: "fashion"},
	{Name: "Women's Clothing", Slug: "womens-clothing", Parent: "fashion"},
	{Name: "Electronics", Slug: "electronics"},
	{Name: "Phones & Tablets", Slug: "phones-and-tablets", Parent: "electronics"},
	{Name: "Groceries", Slug: "groceries"},
}

var seedProducts = []seedProduct{
	{
		Category:    "mens-clothing",
		Name:        "Agbada Classic",
		Description: "Hand-embroidered three-piece agbada.",
		Price:       "45000.00",
		Weight:      "1.20",
		Stock:       15,
		Images: []string{
			"https://cdn.kasuwa.local/products/agbada-classic-front.jpg",
			"https://cdn.kasuwa.local/products/agbada-classic-back.jpg",
		},
		Variants: []seedVariant{
			{Name: "Size", Value: "M", Adjustment: "0", Stock: 5},
			{Name: "Size", Value: "L", Adjustment: "2500.00", Stock: 6},
			{Name: "Size", Value: "XL", Adjustment: "5000.00", Stock: 4},
		},
	},
	{
		Category:    "womens-clothing",
		Name:        "Ankara Wrap Dress",
		Description: "Cotton wax print wrap dress.",
		Price:       "18500.00",
		Weight:      "0.45",
		Stock:       30,
		Images:      []string{"https://cdn.kasuwa.local/products/ankara-wrap-dress.jpg"},
		Variants: []seedVariant{
			{Name: "Colour", Value: "Blue", Adjustment: "0", Stock: 12},
			{Name: "Colour", Value: "Orange", Adjustment: "0", Stock: 18},
		},
	},
	{
		Category:    "phones-and-tablets",
		Name:        "Tecno Spark 20",
		Description: "6.6\" display, 128GB storage.",
		Price:       "165000.00",
		Weight:      "0.19",
		Stock:       20,
		Images:      []string{"https://cdn.kasuwa.local/products/tecno-spark-20.jpg"},
		Variants: []seedVariant{
			{Name: "Storage", Value: "128GB", Adjustment: "0", Stock: 12},
			{Name: "Storage", Value: "256GB", Adjustment: "25000.00", Stock: 8},
		},
	},
	{
		Category:    "groceries",
		Name:        "Ofada Rice 5kg",
		Description: "Locally grown ofada rice.",
		Price:       "9800.00",
		Weight:      "5.00",
		Stock:       100,
	},
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, false); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	db := models.DB
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	categories := service.NewCategoryService(categoryRepo, productRepo)
	products := service.NewProductService(productRepo, categoryRepo, orderRepo, 0)
	variants := service.NewProductVariantService(repository.NewProductVariantRepository(db), productRepo, orderRepo)
	images := service.NewProductImageService(repository.NewProductImageRepository(db), productRepo)

	categoryIDs := make(map[string]uint, len(seedCategories))
	for _, item := range seedCategories {
		existing, err := categories.GetBySlug(item.Slug)
		if err == nil {
			categoryIDs[item.Slug] = existing.ID
			logger.Infow("seed_category_exists", "slug", item.Slug)
			continue
		}
		if !errors.Is(err, service.ErrCategoryNotFound) {
			stdLog.Fatalf("Failed to load category %s: %v", item.Slug, err)
		}
		input := service.CategoryInput{Name: item.Name, Slug: item.Slug}
		if item.Parent != "" {
			parentID, ok := categoryIDs[item.Parent]
			if !ok {
				stdLog.Fatalf("Parent category %s must be seeded before %s", item.Parent, item.Slug)
			}
			input.ParentID = &parentID
		}
		created, err := categories.Create(input)
		if err != nil {
			stdLog.Fatalf("Failed to create category %s: %v", item.Slug, err)
		}
		categoryIDs[item.Slug] = created.ID
		logger.Infow("seed_category_created", "slug", created.Slug, "id", created.ID)
	}

	for _, item := range seedProducts {
		name := item.Name
		existing, err := productRepo.GetBySlug(service.SlugFor(name), false)
		if err != nil {
			stdLog.Fatalf("Failed to load product %s: %v", name, err)
		}
		if existing != nil {
			logger.Infow("seed_product_exists", "slug", existing.Slug)
			continue
		}

		product, err := products.Create(service.ProductInput{
			CategoryID:    categoryIDs[item.Category],
			Name:          name,
			Description:   item.Description,
			Price:         decimal.RequireFromString(item.Price),
			Weight:        decimal.RequireFromString(item.Weight),
			StockQuantity: item.Stock,
		})
		if err != nil {
			stdLog.Fatalf("Failed to create product %s: %v", name, err)
		}
		for _, v := range item.Variants {
			if _, err := variants.Create(product.ID, service.VariantInput{
				Name:            v.Name,
				Value:           v.Value,
				PriceAdjustment: decimal.RequireFromString(v.Adjustment),
				StockQuantity:   v.Stock,
			}); err != nil {
				stdLog.Fatalf("Failed to create variant %s/%s: %v", name, v.Value, err)
			}
		}
		for i, url := range item.Images {
			if _, err := images.Add(product.ID, url, i == 0); err != nil {
				stdLog.Fatalf("Failed to add image for %s: %v", name, err)
			}
		}
		logger.Infow("seed_product_created",
			"slug", product.Slug,
			"sku", product.SKU,
			"variants", len(item.Variants),
			"images", len(item.Images),
		)
	}

	stdLog.Printf("Seed completed: %d categories, %d products", len(seedCategories), len(seedProducts))
}
