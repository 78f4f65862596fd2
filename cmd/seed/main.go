package main

import (
	"errors"
	"os"

	"github.com/Selinclb/eticaretsitesi/internal/config"
	"github.com/Selinclb/eticaretsitesi/internal/constants"
	"github.com/Selinclb/eticaretsitesi/internal/logger"
	"github.com/Selinclb/eticaretsitesi/internal/models"
	"github.com/Selinclb/eticaretsitesi/internal/provider"
	"github.com/Selinclb/eticaretsitesi/internal/service"

	"github.com/shopspring/decimal"
)

type seedSubCategory struct {
	Name  string
	Image string
}

type seedCategory struct {
	Name          string
	SortOrder     int
	SubCategories []seedSubCategory
}

type seedProduct struct {
	SubCategory     string
	Name            string
	Description     string
	Price           string
	DiscountedPrice string
	Stock           int
	Specs           map[string]interface{}
	IsBestSeller    bool
	IsFeatured      bool
	Images          []string
	Variants        []service.ProductVariantInput
}

var seedCategories = []seedCategory{
	{
		Name:      "Elektronik",
		SortOrder: 1,
		SubCategories: []seedSubCategory{
			{Name: "Akıllı Telefonlar", Image: "/uploads/subcategory/telefon.jpg"},
			{Name: "Dizüstü Bilgisayarlar", Image: "/uploads/subcategory/laptop.jpg"},
		},
	},
	{
		Name:      "Giyim",
		SortOrder: 2,
		SubCategories: []seedSubCategory{
			{Name: "Tişörtler", Image: "/uploads/subcategory/tisort.jpg"},
		},
	},
	{
		Name:      "Ev & Yaşam",
		SortOrder: 3,
		SubCategories: []seedSubCategory{
			{Name: "Mutfak Gereçleri", Image: "/uploads/subcategory/mutfak.jpg"},
		},
	},
}

var seedProducts = []seedProduct{
	{
		SubCategory:     "Akıllı Telefonlar",
		Name:            "Galaksi Ş23 Akıllı Telefon",
		Description:     "<p>6.1 inç ekran, 50 MP kamera.</p>",
		Price:           "32999.90",
		DiscountedPrice: "29999.90",
		Stock:           25,
		Specs:           map[string]interface{}{"Ekran": "6.1 inç", "Kamera": "50 MP"},
		IsBestSeller:    true,
		IsFeatured:      true,
		Images:          []string{"/uploads/product/telefon-1.jpg", "/uploads/product/telefon-2.jpg"},
		Variants: []service.ProductVariantInput{
			{VariantType: constants.VariantTypeColor, Name: "Siyah", Stock: 10, IsDefault: true},
			{VariantType: constants.VariantTypeColor, Name: "Gümüş", Stock: 8},
			{VariantType: constants.VariantTypeStorage, Name: "128 GB", Stock: 15, IsDefault: true},
			{VariantType: constants.VariantTypeStorage, Name: "256 GB", Stock: 10, PriceAdjustment: decimal.RequireFromString("2500")},
		},
	},
	{
		SubCategory: "Dizüstü Bilgisayarlar",
		Name:        "Çalışkan 14 Dizüstü Bilgisayar",
		Description: "<p>14 inç, 16 GB RAM.</p>",
		Price:       "45999.00",
		Stock:       12,
		Specs:       map[string]interface{}{"RAM": "16 GB", "İşlemci": "8 çekirdek"},
		IsFeatured:  true,
		Images:      []string{"/uploads/product/laptop-1.jpg"},
	},
	{
		SubCategory: "Tişörtler",
		Name:        "Pamuklu Basic Tişört",
		Description: "<p>%100 pamuk.</p>",
		Price:       "299.90",
		Stock:       100,
		Images:      []string{"/uploads/product/tisort-1.jpg"},
		Variants: []service.ProductVariantInput{
			{VariantType: constants.VariantTypeSize, Name: "S", Stock: 30},
			{VariantType: constants.VariantTypeSize, Name: "M", Stock: 40, IsDefault: true},
			{VariantType: constants.VariantTypeSize, Name: "L", Stock: 30},
		},
	},
	{
		SubCategory:  "Mutfak Gereçleri",
		Name:         "Döküm Tava 28 cm",
		Description:  "<p>Her ocakla uyumlu.</p>",
		Price:        "1499.00",
		Stock:        40,
		IsBestSeller: true,
		Images:       []string{"/uploads/product/tava-1.jpg"},
	},
}

var seedSliders = []service.SliderInput{
	{Title: "Yaz İndirimi", Description: "Seçili ürünlerde %30'a varan indirim", Image: "/uploads/slider/yaz.jpg", URL: "/products?on_sale=true", SortOrder: 1, IsActive: true},
	{Title: "Yeni Sezon", Description: "Yeni ürünleri keşfedin", Image: "/uploads/slider/sezon.jpg", URL: "/products?featured=true", ButtonText: "Keşfet", SortOrder: 2, IsActive: true},
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	c := provider.Build(cfg, models.DB, nil, nil)

	subCategoryIDs := map[string]uint{}
	for _, cat := range seedCategories {
		category, err := c.CategoryService.Create(service.CategoryInput{Name: cat.Name, SortOrder: cat.SortOrder})
		if err != nil {
			stdLog.Printf("Failed to create category %s: %v", cat.Name, err)
			continue
		}
		stdLog.Printf("Created category: %s (%s)", category.Name, category.Slug)
		for _, sub := range cat.SubCategories {
			created, err := c.CategoryService.CreateSubCategory(service.SubCategoryInput{
				CategoryID: category.ID,
				Name:       sub.Name,
				Image:      sub.Image,
			})
			if err != nil {
				stdLog.Printf("Failed to create subcategory %s: %v", sub.Name, err)
				continue
			}
			subCategoryIDs[sub.Name] = created.ID
		}
	}

	for _, item := range seedProducts {
		subID, ok := subCategoryIDs[item.SubCategory]
		if !ok {
			stdLog.Printf("Skip product %s: subcategory %s missing", item.Name, item.SubCategory)
			continue
		}
		input := service.ProductInput{
			SubCategoryID: subID,
			Name:          item.Name,
			Description:   item.Description,
			Price:         decimal.RequireFromString(item.Price),
			Specs:         item.Specs,
			Stock:         item.Stock,
			Status:        constants.ProductStatusActive,
			IsBestSeller:  item.IsBestSeller,
			IsFeatured:    item.IsFeatured,
		}
		if item.DiscountedPrice != "" {
			discounted := decimal.RequireFromString(item.DiscountedPrice)
			input.DiscountedPrice = &discounted
		}
		product, err := c.ProductService.Create(input)
		if err != nil {
			stdLog.Printf("Failed to create product %s: %v", item.Name, err)
			continue
		}
		for i, image := range item.Images {
			if _, err := c.ProductService.AddImage(product.ID, service.ProductImageInput{Image: image, IsPrimary: i == 0, SortOrder: i}); err != nil {
				stdLog.Printf("Failed to add image for %s: %v", product.Slug, err)
			}
		}
		for _, variant := range item.Variants {
			if _, err := c.ProductService.AddVariant(product.ID, variant); err != nil {
				stdLog.Printf("Failed to add variant %s for %s: %v", variant.Name, product.Slug, err)
			}
		}
		stdLog.Printf("Created product: %s", product.Slug)
	}

	for _, slider := range seedSliders {
		if _, err := c.SliderService.Create(slider); err != nil {
			stdLog.Printf("Failed to create slider %s: %v", slider.Title, err)
		}
	}

	settings := map[string]map[string]interface{}{
		constants.SettingKeyContact: {
			"phone":    "+90 212 000 00 00",
			"email":    "destek@example.com",
			"location": "Kadıköy, İstanbul",
		},
		constants.SettingKeySocialMedia: {
			"instagram": "https://instagram.com/eticaret",
			"twitter":   "https://x.com/eticaret",
		},
	}
	for key, value := range settings {
		if _, err := c.SettingService.Update(key, value); err != nil {
			stdLog.Printf("Failed to save setting %s: %v", key, err)
		}
	}

	username := os.Getenv("ETICARET_DEFAULT_ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ETICARET_DEFAULT_ADMIN_PASSWORD")
	if password == "" {
		password = "admin12345"
	}
	if _, created, err := c.AuthService.EnsureAdmin(username, password, true); err != nil {
		if errors.Is(err, service.ErrAdminPasswordTooShort) {
			stdLog.Printf("Admin password must be at least 8 characters")
		} else {
			stdLog.Printf("Failed to ensure admin: %v", err)
		}
	} else if created {
		stdLog.Printf("Created admin: %s", username)
	}

	stdLog.Println("Seed completed")
}
