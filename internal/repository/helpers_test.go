package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Selinclb/eticaretsitesi/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "x", FirstName: "Ayşe", LastName: "Yılmaz", IsActive: true, IsEmailVerified: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func seedCatalog(t *testing.T, db *gorm.DB) (*models.Category, *models.SubCategory) {
	t.Helper()
	category := &models.Category{Name: "Elektronik", Slug: "elektronik"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	sub := &models.SubCategory{CategoryID: category.ID, Name: "Telefon", Slug: "telefon"}
	if err := db.Omit("Category").Create(sub).Error; err != nil {
		t.Fatalf("create subcategory failed: %v", err)
	}
	return category, sub
}

func seedProduct(t *testing.T, db *gorm.DB, category *models.Category, sub *models.SubCategory, name, slug, price string) *models.Product {
	t.Helper()
	product := &models.Product{
		CategoryID:    category.ID,
		SubCategoryID: sub.ID,
		Name:          name,
		Slug:          slug,
		Description:   name + " açıklama",
		Price:         models.MustMoney(price),
		Stock:         10,
		Status:        "active",
	}
	if err := NewProductRepository(db).Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}
