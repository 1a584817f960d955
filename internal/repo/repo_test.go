package repo

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/mswiatek/web_shop/internal/models"
)

func InitTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(
		sqlite.Open(":memory:?_pragma=foreign_keys(1)"),
		&gorm.Config{TranslateError: true},
	)
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.User{},
		&models.Order{},
		&models.OrderProduct{},
		&models.Opinion{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

// seedProduct creates a category and a product under it.
func seedProduct(t *testing.T, db *gorm.DB, name string, price float64) *models.Product {
	t.Helper()

	cat := models.Category{Name: "test_category_" + name}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	prod := models.Product{
		CategoryID:  cat.ID,
		Name:        name,
		ImagePath:   "./media/products/default.png",
		Description: "test_description",
		Price:       price,
	}
	if err := db.Create(&prod).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return &prod
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := models.User{Username: username, Role: "user"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return &user
}
