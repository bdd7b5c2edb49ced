package database

import (
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shop-service/models"
)

func strPtr(s string) *string { return &s }

// Seed inserts demo users, categories and products on an empty
// database so the storefront is browsable out of the box.
func Seed(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return nil
	}

	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	userHash, err := bcrypt.GenerateFromPassword([]byte("user123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []models.User{
		{Name: "Admin", FullName: "Shop Administrator", Email: "admin@shop.com", Password: string(adminHash), Role: models.RoleAdmin},
		{Name: "User", FullName: "Demo Customer", Email: "user@test.com", Password: string(userHash), Role: models.RoleUser},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}

	categories := []models.Category{
		{Name: "Electronics", Description: strPtr("Smartphones, laptops and tablets")},
		{Name: "Clothing", Description: strPtr("Men's and women's clothing")},
		{Name: "Books", Description: strPtr("Fiction and technical literature")},
		{Name: "Home Appliances", Description: strPtr("Appliances for the home")},
	}
	if err := db.Create(&categories).Error; err != nil {
		return err
	}

	products := []models.Product{
		{CategoryID: &categories[0].ID, Name: "iPhone 15 Pro", Description: strPtr("Flagship Apple smartphone with the A17 Pro chip, titanium body and 48MP camera"), Price: 45999.00, Image: strPtr("iphone15.jpg"), Stock: 10},
		{CategoryID: &categories[0].ID, Name: "Samsung Galaxy S24", Description: strPtr("Flagship Android smartphone with AI features and an excellent display"), Price: 38999.00, Image: strPtr("samsung_s24.jpg"), Stock: 15},
		{CategoryID: &categories[0].ID, Name: "MacBook Air M3", Description: strPtr("Light and capable laptop with the M3 chip for work and creativity"), Price: 54999.00, Image: strPtr("macbook_air.jpg"), Stock: 8},
		{CategoryID: &categories[1].ID, Name: "Nike T-Shirt", Description: strPtr("Cotton sports t-shirt for comfortable workouts"), Price: 899.00, Image: strPtr("tshirt_nike.jpg"), Stock: 50},
		{CategoryID: &categories[1].ID, Name: "Levi's Jeans", Description: strPtr("Classic blue jeans made of durable denim"), Price: 2499.00, Image: strPtr("jeans_levis.jpg"), Stock: 30},
		{CategoryID: &categories[2].ID, Name: "Clean Code", Description: strPtr("Robert Martin's book on writing clean code"), Price: 599.00, Image: strPtr("clean_code.jpg"), Stock: 20},
		{CategoryID: &categories[3].ID, Name: "Dyson Vacuum", Description: strPtr("Premium cordless vacuum cleaner with powerful suction"), Price: 18999.00, Image: strPtr("dyson_vacuum.jpg"), Stock: 5},
	}
	if err := db.Create(&products).Error; err != nil {
		return err
	}

	zap.L().Info("Seeded demo data",
		zap.Int("users", len(users)),
		zap.Int("categories", len(categories)),
		zap.Int("products", len(products)),
	)
	return nil
}
