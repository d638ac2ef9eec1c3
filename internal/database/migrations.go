package database

import (
	"gorm.io/gorm"

	"github.com/campustrade/campustrade/internal/models"
)

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Review{},
		&models.Notification{},
		&models.ReadReceipt{},
		&models.SiteSetting{},
	)
}

// SeedData inserts the default site settings and starter categories.
func SeedData(db *gorm.DB) error {
	active := models.SiteSetting{
		Key:   models.SettingSiteActive,
		Value: "true",
	}
	if err := db.Where(models.SiteSetting{Key: active.Key}).Attrs(active).FirstOrCreate(&models.SiteSetting{}).Error; err != nil {
		return err
	}

	categories := []models.Category{
		{Name: "Books", Description: "Textbooks, course notes, and study guides"},
		{Name: "Electronics", Description: "Laptops, calculators, and accessories"},
		{Name: "Clothing", Description: "Apparel and university merchandise"},
		{Name: "Services", Description: "Tutoring and other student services"},
		{Name: "Other", Description: "Everything else"},
	}

	for _, category := range categories {
		if err := db.Where(models.Category{Name: category.Name}).Attrs(category).FirstOrCreate(&models.Category{}).Error; err != nil {
			return err
		}
	}

	return nil
}
