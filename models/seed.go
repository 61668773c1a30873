package models

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type seedProduct struct {
	category string
	name     string
	price    float64
}

var starterCatalog = []seedProduct{
	{"Cameras", "Nikon Digital Camera", 600.00},
	{"Cameras", "Canon Digital Camera", 600.00},
	{"Laptops", "Macbook Air 11 inch", 999.00},
	{"Laptops", "Macbook Air 13 inch", 1299.00},
	{"Laptops", "Macbook Pro 13 inch", 1299.00},
	{"Laptops", "Macbook Pro 15 inch", 1799.00},
	{"Desktops", "iMac 21.5 inch", 1299.00},
	{"Desktops", "iMac 27 inch", 1799.00},
	{"Tablets", "iPad 64GB Wifi+3G", 829.99},
	{"Tablets", "Amazon Kindle Fire", 139.99},
	{"Tablets", "Amazon Paper White", 119.99},
	{"Tablets", "Google Nexus 7", 199.99},
	{"Music Players", "iPod Touch 64GB", 829.99},
	{"Music Players", "iPod Shuffle", 49.99},
	{"Music Players", "Apple TV", 99.99},
	{"Accessories", "iPad Smart Cover", 29.99},
	{"Accessories", "iPad Smart Cover - Leather", 59.99},
	{"Accessories", "Apple Magic Mouse", 69.00},
	{"Accessories", "Apple Keyboard with Numeric Keypad", 49.00},
	{"Accessories", "Apple Magic Trackpad", 69.00},
	{"Accessories", "Airport Extreme Base Station", 179.00},
	{"Accessories", "Apple Wireless Keyboard", 69.00},
	{"Accessories", "Mini DisplayPort to VGA Adapter", 29.00},
	{"Accessories", "Mini DisplayPort to DVI Adapter", 29.00},
	{"Accessories", "Mini DVI to VGA Adapter", 29.00},
	{"Accessories", "DVI to VGA Adapter", 29.00},
	{"Accessories", "AirPort Express", 99.00},
}

// Seed fills an empty database with a starter catalog so the server is
// usable right after first boot. It is a no-op once any product exists.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	products := NewProductsRepository(db)
	categories := NewCategoriesRepository(db)

	byName := make(map[string]*Category)
	for _, entry := range starterCatalog {
		category, ok := byName[entry.category]
		if !ok {
			var err error
			category, err = categories.FirstOrCreateByName(entry.category)
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			byName[entry.category] = category
		}

		name := entry.name
		description := "Description of " + entry.name
		price := decimal.NewFromFloat(entry.price)
		product, err := products.Create(ProductFields{
			Name:        &name,
			Description: &description,
			Price:       &price,
		})
		if err != nil {
			return fmt.Errorf("seed %q: %w", entry.name, err)
		}
		if err := products.AssignCategory(product.ID, category.ID); err != nil {
			return fmt.Errorf("seed %q: %w", entry.name, err)
		}
	}
	return nil
}
