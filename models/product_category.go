package models

// ProductCategory is one product–category pairing. The pair carries no
// payload and is not unique: assigning the same product to a category twice
// produces two rows, and deleting either side leaves the pairing behind.
type ProductCategory struct {
	ProductID  uint `gorm:"not null"`
	CategoryID uint `gorm:"not null"`
}

func (ProductCategory) TableName() string {
	return "product_categories"
}
