package models

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrProductNotFound is returned when a product lookup misses.
var ErrProductNotFound = errors.New("product not found")

type ProductsRepository struct {
	db *gorm.DB
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{db: db}
}

// AllOrdered returns every product, newest first. Listing endpoints filter
// and window this set in memory.
func (r *ProductsRepository) AllOrdered() ([]Product, error) {
	var products []Product
	if err := r.db.Order("created_at desc").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (r *ProductsRepository) ByID(id uint) (*Product, error) {
	var product Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("find product %d: %w", id, err)
	}
	return &product, nil
}

// Create validates the supplied fields and inserts a new product. On a
// validation failure nothing is written and the returned error is a
// ValidationErrors value.
func (r *ProductsRepository) Create(fields ProductFields) (*Product, error) {
	var product Product
	applyProductFields(&product, fields)

	verrs, err := r.validate(&product)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	if err := r.db.Create(&product).Error; err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &product, nil
}

// Update merges the supplied fields into the stored product, re-validates
// and saves. Fields left nil keep their stored values.
func (r *ProductsRepository) Update(id uint, fields ProductFields) (*Product, error) {
	product, err := r.ByID(id)
	if err != nil {
		return nil, err
	}
	applyProductFields(product, fields)

	verrs, err := r.validate(product)
	if err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	if err := r.db.Save(product).Error; err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	return product, nil
}

// Delete removes the product and returns it, so callers can build a
// farewell message. Association rows are left in place.
func (r *ProductsRepository) Delete(id uint) (*Product, error) {
	product, err := r.ByID(id)
	if err != nil {
		return nil, err
	}
	if err := r.db.Delete(product).Error; err != nil {
		return nil, fmt.Errorf("delete product %d: %w", id, err)
	}
	return product, nil
}

// CategoriesOf returns the categories a product belongs to, newest first.
func (r *ProductsRepository) CategoriesOf(productID uint) ([]Category, error) {
	var categories []Category
	err := r.db.
		Joins("JOIN product_categories ON product_categories.category_id = categories.id").
		Where("product_categories.product_id = ?", productID).
		Order("categories.created_at desc").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("categories of product %d: %w", productID, err)
	}
	return categories, nil
}

// AssignCategory links a product to a category. Duplicate pairings are
// allowed and kept.
func (r *ProductsRepository) AssignCategory(productID, categoryID uint) error {
	link := ProductCategory{ProductID: productID, CategoryID: categoryID}
	if err := r.db.Create(&link).Error; err != nil {
		return fmt.Errorf("assign product %d to category %d: %w", productID, categoryID, err)
	}
	return nil
}

// validate runs the presence and uniqueness checks for the product name.
// The uniqueness probe is check-then-write; under concurrent writers the
// database unique index is the final arbiter.
func (r *ProductsRepository) validate(product *Product) (ValidationErrors, error) {
	verrs := ValidationErrors{}
	if strings.TrimSpace(product.Name) == "" {
		verrs.Add("name", msgBlank)
		return verrs, nil
	}

	var count int64
	err := r.db.Model(&Product{}).
		Where("name = ? AND id <> ?", product.Name, product.ID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		verrs.Add("name", msgTaken)
	}
	return verrs, nil
}
