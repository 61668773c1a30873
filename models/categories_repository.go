package models

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrCategoryNotFound is returned when a category lookup misses.
var ErrCategoryNotFound = errors.New("category not found")

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{db: db}
}

// AllOrdered returns every category, newest first.
func (r *CategoriesRepository) AllOrdered() ([]Category, error) {
	var categories []Category
	if err := r.db.Order("created_at desc").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoriesRepository) ByID(id uint) (*Category, error) {
	var category Category
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category %d: %w", id, err)
	}
	return &category, nil
}

func (r *CategoriesRepository) Create(fields CategoryFields) (*Category, error) {
	var category Category
	if fields.Name != nil {
		category.Name = *fields.Name
	}

	verrs, err := r.validate(&category)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	if err := r.db.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &category, nil
}

func (r *CategoriesRepository) Update(id uint, fields CategoryFields) (*Category, error) {
	category, err := r.ByID(id)
	if err != nil {
		return nil, err
	}
	if fields.Name != nil {
		category.Name = *fields.Name
	}

	verrs, err := r.validate(category)
	if err != nil {
		return nil, fmt.Errorf("update category %d: %w", id, err)
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	if err := r.db.Save(category).Error; err != nil {
		return nil, fmt.Errorf("update category %d: %w", id, err)
	}
	return category, nil
}

// Delete removes the category and returns it. Products stay; their
// association rows to this category are left behind.
func (r *CategoriesRepository) Delete(id uint) (*Category, error) {
	category, err := r.ByID(id)
	if err != nil {
		return nil, err
	}
	if err := r.db.Delete(category).Error; err != nil {
		return nil, fmt.Errorf("delete category %d: %w", id, err)
	}
	return category, nil
}

// ProductsOf returns the products assigned to a category, newest first. A
// product assigned twice appears twice.
func (r *CategoriesRepository) ProductsOf(categoryID uint) ([]Product, error) {
	var products []Product
	err := r.db.
		Joins("JOIN product_categories ON product_categories.product_id = products.id").
		Where("product_categories.category_id = ?", categoryID).
		Order("products.created_at desc").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("products of category %d: %w", categoryID, err)
	}
	return products, nil
}

// FirstOrCreateByName is used by the seeder to make idempotent categories.
func (r *CategoriesRepository) FirstOrCreateByName(name string) (*Category, error) {
	var category Category
	err := r.db.Where(Category{Name: name}).FirstOrCreate(&category).Error
	if err != nil {
		return nil, fmt.Errorf("first or create category %q: %w", name, err)
	}
	return &category, nil
}

func (r *CategoriesRepository) validate(category *Category) (ValidationErrors, error) {
	verrs := ValidationErrors{}
	if strings.TrimSpace(category.Name) == "" {
		verrs.Add("name", msgBlank)
		return verrs, nil
	}

	var count int64
	err := r.db.Model(&Category{}).
		Where("name = ? AND id <> ?", category.Name, category.ID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		verrs.Add("name", msgTaken)
	}
	return verrs, nil
}
