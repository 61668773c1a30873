package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog product. The name is unique across all products;
// description, price and image are optional.
type Product struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"uniqueIndex;not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2)"`
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Product) TableName() string {
	return "products"
}

// MatchesKeyword reports whether term is a case-insensitive substring of
// the product name or description.
func (p Product) MatchesKeyword(term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

// ProductFields carries client-supplied fields for a create or update.
// Nil means "not supplied", so updates can merge partially.
type ProductFields struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"image_url"`
}

func applyProductFields(p *Product, fields ProductFields) {
	if fields.Name != nil {
		p.Name = *fields.Name
	}
	if fields.Description != nil {
		p.Description = *fields.Description
	}
	if fields.Price != nil {
		p.Price = *fields.Price
	}
	if fields.ImageURL != nil {
		p.ImageURL = *fields.ImageURL
	}
}
