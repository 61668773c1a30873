package models

import (
	"strings"
	"time"
)

// Category groups products. Names are unique.
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Category) TableName() string {
	return "categories"
}

// MatchesKeyword reports whether term is a case-insensitive substring of
// the category name. Categories have no description to search.
func (c Category) MatchesKeyword(term string) bool {
	return strings.Contains(strings.ToLower(c.Name), strings.ToLower(term))
}

// CategoryFields carries client-supplied fields for a create or update.
type CategoryFields struct {
	Name *string `json:"name"`
}
