package catalog

import (
	"encoding/xml"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marketbay/catalog-server/models"
)

// ProductView is the wire representation of a product, shared by the JSON
// and XML branches. Collections serialize as bare arrays with no metadata
// envelope.
type ProductView struct {
	XMLName     xml.Name        `json:"-" xml:"product"`
	ID          uint            `json:"id" xml:"id"`
	Name        string          `json:"name" xml:"name"`
	Description string          `json:"description" xml:"description"`
	Price       decimal.Decimal `json:"price" xml:"price"`
	ImageURL    string          `json:"image_url" xml:"image_url"`
	CreatedAt   time.Time       `json:"created_at" xml:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" xml:"updated_at"`
}

// CategoryView is the wire representation of a category.
type CategoryView struct {
	XMLName   xml.Name  `json:"-" xml:"category"`
	ID        uint      `json:"id" xml:"id"`
	Name      string    `json:"name" xml:"name"`
	CreatedAt time.Time `json:"created_at" xml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" xml:"updated_at"`
}

func NewProductView(p models.Product) ProductView {
	return ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewProductViews maps a windowed collection. The result is never nil, so
// an empty window encodes as [] rather than null.
func NewProductViews(products []models.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, NewProductView(p))
	}
	return views
}

func NewCategoryView(c models.Category) CategoryView {
	return CategoryView{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func NewCategoryViews(categories []models.Category) []CategoryView {
	views := make([]CategoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, NewCategoryView(c))
	}
	return views
}

// ProductsDoc and CategoriesDoc give XML collections their single
// top-level element. JSON never uses them.
type ProductsDoc struct {
	XMLName  xml.Name      `xml:"products"`
	Products []ProductView `xml:"product"`
}

type CategoriesDoc struct {
	XMLName    xml.Name       `xml:"categories"`
	Categories []CategoryView `xml:"category"`
}
