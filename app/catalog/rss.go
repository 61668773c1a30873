package catalog

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/marketbay/catalog-server/models"
)

// Feed is an RSS 2.0 document.
type Feed struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel Channel  `xml:"channel"`
}

type Channel struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
	Link        string `xml:"link"`
	Items       []Item `xml:"item"`
}

type Item struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description,omitempty"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// ProductsFeed builds the feed for a product listing, in the order the
// window was handed in. A nil category means the global listing; otherwise
// the channel is scoped to that category. Item guids equal the item links.
func ProductsFeed(baseURL string, category *models.Category, products []models.Product) Feed {
	title := "Products"
	description := "Products"
	link := baseURL + "/products.rss"
	if category != nil {
		title = "Products in " + category.Name
		description = "Products within " + category.Name
		link = fmt.Sprintf("%s/categories/%d/products.rss", baseURL, category.ID)
	}

	items := make([]Item, 0, len(products))
	for _, p := range products {
		detail := fmt.Sprintf("%s/products/%d", baseURL, p.ID)
		items = append(items, Item{
			Title:       p.Name,
			Link:        detail,
			Description: p.Description,
			PubDate:     p.CreatedAt.Format(time.RFC1123Z),
			GUID:        detail,
		})
	}

	return Feed{
		Version: "2.0",
		Channel: Channel{Title: title, Description: description, Link: link, Items: items},
	}
}

// CategoriesFeed builds the feed for the category listing. Category items
// carry no description.
func CategoriesFeed(baseURL string, categories []models.Category) Feed {
	items := make([]Item, 0, len(categories))
	for _, c := range categories {
		detail := fmt.Sprintf("%s/categories/%d", baseURL, c.ID)
		items = append(items, Item{
			Title:   c.Name,
			Link:    detail,
			PubDate: c.CreatedAt.Format(time.RFC1123Z),
			GUID:    detail,
		})
	}

	return Feed{
		Version: "2.0",
		Channel: Channel{
			Title:       "Categories",
			Description: "Categories",
			Link:        baseURL + "/categories.rss",
			Items:       items,
		},
	}
}
