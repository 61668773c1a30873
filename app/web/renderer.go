// Package web holds the thin HTML-side collaborators: template rendering,
// the one-shot flash cookie, and static file serving. The core pipeline
// hands it finished pages of entities; nothing here queries or filters.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/marketbay/catalog-server/app/catalog"
	"github.com/marketbay/catalog-server/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// ViewData is everything a view can receive. Unused fields stay zero.
type ViewData struct {
	Title      string
	Flash      string
	Message    string
	Errors     models.ValidationErrors
	Query      string
	Product    *models.Product
	Category   *models.Category
	Products   catalog.Page[models.Product]
	Categories catalog.Page[models.Category]
}

// Renderer renders the HTML views. All views are parsed with the shared
// layout partials at startup.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

// Render writes the named view. Render errors are logged rather than sent
// to the client, since part of the body may already be written.
func (rd *Renderer) Render(w http.ResponseWriter, view string, data ViewData) {
	const op = "Renderer.Render"

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := rd.templates.ExecuteTemplate(w, view+".html", data); err != nil {
		slog.With("op", op).Error("render failed", "view", view, "err", err)
	}
}
