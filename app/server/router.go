package server

import (
	"net/http"

	"github.com/marketbay/catalog-server/app/categories"
	"github.com/marketbay/catalog-server/app/products"
	"github.com/marketbay/catalog-server/app/web"
)

// NewRouter wires every route behind the negotiation and logging
// middleware.
func NewRouter(
	productsHandler *products.ProductsHandler,
	categoriesHandler *categories.CategoriesHandler,
	static *web.Static,
	renderer *web.Renderer,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /products", productsHandler.HandleList)
	mux.HandleFunc("GET /products/{id}", productsHandler.HandleGet)
	mux.HandleFunc("GET /products/{id}/edit", productsHandler.HandleEdit)
	mux.HandleFunc("POST /products", productsHandler.HandleCreate)
	mux.HandleFunc("PUT /products/{id}/update", productsHandler.HandleUpdate)
	mux.HandleFunc("DELETE /products/{id}", productsHandler.HandleDelete)

	mux.HandleFunc("GET /categories", categoriesHandler.HandleList)
	mux.HandleFunc("GET /categories/{id}", categoriesHandler.HandleGet)
	mux.HandleFunc("GET /categories/{id}/edit", categoriesHandler.HandleEdit)
	mux.HandleFunc("GET /categories/{id}/products", categoriesHandler.HandleListProducts)
	mux.HandleFunc("POST /categories", categoriesHandler.HandleCreate)
	mux.HandleFunc("PUT /categories/{id}/update", categoriesHandler.HandleUpdate)
	mux.HandleFunc("DELETE /categories/{id}", categoriesHandler.HandleDelete)

	mux.HandleFunc("GET /help", func(w http.ResponseWriter, r *http.Request) {
		renderer.Render(w, "help", web.ViewData{Title: "Help"})
	})
	mux.Handle("GET /", static)

	return LogRequests(Negotiate(mux))
}
