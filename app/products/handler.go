package products

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/marketbay/catalog-server/app/catalog"
	"github.com/marketbay/catalog-server/app/web"
	"github.com/marketbay/catalog-server/models"
)

const notSavedMessage = "The product was not saved."

// ProductRepository is the store surface the handler needs.
type ProductRepository interface {
	AllOrdered() ([]models.Product, error)
	ByID(id uint) (*models.Product, error)
	Create(fields models.ProductFields) (*models.Product, error)
	Update(id uint, fields models.ProductFields) (*models.Product, error)
	Delete(id uint) (*models.Product, error)
}

type ProductsHandler struct {
	repo     ProductRepository
	renderer *web.Renderer
	baseURL  string
}

func NewProductsHandler(repo ProductRepository, renderer *web.Renderer, baseURL string) *ProductsHandler {
	return &ProductsHandler{repo: repo, renderer: renderer, baseURL: baseURL}
}

// HandleList serves GET /products in every supported format. The request
// runs the full pipeline: filter by q if present, window to the requested
// page, then serialize.
func (h *ProductsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	all, err := h.repo.AllOrdered()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	term := r.URL.Query().Get("q")
	filtered := catalog.FilterKeyword(all, term)
	page := catalog.Paginate(filtered, catalog.ParsePage(r.URL.Query().Get("page")), catalog.PerPage)

	switch catalog.RequestFormat(r) {
	case catalog.FormatJSON:
		catalog.WriteJSON(w, r, catalog.NewProductViews(page.Items))
	case catalog.FormatXML:
		catalog.WriteXML(w, catalog.ProductsDoc{Products: catalog.NewProductViews(page.Items)})
	case catalog.FormatRSS:
		catalog.WriteFeed(w, catalog.ProductsFeed(h.baseURL, nil, page.Items))
	case catalog.FormatHTML:
		h.renderer.Render(w, "products", web.ViewData{
			Title:    "Products",
			Flash:    web.PopFlash(w, r),
			Query:    term,
			Products: page,
		})
	}
}

// HandleGet serves GET /products/{id}. Single entities skip pagination.
func (h *ProductsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	h.show(w, r, "product")
}

// HandleEdit serves GET /products/{id}/edit: the edit form as HTML, the
// entity itself as JSON or XML.
func (h *ProductsHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	h.show(w, r, "product_edit")
}

func (h *ProductsHandler) show(w http.ResponseWriter, r *http.Request, view string) {
	product, ok := h.find(w, r)
	if !ok {
		return
	}

	switch catalog.RequestFormat(r) {
	case catalog.FormatJSON:
		catalog.WriteJSON(w, r, catalog.NewProductView(*product))
	case catalog.FormatXML:
		catalog.WriteXML(w, catalog.NewProductView(*product))
	case catalog.FormatRSS:
		http.Error(w, "unsupported format", http.StatusNotAcceptable)
	case catalog.FormatHTML:
		h.renderer.Render(w, view, web.ViewData{
			Title:   product.Name,
			Flash:   web.PopFlash(w, r),
			Product: product,
		})
	}
}

// HandleCreate serves POST /products.
func (h *ProductsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	fields := parseProductFields(r)

	product, err := h.repo.Create(fields)
	if err != nil {
		h.respondNotSaved(w, r, err)
		return
	}

	h.respondSaved(w, r, "Created "+product.Name)
}

// HandleUpdate serves PUT /products/{id}/update.
func (h *ProductsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	fields := parseProductFields(r)

	product, err := h.repo.Update(id, fields)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		var verrs models.ValidationErrors
		if errors.As(err, &verrs) && catalog.RequestFormat(r) == catalog.FormatHTML {
			// Back to the edit form with the stored product and the
			// messages inline.
			current, lookupErr := h.repo.ByID(id)
			if lookupErr != nil {
				http.Error(w, lookupErr.Error(), http.StatusInternalServerError)
				return
			}
			h.renderer.Render(w, "product_edit", web.ViewData{
				Title:   current.Name,
				Message: notSavedMessage,
				Errors:  verrs,
				Product: current,
			})
			return
		}
		h.respondNotSaved(w, r, err)
		return
	}

	h.respondSaved(w, r, "Updated "+product.Name)
}

// HandleDelete serves DELETE /products/{id}.
func (h *ProductsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	product, err := h.repo.Delete(id)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.respondSaved(w, r, product.Name+" was deleted.")
}

func (h *ProductsHandler) respondSaved(w http.ResponseWriter, r *http.Request, message string) {
	if catalog.RequestFormat(r) == catalog.FormatJSON {
		catalog.WriteJSON(w, r, catalog.StatusResponse{Success: true, Message: message})
		return
	}
	web.SetFlash(w, message)
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

func (h *ProductsHandler) respondNotSaved(w http.ResponseWriter, r *http.Request, err error) {
	var verrs models.ValidationErrors
	if !errors.As(err, &verrs) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if catalog.RequestFormat(r) == catalog.FormatJSON {
		catalog.WriteJSONStatus(w, r, http.StatusInternalServerError, catalog.StatusResponse{
			Success: false,
			Message: notSavedMessage,
			Errors:  verrs,
		})
		return
	}

	// Re-render the listing with the form messages inline.
	all, listErr := h.repo.AllOrdered()
	if listErr != nil {
		http.Error(w, listErr.Error(), http.StatusInternalServerError)
		return
	}
	h.renderer.Render(w, "products", web.ViewData{
		Title:    "Products",
		Message:  notSavedMessage,
		Errors:   verrs,
		Products: catalog.Paginate(all, 1, catalog.PerPage),
	})
}

func (h *ProductsHandler) find(w http.ResponseWriter, r *http.Request) (*models.Product, bool) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return nil, false
	}
	product, err := h.repo.ByID(id)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return nil, false
	}
	return product, true
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// parseProductFields reads product fields from a JSON body or, for form
// submissions, from the form values. A body that cannot be parsed yields
// zero fields, which the presence validation then rejects.
func parseProductFields(r *http.Request) models.ProductFields {
	var fields models.ProductFields

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			return models.ProductFields{}
		}
		return fields
	}

	if err := r.ParseForm(); err != nil {
		return models.ProductFields{}
	}
	if _, ok := r.PostForm["name"]; ok {
		name := r.PostFormValue("name")
		fields.Name = &name
	}
	if _, ok := r.PostForm["description"]; ok {
		description := r.PostFormValue("description")
		fields.Description = &description
	}
	if _, ok := r.PostForm["price"]; ok {
		if price, err := decimal.NewFromString(r.PostFormValue("price")); err == nil {
			fields.Price = &price
		}
	}
	if _, ok := r.PostForm["image_url"]; ok {
		imageURL := r.PostFormValue("image_url")
		fields.ImageURL = &imageURL
	}
	return fields
}
