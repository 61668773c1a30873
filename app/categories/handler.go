package categories

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/marketbay/catalog-server/app/catalog"
	"github.com/marketbay/catalog-server/app/web"
	"github.com/marketbay/catalog-server/models"
)

const notSavedMessage = "The category was not saved."

// CategoryRepository is the store surface the handler needs. ProductsOf
// feeds the category-scoped product listing.
type CategoryRepository interface {
	AllOrdered() ([]models.Category, error)
	ByID(id uint) (*models.Category, error)
	Create(fields models.CategoryFields) (*models.Category, error)
	Update(id uint, fields models.CategoryFields) (*models.Category, error)
	Delete(id uint) (*models.Category, error)
	ProductsOf(categoryID uint) ([]models.Product, error)
}

type CategoriesHandler struct {
	repo     CategoryRepository
	renderer *web.Renderer
	baseURL  string
}

func NewCategoriesHandler(repo CategoryRepository, renderer *web.Renderer, baseURL string) *CategoriesHandler {
	return &CategoriesHandler{repo: repo, renderer: renderer, baseURL: baseURL}
}

// HandleList serves GET /categories in every supported format.
func (h *CategoriesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
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
		catalog.WriteJSON(w, r, catalog.NewCategoryViews(page.Items))
	case catalog.FormatXML:
		catalog.WriteXML(w, catalog.CategoriesDoc{Categories: catalog.NewCategoryViews(page.Items)})
	case catalog.FormatRSS:
		catalog.WriteFeed(w, catalog.CategoriesFeed(h.baseURL, page.Items))
	case catalog.FormatHTML:
		h.renderer.Render(w, "categories", web.ViewData{
			Title:      "Categories",
			Flash:      web.PopFlash(w, r),
			Query:      term,
			Categories: page,
		})
	}
}

// HandleListProducts serves GET /categories/{id}/products: the identical
// listing pipeline, with the category's products substituted for the
// global set. An unknown category fails with 404 before any filtering.
func (h *CategoriesHandler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	category, ok := h.find(w, r)
	if !ok {
		return
	}

	all, err := h.repo.ProductsOf(category.ID)
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
		catalog.WriteFeed(w, catalog.ProductsFeed(h.baseURL, category, page.Items))
	case catalog.FormatHTML:
		h.renderer.Render(w, "category_products", web.ViewData{
			Title:    "Products in " + category.Name,
			Flash:    web.PopFlash(w, r),
			Query:    term,
			Category: category,
			Products: page,
		})
	}
}

// HandleGet serves GET /categories/{id}.
func (h *CategoriesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	h.show(w, r, "category")
}

// HandleEdit serves GET /categories/{id}/edit.
func (h *CategoriesHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	h.show(w, r, "category_edit")
}

func (h *CategoriesHandler) show(w http.ResponseWriter, r *http.Request, view string) {
	category, ok := h.find(w, r)
	if !ok {
		return
	}

	switch catalog.RequestFormat(r) {
	case catalog.FormatJSON:
		catalog.WriteJSON(w, r, catalog.NewCategoryView(*category))
	case catalog.FormatXML:
		catalog.WriteXML(w, catalog.NewCategoryView(*category))
	case catalog.FormatRSS:
		http.Error(w, "unsupported format", http.StatusNotAcceptable)
	case catalog.FormatHTML:
		h.renderer.Render(w, view, web.ViewData{
			Title:    category.Name,
			Flash:    web.PopFlash(w, r),
			Category: category,
		})
	}
}

// HandleCreate serves POST /categories.
func (h *CategoriesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	fields := parseCategoryFields(r)

	category, err := h.repo.Create(fields)
	if err != nil {
		h.respondNotSaved(w, r, err)
		return
	}

	h.respondSaved(w, r, "Created "+category.Name)
}

// HandleUpdate serves PUT /categories/{id}/update.
func (h *CategoriesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Category not found", http.StatusNotFound)
		return
	}
	fields := parseCategoryFields(r)

	category, err := h.repo.Update(id, fields)
	if err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			http.Error(w, "Category not found", http.StatusNotFound)
			return
		}
		var verrs models.ValidationErrors
		if errors.As(err, &verrs) && catalog.RequestFormat(r) == catalog.FormatHTML {
			current, lookupErr := h.repo.ByID(id)
			if lookupErr != nil {
				http.Error(w, lookupErr.Error(), http.StatusInternalServerError)
				return
			}
			h.renderer.Render(w, "category_edit", web.ViewData{
				Title:    current.Name,
				Message:  notSavedMessage,
				Errors:   verrs,
				Category: current,
			})
			return
		}
		h.respondNotSaved(w, r, err)
		return
	}

	h.respondSaved(w, r, "Updated "+category.Name)
}

// HandleDelete serves DELETE /categories/{id}.
func (h *CategoriesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Category not found", http.StatusNotFound)
		return
	}

	category, err := h.repo.Delete(id)
	if err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			http.Error(w, "Category not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.respondSaved(w, r, category.Name+" was deleted.")
}

func (h *CategoriesHandler) respondSaved(w http.ResponseWriter, r *http.Request, message string) {
	if catalog.RequestFormat(r) == catalog.FormatJSON {
		catalog.WriteJSON(w, r, catalog.StatusResponse{Success: true, Message: message})
		return
	}
	web.SetFlash(w, message)
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}

func (h *CategoriesHandler) respondNotSaved(w http.ResponseWriter, r *http.Request, err error) {
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

	all, listErr := h.repo.AllOrdered()
	if listErr != nil {
		http.Error(w, listErr.Error(), http.StatusInternalServerError)
		return
	}
	h.renderer.Render(w, "categories", web.ViewData{
		Title:      "Categories",
		Message:    notSavedMessage,
		Errors:     verrs,
		Categories: catalog.Paginate(all, 1, catalog.PerPage),
	})
}

func (h *CategoriesHandler) find(w http.ResponseWriter, r *http.Request) (*models.Category, bool) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Category not found", http.StatusNotFound)
		return nil, false
	}
	category, err := h.repo.ByID(id)
	if err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			http.Error(w, "Category not found", http.StatusNotFound)
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return nil, false
	}
	return category, true
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// parseCategoryFields reads category fields from a JSON body or form
// values. Unparseable bodies count as "no fields supplied".
func parseCategoryFields(r *http.Request) models.CategoryFields {
	var fields models.CategoryFields

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			return models.CategoryFields{}
		}
		return fields
	}

	if err := r.ParseForm(); err != nil {
		return models.CategoryFields{}
	}
	if _, ok := r.PostForm["name"]; ok {
		name := r.PostFormValue("name")
		fields.Name = &name
	}
	return fields
}
