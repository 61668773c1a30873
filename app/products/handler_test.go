package products

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketbay/catalog-server/app/catalog"
	"github.com/marketbay/catalog-server/app/web"
	"github.com/marketbay/catalog-server/models"
)

// --- Mock Repository ---

// mockProductRepo keeps an ordered in-memory set and mirrors the store's
// validation rules, so handler tests exercise the full pipeline.
type mockProductRepo struct {
	products []models.Product
	listErr  error
	nextID   uint
}

func newMockProductRepo(products ...models.Product) *mockProductRepo {
	return &mockProductRepo{products: products, nextID: uint(len(products) + 1)}
}

func (m *mockProductRepo) AllOrdered() ([]models.Product, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.products, nil
}

func (m *mockProductRepo) ByID(id uint) (*models.Product, error) {
	for i := range m.products {
		if m.products[i].ID == id {
			return &m.products[i], nil
		}
	}
	return nil, models.ErrProductNotFound
}

func (m *mockProductRepo) Create(fields models.ProductFields) (*models.Product, error) {
	product := models.Product{ID: m.nextID, CreatedAt: time.Now()}
	if fields.Name != nil {
		product.Name = *fields.Name
	}
	if fields.Description != nil {
		product.Description = *fields.Description
	}
	if fields.Price != nil {
		product.Price = *fields.Price
	}
	if verrs := m.validate(product); verrs != nil {
		return nil, verrs
	}
	m.nextID++
	m.products = append(m.products, product)
	return &product, nil
}

func (m *mockProductRepo) Update(id uint, fields models.ProductFields) (*models.Product, error) {
	existing, err := m.ByID(id)
	if err != nil {
		return nil, err
	}
	updated := *existing
	if fields.Name != nil {
		updated.Name = *fields.Name
	}
	if fields.Description != nil {
		updated.Description = *fields.Description
	}
	if fields.Price != nil {
		updated.Price = *fields.Price
	}
	if verrs := m.validate(updated); verrs != nil {
		return nil, verrs
	}
	*existing = updated
	return existing, nil
}

func (m *mockProductRepo) Delete(id uint) (*models.Product, error) {
	for i := range m.products {
		if m.products[i].ID == id {
			deleted := m.products[i]
			m.products = append(m.products[:i], m.products[i+1:]...)
			return &deleted, nil
		}
	}
	return nil, models.ErrProductNotFound
}

func (m *mockProductRepo) validate(product models.Product) models.ValidationErrors {
	if strings.TrimSpace(product.Name) == "" {
		return models.ValidationErrors{"name": {"can't be blank"}}
	}
	for _, p := range m.products {
		if p.Name == product.Name && p.ID != product.ID {
			return models.ValidationErrors{"name": {"has already been taken"}}
		}
	}
	return nil
}

// --- Helpers ---

func newHandler(t *testing.T, repo ProductRepository) *ProductsHandler {
	t.Helper()
	renderer, err := web.NewRenderer()
	require.NoError(t, err)
	return NewProductsHandler(repo, renderer, "http://localhost:8080")
}

func formatRequest(method, target string, format catalog.Format, body io.Reader) *http.Request {
	r := httptest.NewRequest(method, target, body)
	return r.WithContext(catalog.ContextWithFormat(r.Context(), format))
}

func catalogFixture() *mockProductRepo {
	return newMockProductRepo(
		models.Product{ID: 1, Name: "Camera", Description: "Camera description", Price: decimal.NewFromFloat(50)},
		models.Product{ID: 2, Name: "iMac", Description: "iMac description", Price: decimal.NewFromFloat(1500)},
	)
}

// --- Tests: GET /products ---

func TestHandleListJSON(t *testing.T) {
	testCases := []struct {
		name          string
		target        string
		includes      []string
		excludes      []string
		expectedCount int
	}{
		{
			name:          "full listing",
			target:        "/products",
			includes:      []string{"Camera", "iMac"},
			expectedCount: 2,
		},
		{
			name:          "keyword narrows by name and description",
			target:        "/products?q=camera",
			includes:      []string{"Camera"},
			excludes:      []string{"iMac"},
			expectedCount: 1,
		},
		{
			name:          "keyword without matches",
			target:        "/products?q=zzz",
			expectedCount: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHandler(t, catalogFixture())
			rec := httptest.NewRecorder()

			h.HandleList(rec, formatRequest("GET", tc.target, catalog.FormatJSON, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			body := rec.Body.String()
			var payload []map[string]any
			require.NoError(t, json.Unmarshal([]byte(body), &payload))
			assert.Len(t, payload, tc.expectedCount)

			for _, s := range tc.includes {
				assert.Contains(t, body, s)
			}
			for _, s := range tc.excludes {
				assert.NotContains(t, body, s)
			}
		})
	}
}

func TestHandleListPagination(t *testing.T) {
	products := make([]models.Product, 0, 12)
	for i := 1; i <= 12; i++ {
		products = append(products, models.Product{
			ID:   uint(i),
			Name: fmt.Sprintf("Product %02d", i),
		})
	}
	repo := newMockProductRepo(products...)

	t.Run("first page holds ten", func(t *testing.T) {
		h := newHandler(t, repo)
		rec := httptest.NewRecorder()
		h.HandleList(rec, formatRequest("GET", "/products", catalog.FormatJSON, nil))

		body := rec.Body.String()
		var payload []map[string]any
		require.NoError(t, json.Unmarshal([]byte(body), &payload))
		assert.Len(t, payload, 10)
		assert.NotContains(t, body, "Product 11")
	})

	t.Run("second page holds the remainder", func(t *testing.T) {
		h := newHandler(t, repo)
		rec := httptest.NewRecorder()
		h.HandleList(rec, formatRequest("GET", "/products?page=2", catalog.FormatJSON, nil))

		body := rec.Body.String()
		var payload []map[string]any
		require.NoError(t, json.Unmarshal([]byte(body), &payload))
		assert.Len(t, payload, 2)
		assert.Contains(t, body, "Product 11")
		assert.Contains(t, body, "Product 12")
	})

	t.Run("page past the end is empty, not an error", func(t *testing.T) {
		h := newHandler(t, repo)
		rec := httptest.NewRecorder()
		h.HandleList(rec, formatRequest("GET", "/products?page=9", catalog.FormatJSON, nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
	})
}

func TestHandleListJSONP(t *testing.T) {
	h := newHandler(t, catalogFixture())
	rec := httptest.NewRecorder()

	h.HandleList(rec, formatRequest("GET", "/products?callback=loadProducts", catalog.FormatJSON, nil))

	body := rec.Body.String()
	assert.Equal(t, "application/javascript", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(body, "loadProducts("))
	assert.True(t, strings.HasSuffix(body, ")"))
	// The callback name frames the payload but never leaks into it.
	assert.JSONEq(t, jsonBodyOf(t, h), body[len("loadProducts("):len(body)-1])
}

func jsonBodyOf(t *testing.T, h *ProductsHandler) string {
	t.Helper()
	rec := httptest.NewRecorder()
	h.HandleList(rec, formatRequest("GET", "/products", catalog.FormatJSON, nil))
	return rec.Body.String()
}

func TestHandleListXML(t *testing.T) {
	h := newHandler(t, catalogFixture())
	rec := httptest.NewRecorder()

	h.HandleList(rec, formatRequest("GET", "/products", catalog.FormatXML, nil))

	body := rec.Body.String()
	assert.Equal(t, "application/xml", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(body, "<?xml"))
	assert.Contains(t, body, "<products>")
	assert.Contains(t, body, "<product>")
	assert.Contains(t, body, "<name>Camera</name>")
}

func TestHandleListRSS(t *testing.T) {
	h := newHandler(t, catalogFixture())
	rec := httptest.NewRecorder()

	h.HandleList(rec, formatRequest("GET", "/products", catalog.FormatRSS, nil))

	body := rec.Body.String()
	assert.Equal(t, "application/rss+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, body, `<rss version="2.0">`)
	assert.Contains(t, body, "<title>Products</title>")
	assert.Equal(t, 2, strings.Count(body, "<item>"))
}

func TestHandleListHTML(t *testing.T) {
	h := newHandler(t, catalogFixture())
	rec := httptest.NewRecorder()

	h.HandleList(rec, formatRequest("GET", "/products?q=camera", catalog.FormatHTML, nil))

	body := rec.Body.String()
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, body, "Camera")
	assert.NotContains(t, body, "iMac")
}

// --- Tests: GET /products/{id} ---

func TestHandleGet(t *testing.T) {
	testCases := []struct {
		name           string
		id             string
		format         catalog.Format
		expectedStatus int
		contains       string
	}{
		{"found as json", "1", catalog.FormatJSON, http.StatusOK, `"name":"Camera"`},
		{"found as xml", "1", catalog.FormatXML, http.StatusOK, "<name>Camera</name>"},
		{"found as html", "1", catalog.FormatHTML, http.StatusOK, "Camera description"},
		{"missing id", "42", catalog.FormatJSON, http.StatusNotFound, "Product not found"},
		{"garbage id", "abc", catalog.FormatJSON, http.StatusNotFound, "Product not found"},
		{"rss not offered for single entities", "1", catalog.FormatRSS, http.StatusNotAcceptable, "unsupported format"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHandler(t, catalogFixture())
			rec := httptest.NewRecorder()
			r := formatRequest("GET", "/products/"+tc.id, tc.format, nil)
			r.SetPathValue("id", tc.id)

			h.HandleGet(rec, r)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.contains)
		})
	}
}

// --- Tests: POST /products ---

func TestHandleCreate(t *testing.T) {
	testCases := []struct {
		name           string
		body           string
		expectedStatus int
		expectedBody   string
		persisted      int
	}{
		{
			name:           "success",
			body:           `{"name":"Foo"}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"message":"Created Foo"}`,
			persisted:      3,
		},
		{
			name:           "blank name",
			body:           `{"name":""}`,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"success":false,"message":"The product was not saved.","errors":{"name":["can't be blank"]}}`,
			persisted:      2,
		},
		{
			name:           "no body at all",
			body:           "",
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"success":false,"message":"The product was not saved.","errors":{"name":["can't be blank"]}}`,
			persisted:      2,
		},
		{
			name:           "malformed json counts as no fields",
			body:           `{"name":`,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"success":false,"message":"The product was not saved.","errors":{"name":["can't be blank"]}}`,
			persisted:      2,
		},
		{
			name:           "duplicate name",
			body:           `{"name":"Camera"}`,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"success":false,"message":"The product was not saved.","errors":{"name":["has already been taken"]}}`,
			persisted:      2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := catalogFixture()
			h := newHandler(t, repo)
			rec := httptest.NewRecorder()
			r := formatRequest("POST", "/products", catalog.FormatJSON, strings.NewReader(tc.body))
			r.Header.Set("Content-Type", "application/json")

			h.HandleCreate(rec, r)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.JSONEq(t, tc.expectedBody, rec.Body.String())
			assert.Len(t, repo.products, tc.persisted)
		})
	}
}

func TestHandleCreateFromForm(t *testing.T) {
	repo := catalogFixture()
	h := newHandler(t, repo)
	rec := httptest.NewRecorder()

	form := "name=Tripod&description=Steady&price=19.99"
	r := formatRequest("POST", "/products", catalog.FormatHTML, strings.NewReader(form))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	h.HandleCreate(rec, r)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/products", rec.Header().Get("Location"))
	require.Len(t, repo.products, 3)
	assert.Equal(t, "Tripod", repo.products[2].Name)
	assert.True(t, repo.products[2].Price.Equal(decimal.NewFromFloat(19.99)))
}

func TestHandleCreateHTMLValidationRerenders(t *testing.T) {
	h := newHandler(t, catalogFixture())
	rec := httptest.NewRecorder()

	r := formatRequest("POST", "/products", catalog.FormatHTML, strings.NewReader("description=only"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	h.HandleCreate(rec, r)

	body := rec.Body.String()
	assert.Contains(t, body, "The product was not saved.")
	assert.Contains(t, body, "can&#39;t be blank")
}

// --- Tests: PUT /products/{id}/update ---

func TestHandleUpdate(t *testing.T) {
	t.Run("merges partial fields", func(t *testing.T) {
		repo := catalogFixture()
		h := newHandler(t, repo)
		rec := httptest.NewRecorder()

		r := formatRequest("PUT", "/products/1/update", catalog.FormatJSON,
			strings.NewReader(`{"description":"Sharper"}`))
		r.Header.Set("Content-Type", "application/json")
		r.SetPathValue("id", "1")

		h.HandleUpdate(rec, r)

		assert.JSONEq(t, `{"success":true,"message":"Updated Camera"}`, rec.Body.String())
		updated, err := repo.ByID(1)
		require.NoError(t, err)
		assert.Equal(t, "Camera", updated.Name)
		assert.Equal(t, "Sharper", updated.Description)
	})

	t.Run("renaming onto a taken name fails", func(t *testing.T) {
		repo := catalogFixture()
		h := newHandler(t, repo)
		rec := httptest.NewRecorder()

		r := formatRequest("PUT", "/products/1/update", catalog.FormatJSON,
			strings.NewReader(`{"name":"iMac"}`))
		r.Header.Set("Content-Type", "application/json")
		r.SetPathValue("id", "1")

		h.HandleUpdate(rec, r)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "has already been taken")
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		h := newHandler(t, catalogFixture())
		rec := httptest.NewRecorder()

		r := formatRequest("PUT", "/products/42/update", catalog.FormatJSON,
			strings.NewReader(`{"name":"Renamed"}`))
		r.Header.Set("Content-Type", "application/json")
		r.SetPathValue("id", "42")

		h.HandleUpdate(rec, r)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

// --- Tests: DELETE /products/{id} ---

func TestHandleDelete(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		repo := catalogFixture()
		h := newHandler(t, repo)
		rec := httptest.NewRecorder()

		r := formatRequest("DELETE", "/products/1", catalog.FormatJSON, nil)
		r.SetPathValue("id", "1")

		h.HandleDelete(rec, r)

		assert.JSONEq(t, `{"success":true,"message":"Camera was deleted."}`, rec.Body.String())
		assert.Len(t, repo.products, 1)
	})

	t.Run("html redirects with a flash", func(t *testing.T) {
		repo := catalogFixture()
		h := newHandler(t, repo)
		rec := httptest.NewRecorder()

		r := formatRequest("DELETE", "/products/2", catalog.FormatHTML, nil)
		r.SetPathValue("id", "2")

		h.HandleDelete(rec, r)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("Set-Cookie"))
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		h := newHandler(t, catalogFixture())
		rec := httptest.NewRecorder()

		r := formatRequest("DELETE", "/products/42", catalog.FormatJSON, nil)
		r.SetPathValue("id", "42")

		h.HandleDelete(rec, r)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
