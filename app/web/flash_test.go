package web

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlashRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	SetFlash(rec, "Created Foo")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	r := httptest.NewRequest("GET", "/products", nil)
	r.AddCookie(cookies[0])

	rec2 := httptest.NewRecorder()
	assert.Equal(t, "Created Foo", PopFlash(rec2, r))

	// Popping clears the cookie.
	cleared := rec2.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Less(t, cleared[0].MaxAge, 0)
}

func TestPopFlashWithoutCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/products", nil)
	assert.Equal(t, "", PopFlash(rec, r))
}

func TestRendererKnowsEveryView(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	views := []string{
		"index", "default", "help",
		"products", "product", "product_edit",
		"categories", "category", "category_products",
	}
	for _, view := range views {
		assert.NotNil(t, renderer.templates.Lookup(view+".html"), "missing view %s", view)
	}
}
