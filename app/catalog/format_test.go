package catalog

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFormat(t *testing.T) {
	testCases := []struct {
		ext      string
		expected Format
		wantErr  bool
	}{
		{"", FormatHTML, false},
		{"html", FormatHTML, false},
		{"json", FormatJSON, false},
		{"xml", FormatXML, false},
		{"rss", FormatRSS, false},
		{"csv", 0, true},
		{"atom", 0, true},
		{"JSON", 0, true},
	}

	for _, tc := range testCases {
		t.Run("ext="+tc.ext, func(t *testing.T) {
			format, err := ParseFormat(tc.ext)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, format)
		})
	}
}

func TestSplitFormat(t *testing.T) {
	testCases := []struct {
		path         string
		expectedBase string
		expectedExt  string
	}{
		{"/products", "/products", ""},
		{"/products.json", "/products", "json"},
		{"/products/7.xml", "/products/7", "xml"},
		{"/categories/3/products.rss", "/categories/3/products", "rss"},
		{"/v1.2/products", "/v1.2/products", ""},
		{"/", "/", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			base, ext := SplitFormat(tc.path)
			assert.Equal(t, tc.expectedBase, base)
			assert.Equal(t, tc.expectedExt, ext)
		})
	}
}

func TestRequestFormatDefaultsToHTML(t *testing.T) {
	r := httptest.NewRequest("GET", "/products", nil)
	assert.Equal(t, FormatHTML, RequestFormat(r))

	stamped := r.WithContext(ContextWithFormat(r.Context(), FormatRSS))
	assert.Equal(t, FormatRSS, RequestFormat(stamped))
}
