package server

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/marketbay/catalog-server/app/catalog"
)

// Negotiate resolves the response representation from a file-extension
// suffix, strips the suffix from the path, and rejects extensions outside
// the allow-list before any handler runs. Non-resource paths (static
// assets) pass through untouched so /logo.png stays a file lookup.
func Negotiate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		base, ext := catalog.SplitFormat(r.URL.Path)
		if !resourcePath(base) {
			next.ServeHTTP(w, r)
			return
		}

		format, err := catalog.ParseFormat(ext)
		if err != nil {
			http.Error(w, "unsupported format", http.StatusNotAcceptable)
			return
		}

		stamped := r.Clone(catalog.ContextWithFormat(r.Context(), format))
		stamped.URL.Path = base
		stamped.URL.RawPath = ""
		next.ServeHTTP(w, stamped)
	})
}

func resourcePath(base string) bool {
	return base == "/products" || strings.HasPrefix(base, "/products/") ||
		base == "/categories" || strings.HasPrefix(base, "/categories/")
}

// LogRequests emits one structured line per request.
func LogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}
