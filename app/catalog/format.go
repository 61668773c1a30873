package catalog

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// Format is one of the supported response representations, resolved once
// per request before any handler runs.
type Format int

const (
	FormatHTML Format = iota
	FormatJSON
	FormatXML
	FormatRSS
)

// ErrUnsupportedFormat marks a requested representation outside the
// allow-list.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ParseFormat maps a file-extension suffix to a Format. The empty suffix
// means HTML.
func ParseFormat(ext string) (Format, error) {
	switch ext {
	case "", "html":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	case "xml":
		return FormatXML, nil
	case "rss":
		return FormatRSS, nil
	default:
		return 0, ErrUnsupportedFormat
	}
}

// SplitFormat separates a trailing extension from a request path:
// "/products/7.json" becomes "/products/7" and "json". Only the last path
// segment is inspected.
func SplitFormat(path string) (base, ext string) {
	slash := strings.LastIndexByte(path, '/')
	dot := strings.LastIndexByte(path, '.')
	if dot <= slash {
		return path, ""
	}
	return path[:dot], path[dot+1:]
}

type formatKey struct{}

// ContextWithFormat stamps the resolved format onto a request context.
func ContextWithFormat(ctx context.Context, f Format) context.Context {
	return context.WithValue(ctx, formatKey{}, f)
}

// RequestFormat reads the format resolved by the negotiation middleware,
// defaulting to HTML when no middleware ran.
func RequestFormat(r *http.Request) Format {
	if f, ok := r.Context().Value(formatKey{}).(Format); ok {
		return f
	}
	return FormatHTML
}
