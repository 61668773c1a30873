package web

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
)

// Static serves files out of the public directory. The site root renders
// the info page, and /index.html falls back to a default page when the
// user has not dropped their own file into the public directory.
type Static struct {
	dir      string
	renderer *Renderer
}

func NewStatic(dir string, renderer *Renderer) *Static {
	return &Static{dir: dir, renderer: renderer}
}

func (s *Static) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := path.Clean("/" + r.URL.Path)

	if name == "/" {
		s.renderer.Render(w, "index", ViewData{Title: "Catalog Server"})
		return
	}

	if name == "/index" || name == "/index.html" {
		full := filepath.Join(s.dir, "index.html")
		if fileExists(full) {
			http.ServeFile(w, r, full)
			return
		}
		s.renderer.Render(w, "default", ViewData{Title: "Catalog Server"})
		return
	}

	full := filepath.Join(s.dir, filepath.FromSlash(name))
	if fileExists(full) {
		http.ServeFile(w, r, full)
		return
	}
	http.NotFound(w, r)
}

func fileExists(name string) bool {
	info, err := os.Stat(name)
	return err == nil && !info.IsDir()
}
