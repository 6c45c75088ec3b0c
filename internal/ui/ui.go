package ui

import (
	"embed"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
)

//go:embed assets
var Assets embed.FS

// AssetHandler serves the single-page UI. Paths without a file extension
// fall back to index.html so page routes survive a reload.
func AssetHandler() http.HandlerFunc {
	assetsFS, _ := fs.Sub(Assets, "assets")

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		name = strings.TrimPrefix(name, "assets/")
		if name == "" || path.Ext(name) == "" {
			serveIndex(w, assetsFS)
			return
		}

		content, err := fs.ReadFile(assetsFS, name)
		if err != nil {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		w.Header().Set("Cache-Control", "public, max-age=300")
		w.Write(content)
	}
}

func serveIndex(w http.ResponseWriter, assetsFS fs.FS) {
	content, err := fs.ReadFile(assetsFS, "index.html")
	if err != nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(content)
}
