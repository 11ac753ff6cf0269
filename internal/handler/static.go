package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// StaticHandler serves the built frontend from a directory on disk.
// Unknown paths fall back to index.html so client-side routing works
// on hard refresh. API paths never reach this handler.
type StaticHandler struct {
	root  string
	index string
}

// NewStaticHandler creates a StaticHandler serving files under root.
func NewStaticHandler(root string) *StaticHandler {
	return &StaticHandler{
		root:  root,
		index: filepath.Join(root, "index.html"),
	}
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Resolve inside root, rejecting traversal.
	rel := strings.TrimPrefix(filepath.Clean("/"+r.URL.Path), "/")
	path := filepath.Join(h.root, rel)
	if !strings.HasPrefix(path, filepath.Clean(h.root)) {
		http.NotFound(w, r)
		return
	}

	info, err := os.Stat(path)
	if err == nil && !info.IsDir() {
		http.ServeFile(w, r, path)
		return
	}

	// Assets that genuinely don't exist should 404 rather than
	// return index.html with a 200.
	if filepath.Ext(rel) != "" && rel != "index.html" {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, h.index)
}
