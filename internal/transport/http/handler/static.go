package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// StaticHandler serves the upload page and its assets from a single
// directory. Every resolved path is checked to stay inside the root.
type StaticHandler struct {
	root string
}

func NewStaticHandler(root string) *StaticHandler {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	return &StaticHandler{root: abs}
}

func (h *StaticHandler) Serve(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(r.URL.Path, "/uploads")
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" {
		rel = "index.html"
	}

	clean := filepath.Clean(filepath.FromSlash(rel))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(os.PathSeparator)) || filepath.IsAbs(clean) {
		http.NotFound(w, r)
		return
	}

	full := filepath.Join(h.root, clean)
	if full != h.root && !strings.HasPrefix(full, h.root+string(os.PathSeparator)) {
		http.NotFound(w, r)
		return
	}
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, full)
}
