package site

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dcode-github/luxury_realty/backend/utils"
)

// Handler serves the built single-page app from dir. Existing files are served as
// is; every other path gets index.html and the client router picks the page.
func Handler(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clean := path.Clean("/" + r.URL.Path)
		if clean != "/" {
			name := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(clean, "/")))
			if info, err := os.Stat(name); err == nil && !info.IsDir() {
				files.ServeHTTP(w, r)
				return
			}
		}

		if !Known(clean) {
			utils.Logger.Debugf("Unknown page %s, serving app shell", clean)
		}
		w.Header().Set("Cache-Control", "no-cache")
		http.ServeFile(w, r, index)
	})
}
