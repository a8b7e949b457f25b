package site

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHistory struct {
	pushed []string
}

func (h *recordingHistory) PushState(path string) { h.pushed = append(h.pushed, path) }

func TestResolve(t *testing.T) {
	assert.Equal(t, "Blog", Resolve("/blog").Name)
	assert.Equal(t, "Home", Resolve("/").Name)
	assert.Equal(t, "Home", Resolve("/no-such-page").Name)
	// exact match only
	assert.Equal(t, "Home", Resolve("/blog/").Name)
	assert.Equal(t, "Home", Resolve("/BLOG").Name)
}

func TestPageTableHasUniquePaths(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range Pages {
		require.False(t, seen[p.Path], p.Path)
		seen[p.Path] = true
	}
	assert.GreaterOrEqual(t, len(Pages), 20)
}

func TestNavigateTo(t *testing.T) {
	h := &recordingHistory{}
	signedIn := false
	nav := NewNavigator("/", h, func() bool { return signedIn })

	var rendered []string
	nav.OnChange(func(p Page) { rendered = append(rendered, p.Name) })

	page := nav.NavigateTo("/properties")
	assert.Equal(t, "Properties", page.Name)
	assert.Equal(t, "/properties", nav.CurrentPath())

	// guarded page while anonymous
	page = nav.NavigateTo("/favorites")
	assert.Equal(t, "Login", page.Name)
	assert.Equal(t, LoginPath, nav.CurrentPath())

	signedIn = true
	page = nav.NavigateTo("/favorites")
	assert.Equal(t, "Favorites", page.Name)

	page = nav.NavigateTo("/nowhere")
	assert.Equal(t, "Home", page.Name)
	assert.Equal(t, "/nowhere", nav.CurrentPath())

	assert.Equal(t, []string{"/properties", "/login", "/favorites", "/nowhere"}, h.pushed)
	assert.Equal(t, []string{"Properties", "Login", "Favorites", "Home"}, rendered)
}

func TestNavigatorWithoutHistory(t *testing.T) {
	nav := NewNavigator("/about", nil, nil)
	assert.Equal(t, "About", nav.Current().Name)
	assert.Equal(t, "Login", nav.NavigateTo("/admin").Name)
}

func TestHandler(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>shell</html>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log(1)"), 0o644))

	h := Handler(dir)

	for _, p := range []string{"/", "/blog", "/unknown/deep/link"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, p, nil))
		require.Equal(t, http.StatusOK, rec.Code, p)
		assert.Contains(t, rec.Body.String(), "shell", p)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/app.js", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "console.log(1)", rec.Body.String())
}
