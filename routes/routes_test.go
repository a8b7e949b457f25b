package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcode-github/luxury_realty/backend/app"
	"github.com/dcode-github/luxury_realty/backend/auth"
	"github.com/dcode-github/luxury_realty/backend/store"
)

const prefix = "/make-server"

type harness struct {
	t      *testing.T
	router *mux.Router
	app    *app.App
	token  string
}

func newHarness(t *testing.T, staticDir string) *harness {
	t.Helper()
	s := store.NewMemoryStore()
	a := app.New(s, nil, auth.NewService(s, []byte("routes-test"), time.Hour))

	router := mux.NewRouter()
	Routes(router, a, prefix, staticDir)

	ctx := context.Background()
	_, err := a.Auth.SignUp(ctx, "admin@example.com", "secret123", "Admin")
	require.NoError(t, err)
	sess, err := a.Auth.SignIn(ctx, "admin@example.com", "secret123")
	require.NoError(t, err)

	return &harness{t: t, router: router, app: a, token: sess.AccessToken}
}

func (h *harness) do(method, path string, body any, token string) (int, map[string]any) {
	h.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, prefix+path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.router.ServeHTTP(rr, req)

	var out map[string]any
	if rr.Body.Len() > 0 {
		require.NoError(h.t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	}
	return rr.Code, out
}

func TestPropertyLifecycle(t *testing.T) {
	h := newHarness(t, "")

	status, body := h.do(http.MethodPost, "/properties/admin", map[string]any{
		"title":     "Test Villa",
		"price":     4200000,
		"published": true,
	}, h.token)
	require.Equal(t, http.StatusCreated, status)
	created := body["property"].(map[string]any)
	assert.Equal(t, "test-villa", created["slug"])
	assert.Equal(t, true, created["published"])
	id := created["id"].(string)
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	status, body = h.do(http.MethodGet, "/properties", nil, "")
	require.Equal(t, http.StatusOK, status)
	list := body["properties"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].(map[string]any)["id"])

	status, body = h.do(http.MethodGet, "/properties/test-villa", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, id, body["property"].(map[string]any)["id"])

	status, body = h.do(http.MethodPut, "/properties/admin/"+id, map[string]any{"title": "Test Villa Two"}, h.token)
	require.Equal(t, http.StatusOK, status)
	updated := body["property"].(map[string]any)
	assert.Equal(t, "test-villa-two", updated["slug"])
	assert.Equal(t, created["createdAt"], updated["createdAt"])

	status, body = h.do(http.MethodDelete, "/properties/admin/"+id, nil, h.token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	status, body = h.do(http.MethodGet, "/properties/"+id, nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.NotEmpty(t, body["error"])

	status, _ = h.do(http.MethodDelete, "/properties/admin/"+id, nil, h.token)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = h.do(http.MethodPut, "/properties/admin/"+id, map[string]any{"title": "x"}, h.token)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUnpublishedHiddenFromPublicList(t *testing.T) {
	h := newHarness(t, "")

	status, _ := h.do(http.MethodPost, "/blog/admin", map[string]any{"title": "Draft", "published": false}, h.token)
	require.Equal(t, http.StatusCreated, status)
	status, _ = h.do(http.MethodPost, "/blog/admin", map[string]any{"title": "Live", "published": true}, h.token)
	require.Equal(t, http.StatusCreated, status)

	_, body := h.do(http.MethodGet, "/blog", nil, "")
	posts := body["posts"].([]any)
	require.Len(t, posts, 1)
	assert.Equal(t, "Live", posts[0].(map[string]any)["title"])

	_, body = h.do(http.MethodGet, "/blog/admin", nil, h.token)
	assert.Len(t, body["posts"].([]any), 2)
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	h := newHarness(t, "")

	for _, path := range []string{"/properties", "/testimonials", "/recognitions", "/partnerships", "/blog"} {
		for _, token := range []string{"", "garbage"} {
			status, body := h.do(http.MethodPost, path+"/admin", map[string]any{"title": "x"}, token)
			assert.Equal(t, http.StatusUnauthorized, status, path)
			assert.NotEmpty(t, body["error"], path)

			status, _ = h.do(http.MethodGet, path+"/admin", nil, token)
			assert.Equal(t, http.StatusUnauthorized, status, path)
		}
		status, _ := h.do(http.MethodGet, path, nil, "anon-key")
		assert.Equal(t, http.StatusOK, status, path)
	}

	status, _ := h.do(http.MethodGet, "/favorites", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = h.do(http.MethodGet, "/profile", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestSeedAll(t *testing.T) {
	h := newHarness(t, "")

	status, body := h.do(http.MethodGet, "/seed-all", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	seeded := body["seeded"].(map[string]any)
	assert.EqualValues(t, 4, seeded[app.ResourceProperty])
	assert.EqualValues(t, 3, seeded[app.ResourceBlogPost])

	_, body = h.do(http.MethodGet, "/testimonials", nil, "")
	assert.NotEmpty(t, body["testimonials"])

	_, body = h.do(http.MethodGet, "/seed-all", nil, "")
	assert.EqualValues(t, 0, body["seeded"].(map[string]any)[app.ResourceProperty])
}

func TestSignUpAndLogin(t *testing.T) {
	h := newHarness(t, "")

	status, _ := h.do(http.MethodPost, "/signup", map[string]any{"email": "admin@example.com", "password": "secret123"}, "")
	assert.Equal(t, http.StatusConflict, status)
	status, _ = h.do(http.MethodPost, "/signup", map[string]any{"email": "not-an-email", "password": "secret123"}, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = h.do(http.MethodPost, "/login", map[string]any{"email": "admin@example.com", "password": "wrong-pass"}, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := h.do(http.MethodPost, "/login", map[string]any{"email": "admin@example.com", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, status)
	token := body["accessToken"].(string)

	status, body = h.do(http.MethodGet, "/profile", nil, token)
	require.Equal(t, http.StatusOK, status)
	user := body["user"].(map[string]any)
	assert.Equal(t, "admin@example.com", user["email"])
	assert.NotContains(t, user, "passwordHash")
}

func TestStaticFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>shell</html>"), 0o644))
	h := newHarness(t, dir)

	req := httptest.NewRequest(http.MethodGet, "/properties/some-villa", nil)
	rr := httptest.NewRecorder()
	h.router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "shell")

	status, _ := h.do(http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, status)
}

func TestUnmatchedAPIPathsAnswerJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>shell</html>"), 0o644))

	for _, staticDir := range []string{"", dir} {
		h := newHarness(t, staticDir)

		status, body := h.do(http.MethodGet, "/nope", nil, "")
		assert.Equal(t, http.StatusNotFound, status)
		assert.NotEmpty(t, body["error"])

		status, body = h.do(http.MethodGet, "/properties/admin/abc", nil, h.token)
		assert.Equal(t, http.StatusMethodNotAllowed, status)
		assert.NotEmpty(t, body["error"])

		status, body = h.do(http.MethodGet, "/favorites/abc", nil, h.token)
		assert.Equal(t, http.StatusMethodNotAllowed, status)
		assert.NotEmpty(t, body["error"])
	}
}

func TestAdminTitleDoesNotShadowAdminRoute(t *testing.T) {
	h := newHarness(t, "")

	status, body := h.do(http.MethodPost, "/properties/admin", map[string]any{"title": "Admin", "published": true}, h.token)
	require.Equal(t, http.StatusCreated, status)
	slug := body["property"].(map[string]any)["slug"].(string)
	assert.NotEqual(t, "admin", slug)

	status, body = h.do(http.MethodGet, "/properties/"+slug, nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Admin", body["property"].(map[string]any)["title"])
}
