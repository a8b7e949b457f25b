package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcode-github/luxury_realty/backend/middleware"
	"github.com/dcode-github/luxury_realty/backend/models"
	"github.com/dcode-github/luxury_realty/backend/repository"
	"github.com/dcode-github/luxury_realty/backend/store"
)

type directory map[string]*models.User

func (d directory) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return d[email], nil
}

type accountFixture struct {
	router     *mux.Router
	properties *repository.Repository[models.Property, *models.Property]
	users      directory
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()
	s := store.NewMemoryStore()
	f := &accountFixture{
		properties: repository.New[models.Property](s, "property"),
		users: directory{
			"ann@example.com": {ID: "ann", Email: "ann@example.com", FullName: "Ann"},
			"bob@example.com": {ID: "bob", Email: "bob@example.com", FullName: "Bob"},
		},
	}

	favCtrl := NewFavoriteController(s, f.properties)
	recCtrl := NewRecommendationController(s, f.users, f.properties)
	tick := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	recCtrl.now = func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}

	r := mux.NewRouter()
	r.HandleFunc("/favorites", favCtrl.GetFavorites).Methods(http.MethodGet)
	r.HandleFunc("/favorites/{propertyId}", favCtrl.AddFavorite).Methods(http.MethodPost)
	r.HandleFunc("/favorites/{propertyId}", favCtrl.DeleteFavorite).Methods(http.MethodDelete)
	r.HandleFunc("/recommendations", recCtrl.GetRecommendations).Methods(http.MethodGet)
	r.HandleFunc("/recommendations", recCtrl.Recommend).Methods(http.MethodPost)
	f.router = r
	return f
}

func (f *accountFixture) call(as, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if u := f.users[as+"@example.com"]; u != nil {
		req = req.WithContext(middleware.WithUser(req.Context(), u))
	}
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func (f *accountFixture) property(t *testing.T, title string) *models.Property {
	t.Helper()
	p, err := f.properties.Create(context.Background(), &models.Property{Title: title})
	require.NoError(t, err)
	return p
}

func TestFavorites(t *testing.T) {
	f := newAccountFixture(t)
	villa := f.property(t, "Villa")
	loft := f.property(t, "Loft")

	assert.Equal(t, http.StatusUnauthorized, f.call("", http.MethodGet, "/favorites", "").Code)
	assert.Equal(t, http.StatusNotFound, f.call("ann", http.MethodPost, "/favorites/missing", "").Code)

	require.Equal(t, http.StatusCreated, f.call("ann", http.MethodPost, "/favorites/"+villa.ID, "").Code)
	require.Equal(t, http.StatusCreated, f.call("ann", http.MethodPost, "/favorites/"+loft.ID, "").Code)
	assert.Equal(t, http.StatusConflict, f.call("ann", http.MethodPost, "/favorites/"+villa.ID, "").Code)

	// deleted properties drop out of the list
	_, err := f.properties.Delete(context.Background(), loft.ID)
	require.NoError(t, err)

	rr := f.call("ann", http.MethodGet, "/favorites", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var out struct {
		Favorites []models.Property `json:"favorites"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Len(t, out.Favorites, 1)
	assert.Equal(t, villa.ID, out.Favorites[0].ID)

	// another user's list is separate
	rr = f.call("bob", http.MethodGet, "/favorites", "")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Empty(t, out.Favorites)

	assert.Equal(t, http.StatusOK, f.call("ann", http.MethodDelete, "/favorites/"+villa.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, f.call("ann", http.MethodDelete, "/favorites/"+villa.ID, "").Code)
}

func TestRecommendations(t *testing.T) {
	f := newAccountFixture(t)
	villa := f.property(t, "Villa")
	loft := f.property(t, "Loft")

	cases := []struct {
		name string
		body string
		want int
	}{
		{"bad json", `{`, http.StatusBadRequest},
		{"bad email", `{"propertyId":"` + villa.ID + `","toEmail":"bob"}`, http.StatusBadRequest},
		{"unknown property", `{"propertyId":"nope","toEmail":"bob@example.com"}`, http.StatusNotFound},
		{"unknown user", `{"propertyId":"` + villa.ID + `","toEmail":"carl@example.com"}`, http.StatusNotFound},
		{"ok", `{"propertyId":"` + villa.ID + `","toEmail":"bob@example.com","message":"Look!"}`, http.StatusCreated},
		{"ok again", `{"propertyId":"` + loft.ID + `","toEmail":"bob@example.com"}`, http.StatusCreated},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := f.call("ann", http.MethodPost, "/recommendations", tc.body)
			assert.Equal(t, tc.want, rr.Code, rr.Body.String())
		})
	}

	rr := f.call("bob", http.MethodGet, "/recommendations", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var out struct {
		Recommendations []RecommendedProperty `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Len(t, out.Recommendations, 2)
	assert.Equal(t, loft.ID, out.Recommendations[0].Property.ID)
	assert.Equal(t, "Ann", out.Recommendations[1].FromName)
	assert.Equal(t, "Look!", out.Recommendations[1].Message)

	rr = f.call("ann", http.MethodGet, "/recommendations", "")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Empty(t, out.Recommendations)
}
