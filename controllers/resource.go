package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/dcode-github/luxury_realty/backend/cache"
	"github.com/dcode-github/luxury_realty/backend/repository"
	"github.com/dcode-github/luxury_realty/backend/utils"
)

// Names are the JSON envelope keys and the label used in error messages.
type Names struct {
	Singular string
	Plural   string
	Label    string
}

// ResourceController serves one record type: public reads plus admin writes.
type ResourceController[T any, PT repository.Entity[T]] struct {
	repo  *repository.Repository[T, PT]
	cache cache.Cache
	names Names
}

func NewResourceController[T any, PT repository.Entity[T]](
	repo *repository.Repository[T, PT],
	c cache.Cache,
	names Names,
) *ResourceController[T, PT] {
	return &ResourceController[T, PT]{repo: repo, cache: c, names: names}
}

// List serves published records. Query: featured, category, limit.
func (c *ResourceController[T, PT]) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	// generation is read before the store so a write landing mid-read bumps it
	gen := c.cache.Generation(r.Context(), c.repo.Resource())
	cacheKey := cache.Key(c.repo.Resource(), gen, query)
	if cached, ok := c.cache.Get(r.Context(), cacheKey); ok {
		utils.RespondWithRawJSON(w, http.StatusOK, cached)
		return
	}

	q := parseListQuery(query)
	q.PublishedOnly = true

	records, err := c.repo.List(r.Context(), q)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch "+c.names.Plural, err)
		return
	}

	body, err := json.Marshal(map[string]any{c.names.Plural: records})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to encode response", err)
		return
	}
	c.cache.Set(r.Context(), cacheKey, body)

	utils.RespondWithRawJSON(w, http.StatusOK, body)
}

// Get looks the record up by id first, then by slug.
func (c *ResourceController[T, PT]) Get(w http.ResponseWriter, r *http.Request) {
	idOrSlug := mux.Vars(r)["id"]

	rec, err := c.repo.GetByID(r.Context(), idOrSlug)
	if err == nil && rec == nil {
		rec, err = c.repo.GetBySlug(r.Context(), idOrSlug)
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch "+c.names.Singular, err)
		return
	}
	if rec == nil {
		utils.RespondError(w, http.StatusNotFound, c.names.Label+" not found", nil)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{c.names.Singular: rec})
}

// AdminList serves every record, published or not.
func (c *ResourceController[T, PT]) AdminList(w http.ResponseWriter, r *http.Request) {
	records, err := c.repo.GetAll(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch "+c.names.Plural, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{c.names.Plural: records})
}

func (c *ResourceController[T, PT]) Create(w http.ResponseWriter, r *http.Request) {
	rec := PT(new(T))
	if err := json.NewDecoder(r.Body).Decode(rec); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	created, err := c.repo.Create(r.Context(), rec)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to create "+c.names.Singular, err)
		return
	}
	c.cache.Invalidate(r.Context(), c.repo.Resource())

	utils.Logger.Infof("Created %s %s", c.repo.Resource(), created.Meta().ID)
	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{c.names.Singular: created})
}

func (c *ResourceController[T, PT]) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var updateData map[string]any
	if err := json.NewDecoder(r.Body).Decode(&updateData); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid update data", err)
		return
	}

	updated, err := c.repo.Update(r.Context(), id, updateData)
	if errors.Is(err, repository.ErrInvalidPatch) {
		utils.RespondError(w, http.StatusBadRequest, "Invalid update data", err)
		return
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to update "+c.names.Singular, err)
		return
	}
	if updated == nil {
		utils.RespondError(w, http.StatusNotFound, c.names.Label+" not found", nil)
		return
	}
	c.cache.Invalidate(r.Context(), c.repo.Resource())

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{c.names.Singular: updated})
}

func (c *ResourceController[T, PT]) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ok, err := c.repo.Delete(r.Context(), id)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to delete "+c.names.Singular, err)
		return
	}
	if !ok {
		utils.RespondError(w, http.StatusNotFound, c.names.Label+" not found", nil)
		return
	}
	c.cache.Invalidate(r.Context(), c.repo.Resource())

	utils.Logger.Infof("Deleted %s %s", c.repo.Resource(), id)
	utils.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// parseListQuery ignores malformed values rather than failing the request.
func parseListQuery(query map[string][]string) repository.Query {
	var q repository.Query

	get := func(key string) string {
		if v := query[key]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}

	if v := get("featured"); v != "" {
		b, err := strconv.ParseBool(strings.ToLower(v))
		if err == nil {
			q.Featured = &b
		} else {
			utils.Logger.Debugf("Invalid boolean value for featured: %s", v)
		}
	}
	q.Category = get("category")
	if v := get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil && n > 0 {
			q.Limit = n
		} else {
			utils.Logger.Debugf("Invalid limit: %s", v)
		}
	}
	return q
}
