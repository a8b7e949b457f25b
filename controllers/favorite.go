package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dcode-github/luxury_realty/backend/middleware"
	"github.com/dcode-github/luxury_realty/backend/models"
	"github.com/dcode-github/luxury_realty/backend/repository"
	"github.com/dcode-github/luxury_realty/backend/store"
	"github.com/dcode-github/luxury_realty/backend/utils"
)

const favoritesPrefix = "favorites_"

type FavoriteController struct {
	store      store.Store
	properties *repository.Repository[models.Property, *models.Property]
}

func NewFavoriteController(s store.Store, properties *repository.Repository[models.Property, *models.Property]) *FavoriteController {
	return &FavoriteController{store: s, properties: properties}
}

// GET /favorites
func (c *FavoriteController) GetFavorites(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	favs, err := c.load(r.Context(), user.ID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch favorite properties", err)
		return
	}

	properties := make([]*models.Property, 0, len(favs.PropertyIDs))
	for _, id := range favs.PropertyIDs {
		p, err := c.properties.GetByID(r.Context(), id)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch favorite properties", err)
			return
		}
		if p == nil {
			// property deleted since it was saved
			continue
		}
		properties = append(properties, p)
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"favorites": properties})
}

// POST /favorites/{propertyId}
func (c *FavoriteController) AddFavorite(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	propertyID := mux.Vars(r)["propertyId"]

	p, err := c.properties.GetByID(r.Context(), propertyID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to check property", err)
		return
	}
	if p == nil {
		utils.RespondError(w, http.StatusNotFound, "Property not found", nil)
		return
	}

	favs, err := c.load(r.Context(), user.ID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to check favorites", err)
		return
	}
	if favs.Contains(propertyID) {
		utils.RespondError(w, http.StatusConflict, "Property is already in favorites", nil)
		return
	}

	favs.PropertyIDs = append(favs.PropertyIDs, propertyID)
	if err := c.save(r.Context(), favs); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to add property to favorites", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"favorites": favs})
}

// DELETE /favorites/{propertyId}
func (c *FavoriteController) DeleteFavorite(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	propertyID := mux.Vars(r)["propertyId"]

	favs, err := c.load(r.Context(), user.ID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to check favorites", err)
		return
	}
	if !favs.Remove(propertyID) {
		utils.RespondError(w, http.StatusNotFound, "Favorite not found", nil)
		return
	}
	if err := c.save(r.Context(), favs); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to remove property from favorites", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"favorites": favs})
}

func (c *FavoriteController) load(ctx context.Context, userID string) (*models.Favorites, error) {
	favs := &models.Favorites{UserID: userID, PropertyIDs: []string{}}

	raw, err := c.store.Get(ctx, favoritesPrefix+userID)
	if errors.Is(err, store.ErrNotFound) {
		return favs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get favorites %s: %w", userID, err)
	}
	if err := json.Unmarshal(raw, favs); err != nil {
		return nil, fmt.Errorf("decode favorites %s: %w", userID, err)
	}
	return favs, nil
}

func (c *FavoriteController) save(ctx context.Context, favs *models.Favorites) error {
	raw, err := json.Marshal(favs)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, favoritesPrefix+favs.UserID, raw)
}
