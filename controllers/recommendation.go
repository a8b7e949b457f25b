package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dcode-github/luxury_realty/backend/middleware"
	"github.com/dcode-github/luxury_realty/backend/models"
	"github.com/dcode-github/luxury_realty/backend/repository"
	"github.com/dcode-github/luxury_realty/backend/store"
	"github.com/dcode-github/luxury_realty/backend/utils"
)

const recommendationPrefix = "recommendation:"

type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type RecommendRequest struct {
	PropertyID string `json:"propertyId" validate:"required"`
	ToEmail    string `json:"toEmail" validate:"required,email"`
	Message    string `json:"message" validate:"max=1000"`
}

// RecommendedProperty is one inbox entry: the recommendation plus the property it points at.
type RecommendedProperty struct {
	models.Recommendation
	Property *models.Property `json:"property"`
}

type RecommendationController struct {
	store      store.Store
	users      UserDirectory
	properties *repository.Repository[models.Property, *models.Property]
	now        func() time.Time
}

func NewRecommendationController(
	s store.Store,
	users UserDirectory,
	properties *repository.Repository[models.Property, *models.Property],
) *RecommendationController {
	return &RecommendationController{store: s, users: users, properties: properties, now: time.Now}
}

// POST /recommendations
func (c *RecommendationController) Recommend(w http.ResponseWriter, r *http.Request) {
	from, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "A property id and a valid recipient email are required", err)
		return
	}

	p, err := c.properties.GetByID(r.Context(), req.PropertyID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to check property", err)
		return
	}
	if p == nil {
		utils.RespondError(w, http.StatusNotFound, "Property not found", nil)
		return
	}

	to, err := c.users.FindByEmail(r.Context(), req.ToEmail)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error checking recipient", err)
		return
	}
	if to == nil {
		utils.Logger.Debugf("Recommendation to unknown user %s", req.ToEmail)
		utils.RespondError(w, http.StatusNotFound, "No such user", nil)
		return
	}

	rec := models.Recommendation{
		ID:         uuid.New().String(),
		FromUserID: from.ID,
		FromName:   from.FullName,
		ToUserID:   to.ID,
		PropertyID: p.ID,
		Message:    req.Message,
		CreatedAt:  c.now().UTC(),
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to encode recommendation", err)
		return
	}
	if err := c.store.Set(r.Context(), recommendationPrefix+to.ID+":"+rec.ID, raw); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Insert failed", err)
		return
	}

	utils.Logger.Infof("User %s recommended property %s to %s", from.ID, p.ID, to.ID)
	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"recommendation": rec})
}

// GET /recommendations lists what others sent the caller, newest first. Entries whose
// property has since been deleted are skipped.
func (c *RecommendationController) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	entries, err := c.store.ScanPrefix(r.Context(), recommendationPrefix+user.ID+":")
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch recommendations", err)
		return
	}

	out := make([]RecommendedProperty, 0, len(entries))
	for _, e := range entries {
		var rec models.Recommendation
		if err := json.Unmarshal(e.Value, &rec); err != nil {
			utils.Logger.WithError(err).Warnf("Skipping undecodable recommendation %s", e.Key)
			continue
		}
		p, err := c.properties.GetByID(r.Context(), rec.PropertyID)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch recommendations", err)
			return
		}
		if p == nil {
			continue
		}
		out = append(out, RecommendedProperty{Recommendation: rec, Property: p})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"recommendations": out})
}
