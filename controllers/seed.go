package controllers

import (
	"context"
	"net/http"

	"github.com/dcode-github/luxury_realty/backend/utils"
)

type Seeder interface {
	SeedAll(ctx context.Context) (map[string]int, error)
}

// SeedAll handles GET /seed-all. It is deliberately unauthenticated; seeding is
// a no-op for every resource that already has records.
func SeedAll(s Seeder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := s.SeedAll(r.Context())
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to seed data", err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"seeded":  counts,
		})
	}
}

// Health handles GET /health.
func Health(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	utils.RespondError(w, http.StatusNotFound, "Not found", nil)
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	utils.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
}
