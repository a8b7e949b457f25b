package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dcode-github/luxury_realty/backend/models"
	"github.com/dcode-github/luxury_realty/backend/utils"
)

type contextKey string

const userKey = contextKey("user")

// Authenticator resolves a bearer token to a user.
type Authenticator interface {
	ResolveUser(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware rejects the request with 401 unless the Authorization header
// carries a bearer token that resolves to a user.
func AuthMiddleware(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenHeader := r.Header.Get("Authorization")
			if tokenHeader == "" {
				utils.Logger.Debugf("Missing Authorization header from request %s %s", r.Method, r.URL)
				utils.RespondError(w, http.StatusUnauthorized, "Missing Authorization header", nil)
				return
			}

			tokenParts := strings.Split(tokenHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" || tokenParts[1] == "" {
				utils.RespondError(w, http.StatusUnauthorized, "Invalid Authorization header format", nil)
				return
			}

			user, err := auth.ResolveUser(r.Context(), tokenParts[1])
			if err != nil || user == nil {
				utils.RespondError(w, http.StatusUnauthorized, "Unauthorized", err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the user stored by AuthMiddleware.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok && user != nil
}
