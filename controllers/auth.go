package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/dcode-github/luxury_realty/backend/auth"
	"github.com/dcode-github/luxury_realty/backend/middleware"
	"github.com/dcode-github/luxury_realty/backend/utils"
)

var validate = validator.New()

type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthController struct {
	svc *auth.Service
}

func NewAuthController(svc *auth.Service) *AuthController {
	return &AuthController{svc: svc}
}

// POST /signup
func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request payload", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "A valid email and a password of at least 6 characters are required", err)
		return
	}

	user, err := c.svc.SignUp(r.Context(), req.Email, req.Password, req.FullName)
	if errors.Is(err, auth.ErrEmailExists) {
		utils.RespondError(w, http.StatusConflict, "Email already exists", err)
		return
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to create user", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"user": user.Public()})
}

// POST /login
func (c *AuthController) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request payload", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Email and password are required", err)
		return
	}

	sess, err := c.svc.SignIn(r.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid credentials", err)
		return
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to sign in", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, sess)
}

// GET /profile
func (c *AuthController) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"user": user.Public()})
}

// PUT /profile
func (c *AuthController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var upd auth.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	updated, err := c.svc.UpdateProfile(r.Context(), user.ID, upd)
	if errors.Is(err, auth.ErrUnknownUser) {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to update profile", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"user": updated.Public()})
}
