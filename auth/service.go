// Package auth issues and resolves bearer tokens for admin and account routes.
// Users live in the same key-value store as the content records.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dcode-github/luxury_realty/backend/models"
	"github.com/dcode-github/luxury_realty/backend/store"
	"github.com/dcode-github/luxury_realty/backend/utils"
)

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownUser        = errors.New("token does not resolve to a user")
)

const (
	userPrefix  = "user:"
	emailPrefix = "user_email:"
)

// Session is what a successful sign-in hands back to the client.
type Session struct {
	AccessToken string      `json:"accessToken"`
	ExpiresIn   int         `json:"expiresIn"`
	User        models.User `json:"user"`
}

// ProfileUpdate holds the user-editable fields; nil means unchanged.
type ProfileUpdate struct {
	FullName *string `json:"fullName"`
	Phone    *string `json:"phone"`
}

type emailIndex struct {
	ID string `json:"id"`
}

type Service struct {
	store store.Store
	key   []byte
	ttl   time.Duration
	now   func() time.Time
}

func NewService(s store.Store, key []byte, ttl time.Duration) *Service {
	return &Service{store: s, key: key, ttl: ttl, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) SignUp(ctx context.Context, email, password, fullName string) (*models.User, error) {
	email = normalizeEmail(email)

	if _, err := s.store.Get(ctx, emailPrefix+email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.putUser(ctx, user); err != nil {
		return nil, err
	}

	idx, _ := json.Marshal(emailIndex{ID: user.ID})
	if err := s.store.Set(ctx, emailPrefix+email, idx); err != nil {
		return nil, fmt.Errorf("write email index: %w", err)
	}

	utils.Logger.Infof("Registered user %s", user.ID)
	return user, nil
}

func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(s.key, user.ID, user.Email, s.ttl, s.now())
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &Session{
		AccessToken: token,
		ExpiresIn:   int(s.ttl.Seconds()),
		User:        user.Public(),
	}, nil
}

// ResolveUser validates token and loads its user. A well-formed token for a
// deleted user yields ErrUnknownUser.
func (s *Service) ResolveUser(ctx context.Context, token string) (*models.User, error) {
	claims, err := utils.ValidateJWT(s.key, token)
	if err != nil {
		return nil, err
	}
	user, err := s.GetUser(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnknownUser
	}
	return user, nil
}

// FindByEmail returns nil, nil when no user registered with email.
func (s *Service) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	raw, err := s.store.Get(ctx, emailPrefix+normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	var idx emailIndex
	if err := json.Unmarshal(raw, &idx); err != nil {
		return nil, fmt.Errorf("decode email index: %w", err)
	}
	return s.GetUser(ctx, idx.ID)
}

// GetUser returns nil, nil when the user does not exist.
func (s *Service) GetUser(ctx context.Context, id string) (*models.User, error) {
	raw, err := s.store.Get(ctx, userPrefix+id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", id, err)
	}
	return &user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnknownUser
	}

	if upd.FullName != nil {
		user.FullName = *upd.FullName
	}
	if upd.Phone != nil {
		user.Phone = *upd.Phone
	}
	user.UpdatedAt = s.now().UTC()

	if err := s.putUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) putUser(ctx context.Context, user *models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.store.Set(ctx, userPrefix+user.ID, raw); err != nil {
		return fmt.Errorf("write user %s: %w", user.ID, err)
	}
	return nil
}
