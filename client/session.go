package client

import (
	"context"
	"sync"

	"github.com/dcode-github/luxury_realty/backend/models"
	"github.com/dcode-github/luxury_realty/backend/utils"
)

type State int

const (
	Loading State = iota
	Authenticated
	Anonymous
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	}
	return "unknown"
}

// Session tracks who is signed in. Every change passes through Loading and ends in
// Authenticated or Anonymous; failures are logged and leave no user. Nothing is
// retried.
type Session struct {
	client *Client

	mu        sync.Mutex
	state     State
	user      *models.User
	listeners []func(State, *models.User)
}

func NewSession(c *Client) *Session {
	return &Session{client: c, state: Loading}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// SignedIn suits site.NewNavigator's guard.
func (s *Session) SignedIn() bool {
	return s.State() == Authenticated
}

func (s *Session) OnChange(fn func(State, *models.User)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Start restores a session from a stored token; an empty token means anonymous.
func (s *Session) Start(ctx context.Context, token string) {
	s.set(Loading, nil)
	if token == "" {
		s.client.SetToken("")
		s.set(Anonymous, nil)
		return
	}
	s.client.SetToken(token)
	_ = s.loadProfile(ctx)
}

func (s *Session) SignIn(ctx context.Context, email, password string) error {
	s.set(Loading, nil)

	res, err := s.client.SignIn(ctx, email, password)
	if err != nil {
		utils.Logger.WithError(err).Warn("Sign-in failed")
		s.client.SetToken("")
		s.set(Anonymous, nil)
		return err
	}
	s.client.SetToken(res.AccessToken)
	return s.loadProfile(ctx)
}

// SignUp registers and then signs in with the same credentials.
func (s *Session) SignUp(ctx context.Context, email, password, fullName string) error {
	s.set(Loading, nil)

	if _, err := s.client.SignUp(ctx, email, password, fullName); err != nil {
		utils.Logger.WithError(err).Warn("Sign-up failed")
		s.set(Anonymous, nil)
		return err
	}
	return s.SignIn(ctx, email, password)
}

func (s *Session) SignOut() {
	s.client.SetToken("")
	s.set(Anonymous, nil)
}

// UpdateProfile saves the changed fields. On failure the stored profile is
// fetched again, so the session ends up holding whatever the backend has.
func (s *Session) UpdateProfile(ctx context.Context, fullName, phone *string) error {
	s.set(Loading, s.User())

	user, err := s.client.UpdateProfile(ctx, fullName, phone)
	if err != nil {
		utils.Logger.WithError(err).Warn("Profile update failed")
		_ = s.loadProfile(ctx)
		return err
	}
	s.set(Authenticated, user)
	return nil
}

func (s *Session) loadProfile(ctx context.Context) error {
	user, err := s.client.Profile(ctx)
	if err != nil {
		utils.Logger.WithError(err).Warn("Fetching profile failed")
		s.client.SetToken("")
		s.set(Anonymous, nil)
		return err
	}
	s.set(Authenticated, user)
	return nil
}

func (s *Session) set(state State, user *models.User) {
	s.mu.Lock()
	s.state = state
	s.user = user
	listeners := append([]func(State, *models.User){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(state, user)
	}
}
