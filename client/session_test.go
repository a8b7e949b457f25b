package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcode-github/luxury_realty/backend/models"
	"github.com/dcode-github/luxury_realty/backend/site"
)

type transitions struct {
	states []State
}

func (tr *transitions) record(s State, _ *models.User) {
	tr.states = append(tr.states, s)
}

func TestSessionSignUpAndOut(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)
	c := New(srv.URL+prefix, "anon-key", srv.Client())
	sess := NewSession(c)
	assert.Equal(t, Loading, sess.State())

	tr := &transitions{}
	sess.OnChange(tr.record)

	sess.Start(ctx, "")
	assert.Equal(t, Anonymous, sess.State())
	assert.Nil(t, sess.User())

	require.NoError(t, sess.SignUp(ctx, "agent@example.com", "secret123", "Sam Agent"))
	assert.Equal(t, Authenticated, sess.State())
	require.NotNil(t, sess.User())
	assert.Equal(t, "Sam Agent", sess.User().FullName)
	assert.True(t, sess.SignedIn())
	assert.NotEmpty(t, c.Token())

	name := "Samantha Agent"
	require.NoError(t, sess.UpdateProfile(ctx, &name, nil))
	assert.Equal(t, name, sess.User().FullName)

	sess.SignOut()
	assert.Equal(t, Anonymous, sess.State())
	assert.Nil(t, sess.User())
	assert.Empty(t, c.Token())

	assert.Equal(t, []State{
		Loading, Anonymous, // Start
		Loading, Loading, Authenticated, // SignUp then SignIn
		Loading, Authenticated, // UpdateProfile
		Anonymous, // SignOut
	}, tr.states)
}

func TestSessionRestore(t *testing.T) {
	ctx := context.Background()
	srv, a := newTestServer(t)
	_, err := a.Auth.SignUp(ctx, "owner@example.com", "secret123", "Owner")
	require.NoError(t, err)
	res, err := a.Auth.SignIn(ctx, "owner@example.com", "secret123")
	require.NoError(t, err)

	sess := NewSession(New(srv.URL+prefix, "", srv.Client()))
	sess.Start(ctx, res.AccessToken)
	assert.Equal(t, Authenticated, sess.State())
	assert.Equal(t, "owner@example.com", sess.User().Email)

	sess.Start(ctx, "not-a-token")
	assert.Equal(t, Anonymous, sess.State())
	assert.Nil(t, sess.User())
}

func TestSessionFailedSignIn(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)
	c := New(srv.URL+prefix, "", srv.Client())
	sess := NewSession(c)

	err := sess.SignIn(ctx, "nobody@example.com", "wrongpass")
	require.Error(t, err)
	assert.Equal(t, Anonymous, sess.State())
	assert.Nil(t, sess.User())
	assert.Empty(t, c.Token())
}

func TestSessionGuardsNavigation(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)
	sess := NewSession(New(srv.URL+prefix, "", srv.Client()))
	sess.Start(ctx, "")

	nav := site.NewNavigator("/", nil, sess.SignedIn)
	assert.Equal(t, "Login", nav.NavigateTo("/favorites").Name)
	assert.Equal(t, site.LoginPath, nav.CurrentPath())

	require.NoError(t, sess.SignUp(ctx, "viewer@example.com", "secret123", "Viewer"))
	assert.Equal(t, "Favorites", nav.NavigateTo("/favorites").Name)
	assert.Equal(t, "/favorites", nav.CurrentPath())
}
