package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcode-github/luxury_realty/backend/store"
	"github.com/dcode-github/luxury_realty/backend/utils"
)

var testKey = []byte("test-signing-key")

func TestSignUpSignInResolve(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryStore(), testKey, time.Hour)

	user, err := svc.SignUp(ctx, "  Agent@Example.com ", "s3cret-pass", "Ava Agent")
	require.NoError(t, err)
	assert.Equal(t, "agent@example.com", user.Email)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

	sess, err := svc.SignIn(ctx, "agent@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, sess.AccessToken)
	assert.Equal(t, 3600, sess.ExpiresIn)
	assert.Empty(t, sess.User.PasswordHash)

	resolved, err := svc.ResolveUser(ctx, sess.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
	assert.Equal(t, "Ava Agent", resolved.FullName)

	found, err := svc.FindByEmail(ctx, "AGENT@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	missing, err := svc.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryStore(), testKey, time.Hour)

	_, err := svc.SignUp(ctx, "dup@example.com", "password1", "")
	require.NoError(t, err)
	_, err = svc.SignUp(ctx, "DUP@example.com", "password2", "")
	require.ErrorIs(t, err, ErrEmailExists)
}

func TestSignInFailures(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryStore(), testKey, time.Hour)
	_, err := svc.SignUp(ctx, "a@example.com", "right-password", "")
	require.NoError(t, err)

	_, err = svc.SignIn(ctx, "a@example.com", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignIn(ctx, "nobody@example.com", "right-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResolveUserRejects(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	svc := NewService(s, testKey, time.Hour)

	t.Run("Garbage", func(t *testing.T) {
		_, err := svc.ResolveUser(ctx, "not-a-jwt")
		require.Error(t, err)
	})

	t.Run("WrongKey", func(t *testing.T) {
		tok, err := utils.GenerateJWT([]byte("other-key"), "u1", "x@y.z", time.Hour, time.Now())
		require.NoError(t, err)
		_, err = svc.ResolveUser(ctx, tok)
		require.ErrorIs(t, err, utils.ErrTokenSignature)
	})

	t.Run("Expired", func(t *testing.T) {
		tok, err := utils.GenerateJWT(testKey, "u1", "x@y.z", time.Minute, time.Now().Add(-time.Hour))
		require.NoError(t, err)
		_, err = svc.ResolveUser(ctx, tok)
		require.ErrorIs(t, err, utils.ErrTokenExpired)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		tok, err := utils.GenerateJWT(testKey, "ghost", "g@y.z", time.Hour, time.Now())
		require.NoError(t, err)
		_, err = svc.ResolveUser(ctx, tok)
		require.ErrorIs(t, err, ErrUnknownUser)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryStore(), testKey, time.Hour)
	user, err := svc.SignUp(ctx, "p@example.com", "password", "Old Name")
	require.NoError(t, err)

	phone := "+1 305 555 0100"
	updated, err := svc.UpdateProfile(ctx, user.ID, ProfileUpdate{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Old Name", updated.FullName)
	assert.Equal(t, phone, updated.Phone)

	_, err = svc.UpdateProfile(ctx, "missing", ProfileUpdate{})
	require.ErrorIs(t, err, ErrUnknownUser)
}
