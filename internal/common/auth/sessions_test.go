package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathmatch-workers/internal/models"
)

func setupSessionStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewSessionStore(client, time.Hour, 30*24*time.Hour), mr
}

func TestSessionCreateAndValidate(t *testing.T) {
	store, _ := setupSessionStore(t)
	ctx := context.Background()

	session, err := store.Create(ctx, "user-001", "ab123", models.RoleMentee)
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.NotEqual(t, session.AccessToken, session.RefreshToken)

	loaded, err := store.Validate(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-001", loaded.UserID)
	assert.Equal(t, "ab123", loaded.NetID)
	assert.Equal(t, models.RoleMentee, loaded.Role)
}

func TestSessionValidateUnknownToken(t *testing.T) {
	store, _ := setupSessionStore(t)

	_, err := store.Validate(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionAccessTokenExpires(t *testing.T) {
	store, mr := setupSessionStore(t)
	ctx := context.Background()

	session, err := store.Create(ctx, "user-001", "ab123", models.RoleMentor)
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = store.Validate(ctx, session.AccessToken)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Refresh token outlives the access token.
	refreshed, err := store.Refresh(ctx, session.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-001", refreshed.UserID)
}

func TestSessionRefreshRotatesTokens(t *testing.T) {
	store, _ := setupSessionStore(t)
	ctx := context.Background()

	session, err := store.Create(ctx, "user-001", "ab123", models.RoleMentee)
	require.NoError(t, err)

	refreshed, err := store.Refresh(ctx, session.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, session.AccessToken, refreshed.AccessToken)
	assert.NotEqual(t, session.RefreshToken, refreshed.RefreshToken)

	// Old pair is dead, new pair works.
	_, err = store.Validate(ctx, session.AccessToken)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = store.Refresh(ctx, session.RefreshToken)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = store.Validate(ctx, refreshed.AccessToken)
	assert.NoError(t, err)
}

func TestSessionRevoke(t *testing.T) {
	store, _ := setupSessionStore(t)
	ctx := context.Background()

	session, err := store.Create(ctx, "user-001", "ab123", models.RoleMentee)
	require.NoError(t, err)

	require.NoError(t, store.Revoke(ctx, session.AccessToken, session.RefreshToken))

	_, err = store.Validate(ctx, session.AccessToken)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = store.Refresh(ctx, session.RefreshToken)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Revoking again is a no-op.
	assert.NoError(t, store.Revoke(ctx, session.AccessToken, session.RefreshToken))
	assert.NoError(t, store.Revoke(ctx, "", ""))
}

func TestSessionsAreIndependent(t *testing.T) {
	store, _ := setupSessionStore(t)
	ctx := context.Background()

	first, err := store.Create(ctx, "user-001", "ab123", models.RoleMentee)
	require.NoError(t, err)
	second, err := store.Create(ctx, "user-002", "cd456", models.RoleMentor)
	require.NoError(t, err)

	require.NoError(t, store.Revoke(ctx, first.AccessToken, first.RefreshToken))

	loaded, err := store.Validate(ctx, second.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-002", loaded.UserID)
}
