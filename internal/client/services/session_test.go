package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coffeenme/coffeenme/internal/client/api"
	"github.com/coffeenme/coffeenme/internal/client/storage"
	"github.com/coffeenme/coffeenme/internal/logging"
)

func TestInitialize_NoStoredToken_Guest(t *testing.T) {
	kv := setupKV(t)
	f := &fakeAPI{}
	s := NewSession(f, kv, logging.NopLogger{})

	require.NoError(t, s.Initialize(context.Background()))

	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.CurrentUser())
	assert.Equal(t, 0, f.MeCalls)
}

func TestInitialize_ValidStoredToken_Authenticated(t *testing.T) {
	kv := setupKV(t)
	setKey(t, kv, storage.KeyToken, "tok-1")
	f := &fakeAPI{MeRet: plainUser("dana")}
	s := NewSession(f, kv, logging.NopLogger{})

	require.NoError(t, s.Initialize(context.Background()))

	require.True(t, s.IsAuthenticated())
	assert.Equal(t, "dana", s.CurrentUser().Username)
	assert.Equal(t, "tok-1", f.currentToken())
	assert.Equal(t, "tok-1", getKey(t, kv, storage.KeyToken))
}

func TestInitialize_RejectedToken_PurgedAndGuest(t *testing.T) {
	kv := setupKV(t)
	setKey(t, kv, storage.KeyToken, "stale")
	f := &fakeAPI{MeErr: api.ErrUnauthorized}
	s := NewSession(f, kv, logging.NopLogger{})

	// Silent recovery: no error escapes.
	require.NoError(t, s.Initialize(context.Background()))

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, f.currentToken())

	raw, err := kv.Get(context.Background(), storage.KeyToken)
	require.NoError(t, err)
	assert.Nil(t, raw) // token removed from durable storage
}

func TestLogin_Success(t *testing.T) {
	kv := setupKV(t)
	f := &fakeAPI{ObtainTokenRet: "tok-9", MeRet: plainUser("dana")}
	s := newGuestSession(t, f, kv)

	require.NoError(t, s.Login(context.Background(), "dana", "pw"))

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "dana", f.LastLoginUser)
	assert.Equal(t, "tok-9", f.currentToken())
	assert.Equal(t, "tok-9", getKey(t, kv, storage.KeyToken))
}

func TestLogin_InvalidCredentials_StaysGuest(t *testing.T) {
	kv := setupKV(t)
	f := &fakeAPI{ObtainTokenErr: api.ErrInvalidCredentials}
	s := newGuestSession(t, f, kv)

	err := s.Login(context.Background(), "dana", "wrong")

	require.ErrorIs(t, err, api.ErrInvalidCredentials)
	assert.False(t, s.IsAuthenticated())

	raw, gerr := kv.Get(context.Background(), storage.KeyToken)
	require.NoError(t, gerr)
	assert.Nil(t, raw)
}

func TestLogin_ProfileFetchFails_TokenPurged(t *testing.T) {
	kv := setupKV(t)
	f := &fakeAPI{ObtainTokenRet: "tok-9", MeErr: api.ErrUnavailable}
	s := newGuestSession(t, f, kv)

	err := s.Login(context.Background(), "dana", "pw")

	// The login fails as a whole: guest session, no token anywhere.
	require.ErrorIs(t, err, ErrProfileFetch)
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, f.currentToken())

	raw, gerr := kv.Get(context.Background(), storage.KeyToken)
	require.NoError(t, gerr)
	assert.Nil(t, raw)
}

func TestLogin_WhileAuthenticated_ReplacesIdentity(t *testing.T) {
	kv := setupKV(t)
	f := &fakeAPI{}
	s := newAuthSession(t, f, kv, plainUser("dana"))

	f.ObtainTokenRet = "tok-2"
	f.MeRet = plainUser("erin")
	require.NoError(t, s.Login(context.Background(), "erin", "pw"))

	assert.Equal(t, "erin", s.CurrentUser().Username)
	assert.Equal(t, "tok-2", getKey(t, kv, storage.KeyToken))
}

func TestLogout_Idempotent(t *testing.T) {
	kv := setupKV(t)
	f := &fakeAPI{ObtainTokenRet: "tok-9", MeRet: plainUser("dana")}
	s := newGuestSession(t, f, kv)
	require.NoError(t, s.Login(context.Background(), "dana", "pw"))

	s.Logout(context.Background())
	s.Logout(context.Background()) // second call is a no-op

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, f.currentToken())

	raw, err := kv.Get(context.Background(), storage.KeyToken)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestIsStaff(t *testing.T) {
	kv := setupKV(t)
	f := &fakeAPI{}
	s := newAuthSession(t, f, kv, staffUser("root"))
	assert.True(t, s.IsStaff())

	s.Logout(context.Background())
	assert.False(t, s.IsStaff())
}
