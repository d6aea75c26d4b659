package session

import (
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amiyamandal-dev/bizbrief/internal/domain"
)

func TestRequireAuthWithoutToken(t *testing.T) {
	s := New(NewMemoryStore(""), nil)

	redirects := 0
	s.OnAuthRequired(func() { redirects++ })

	token, err := s.RequireAuth()
	assert.Empty(t, token)
	assert.True(t, errors.Is(err, domain.ErrAuthRequired))
	assert.Equal(t, 1, redirects)
}

func TestRequireAuthWithToken(t *testing.T) {
	s := New(NewMemoryStore("tok"), nil)

	redirects := 0
	s.OnAuthRequired(func() { redirects++ })

	token, err := s.RequireAuth()
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Zero(t, redirects)
}

func TestOnUnauthorizedIsIdempotent(t *testing.T) {
	store := NewMemoryStore("tok")
	s := New(store, nil)

	invalidations := 0
	s.OnInvalidate(func() { invalidations++ })

	s.OnUnauthorized()
	s.OnUnauthorized()

	assert.Empty(t, s.Token())
	stored, _ := store.Load()
	assert.Empty(t, stored)
	assert.Equal(t, 2, invalidations)
}

func TestSetTokenAndLogout(t *testing.T) {
	store := NewMemoryStore("")
	s := New(store, nil)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"username": "asha"}).SignedString([]byte("k"))
	require.NoError(t, err)

	require.NoError(t, s.SetToken(token))
	assert.True(t, s.LoggedIn())
	assert.Equal(t, "asha", s.Username())

	invalidations := 0
	s.OnInvalidate(func() { invalidations++ })
	require.NoError(t, s.Logout())
	assert.False(t, s.LoggedIn())
	assert.Zero(t, invalidations)
}

func TestBadgerStore(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenBadgerStore(dir)
	require.NoError(t, err)

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Store("tok"))
	require.NoError(t, store.Close())

	reopened, err := OpenBadgerStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	token, err = reopened.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	require.NoError(t, reopened.Clear())
	require.NoError(t, reopened.Clear())
	token, err = reopened.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestBadgerStoreInMemory(t *testing.T) {
	store, err := OpenBadgerStore("")
	require.NoError(t, err)
	defer store.Close()

	s := New(store, nil)
	require.NoError(t, s.SetToken("tok"))

	again := New(store, nil)
	assert.Equal(t, "tok", again.Token())
}
