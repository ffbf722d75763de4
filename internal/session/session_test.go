// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docmerge/pkg/types"
)

// signedToken builds a real HS256 token carrying sub and email claims.
func signedToken(t *testing.T, sub, email string) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": sub, "email": email}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(types.AuthConfig{
		BaseURL:     baseURL,
		AnonKey:     "anon-key",
		SessionFile: filepath.Join(t.TempDir(), "session.yaml"),
	})
	require.NoError(t, err)
	return c
}

func newProvider(t *testing.T, status int, body any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/v1/logout" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
}

func TestSignIn(t *testing.T) {
	token := signedToken(t, "user-42", "a@example.com")
	ts := newProvider(t, http.StatusOK, map[string]any{
		"access_token":  token,
		"refresh_token": "refresh",
		"expires_in":    3600,
	})
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	s, err := c.SignIn(context.Background(), "a@example.com", "pw")
	require.NoError(t, err)

	assert.Equal(t, "user-42", s.User.ID)
	assert.Equal(t, "a@example.com", s.User.Email)
	assert.Equal(t, token, s.AccessToken)
	assert.False(t, s.Expired())

	// The session survives into a fresh lookup.
	got, err := c.Current()
	require.NoError(t, err)
	assert.Equal(t, s.User, got.User)
}

func TestSignIn_BadCredentials(t *testing.T) {
	ts := newProvider(t, http.StatusBadRequest, map[string]string{"error": "invalid login"})
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	_, err := c.SignIn(context.Background(), "a@example.com", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid login")

	_, err = c.Current()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSignIn_OpaqueTokenFallsBackToUserObject(t *testing.T) {
	ts := newProvider(t, http.StatusOK, map[string]any{
		"access_token": "not-a-jwt",
		"expires_in":   3600,
		"user":         map[string]string{"id": "user-9", "email": "b@example.com"},
	})
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	s, err := c.SignIn(context.Background(), "b@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "user-9", s.User.ID)
	assert.Equal(t, "b@example.com", s.User.Email)
}

func TestCurrent_NoSession(t *testing.T) {
	c := newTestClient(t, "http://localhost:1")
	_, err := c.Current()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestCurrent_ExpiredSessionRemoved(t *testing.T) {
	c := newTestClient(t, "http://localhost:1")
	expired := &types.Session{
		User:        types.User{ID: "u"},
		AccessToken: "tok",
		ExpiresAt:   time.Now().Add(-time.Hour),
	}
	require.NoError(t, c.persist(expired))

	_, err := c.Current()
	assert.ErrorIs(t, err, ErrNoSession)
	_, statErr := os.Stat(c.path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSignOut(t *testing.T) {
	token := signedToken(t, "user-1", "c@example.com")
	ts := newProvider(t, http.StatusOK, map[string]any{
		"access_token": token,
		"expires_in":   3600,
	})
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	_, err := c.SignIn(context.Background(), "c@example.com", "pw")
	require.NoError(t, err)

	require.NoError(t, c.SignOut(context.Background()))
	_, err = c.Current()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSignOut_NoSessionIsNoop(t *testing.T) {
	c := newTestClient(t, "http://localhost:1")
	assert.NoError(t, c.SignOut(context.Background()))
}

func TestWatchers(t *testing.T) {
	w := NewWatchers()

	var events []string
	unsub := w.Subscribe(func(e Event, s *types.Session) {
		id := ""
		if s != nil {
			id = s.User.ID
		}
		events = append(events, fmt.Sprintf("%s:%s", e, id))
	})

	w.Notify(EventSignedIn, &types.Session{User: types.User{ID: "u1"}})
	w.Notify(EventSignedOut, nil)
	unsub()
	w.Notify(EventSignedIn, &types.Session{User: types.User{ID: "u2"}})

	assert.Equal(t, []string{"SIGNED_IN:u1", "SIGNED_OUT:"}, events)
}

func TestWatchers_UnsubscribeTwice(t *testing.T) {
	w := NewWatchers()
	unsub := w.Subscribe(func(Event, *types.Session) {})
	unsub()
	unsub()
	w.Notify(EventSignedOut, nil)
}

func TestUserFromToken(t *testing.T) {
	token := signedToken(t, "abc", "d@example.com")
	user, err := userFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, types.User{ID: "abc", Email: "d@example.com"}, user)
}

func TestUserFromToken_Invalid(t *testing.T) {
	_, err := userFromToken("garbage")
	assert.Error(t, err)
}

func TestUserFromToken_MissingSubject(t *testing.T) {
	claims := jwt.MapClaims{"email": "x@example.com"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("s"))
	require.NoError(t, err)

	_, err = userFromToken(token)
	assert.Error(t, err)
}
