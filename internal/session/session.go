// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session manages the authenticated user session issued by the
// identity provider: sign-in, sign-out, the persisted current session,
// and a subscription for auth-state changes. Auth failures degrade to
// the unauthenticated state instead of surfacing on the user-facing
// error channel.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docmerge/internal/httputil"
	"github.com/pdiddy/docmerge/pkg/types"
)

const (
	tokenPath  = "/auth/v1/token?grant_type=password"
	logoutPath = "/auth/v1/logout"
)

// ErrNoSession indicates there is no current authenticated session.
var ErrNoSession = errors.New("not signed in")

// Client talks to the identity provider and persists the current
// session so separate invocations share it.
type Client struct {
	cfg  types.AuthConfig
	http *http.Client
	path string

	watchers *Watchers
}

// NewClient returns an identity provider client. An empty SessionFile
// config places the session under the user config directory.
func NewClient(cfg types.AuthConfig) (*Client, error) {
	path := cfg.SessionFile
	if path == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolving config directory: %w", err)
		}
		path = filepath.Join(base, "docmerge", "session.yaml")
	}
	return &Client{
		cfg:      cfg,
		http:     &http.Client{Timeout: cfg.Timeout},
		path:     path,
		watchers: NewWatchers(),
	}, nil
}

// Watch subscribes fn to auth-state changes. See Watchers.Subscribe.
func (c *Client) Watch(fn func(Event, *types.Session)) (unsubscribe func()) {
	return c.watchers.Subscribe(fn)
}

// Current returns the persisted session, or ErrNoSession when absent
// or expired. An expired session file is removed.
func (c *Client) Current() (*types.Session, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("reading session file: %w", err)
	}

	var s types.Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing session file: %w", err)
	}
	if s.Expired() {
		os.Remove(c.path)
		return nil, ErrNoSession
	}
	return &s, nil
}

// tokenResponse is the identity provider's password-grant reply.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// SignIn exchanges credentials for a session, persists it, and notifies
// watchers.
func (c *Client) SignIn(ctx context.Context, email, password string) (*types.Session, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("encoding credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+tokenPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuthHeaders(req, "")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sign-in request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("identity provider: %s", httputil.ErrorMessage(resp))
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("parsing sign-in response: %w", err)
	}

	user, err := userFromToken(tr.AccessToken)
	if err != nil {
		// Fall back to the response's user object when the token
		// claims are unreadable.
		user = types.User{ID: tr.User.ID, Email: tr.User.Email}
	}
	if user.ID == "" {
		return nil, fmt.Errorf("sign-in response carries no user identity")
	}

	s := &types.Session{
		User:         user,
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
	}
	if tr.ExpiresIn > 0 {
		s.ExpiresAt = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}

	if err := c.persist(s); err != nil {
		return nil, err
	}
	c.watchers.Notify(EventSignedIn, s)
	return s, nil
}

// SignOut revokes the session with the provider and clears the local
// session. Revocation failures are logged to stderr, not returned: the
// local state still degrades to unauthenticated.
func (c *Client) SignOut(ctx context.Context) error {
	s, err := c.Current()
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return nil
		}
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+logoutPath, nil)
	if err == nil {
		c.setAuthHeaders(req, s.AccessToken)
		if resp, doErr := c.http.Do(req); doErr != nil {
			fmt.Fprintf(os.Stderr, "warning: sign-out request failed: %v\n", doErr)
		} else {
			httputil.Drain(resp)
		}
	}

	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file: %w", err)
	}
	c.watchers.Notify(EventSignedOut, nil)
	return nil
}

func (c *Client) setAuthHeaders(req *http.Request, bearer string) {
	if c.cfg.AnonKey != "" {
		req.Header.Set("apikey", c.cfg.AnonKey)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
}

func (c *Client) persist(s *types.Session) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// userFromToken extracts the user identity from the access token's
// claims. The token is not signature-verified: the client does not hold
// the provider's signing secret, and the claims only label local state.
func userFromToken(token string) (types.User, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return types.User{}, fmt.Errorf("parsing access token: %w", err)
	}

	user := types.User{}
	if sub, err := claims.GetSubject(); err == nil {
		user.ID = sub
	}
	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}
	if user.ID == "" {
		return types.User{}, errors.New("access token carries no subject")
	}
	return user, nil
}
