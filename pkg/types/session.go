// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// User identifies the authenticated account a session belongs to.
type User struct {
	// ID is the identity provider's stable user identifier.
	ID string `json:"id" yaml:"id"`

	// Email is the account email address.
	Email string `json:"email" yaml:"email"`
}

// Session holds the tokens and identity issued by the identity provider.
type Session struct {
	User User `json:"user" yaml:"user"`

	// AccessToken is the bearer token presented to collaborator services.
	AccessToken string `json:"access_token" yaml:"access_token"`

	// RefreshToken is held for future re-issuance; docmerge does not
	// refresh expired sessions itself.
	RefreshToken string `json:"refresh_token,omitempty" yaml:"refresh_token,omitempty"`

	// ExpiresAt is the access token expiry time.
	ExpiresAt time.Time `json:"expires_at" yaml:"expires_at"`
}

// Expired reports whether the session's access token has lapsed.
func (s *Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}
