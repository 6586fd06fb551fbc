package models

import "time"

// Session is an access token, its expiry and the user it belongs to.
// TokenExpiry is in epoch milliseconds; zero means unknown.
type Session struct {
	Token       string
	TokenExpiry int64
	User        User
}

// NewSession computes the expiry from a token lifetime in seconds.
func NewSession(token string, expiresIn int64, user User, now time.Time) *Session {
	return &Session{
		Token:       token,
		TokenExpiry: now.UnixMilli() + expiresIn*1000,
		User:        user,
	}
}

// ExpiresAt returns the expiry as a time, or the zero time if unknown.
func (s *Session) ExpiresAt() time.Time {
	if s.TokenExpiry == 0 {
		return time.Time{}
	}
	return time.UnixMilli(s.TokenExpiry)
}

// Expired reports whether the token expiry is known and not after now.
func (s *Session) Expired(now time.Time) bool {
	return s.TokenExpiry != 0 && now.UnixMilli() >= s.TokenExpiry
}

// TokenRequest is the password-grant body of POST /api/auth/token/.
type TokenRequest struct {
	GrantType    string `json:"grant_type"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// TokenResponse is the token endpoint reply.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type,omitempty"`
	Scope       string `json:"scope,omitempty"`
}
