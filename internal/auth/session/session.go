// Package session holds the cookie-backed session record. The cookie is the
// sole source of truth: a session exists if and only if a decodable cookie
// is present, and a malformed cookie is the same as being logged out.
package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/stayfinder/stayfinder/internal/config"
)

// Session is the record encoded into the session cookie after a successful
// login.
type Session struct {
	Sub         string `json:"sub"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	Picture     string `json:"picture,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
	IDToken     string `json:"id_token,omitempty"`
}

// Encode serializes the session to a cookie-safe string.
func (s *Session) Encode() (string, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to encode session: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// Decode parses a cookie value back into a session record.
func Decode(value string) (*Session, error) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &s, nil
}

// Manager reads and writes the session cookie.
type Manager struct {
	name   string
	maxAge int
	secure bool
}

func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		name:   cfg.OAuth.CookieName,
		maxAge: int(cfg.OAuth.CookieTTL.Seconds()),
		secure: cfg.OAuth.SecureCookie,
	}
}

// Write attaches the session cookie to the response.
func (m *Manager) Write(w http.ResponseWriter, s *Session) error {
	value, err := s.Encode()
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    value,
		Path:     "/",
		MaxAge:   m.maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear overwrites the session cookie with an empty value and zero
// lifetime. It succeeds whether or not a session existed.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read answers "who is logged in" for a request. A missing or undecodable
// cookie means no session, never an error.
func (m *Manager) Read(r *http.Request) (*Session, bool) {
	cookie, err := r.Cookie(m.name)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	s, err := Decode(cookie.Value)
	if err != nil || s.Sub == "" {
		return nil, false
	}
	return s, true
}

type contextKey struct{}

// NewContext returns a context carrying the session.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext extracts the session attached by the middleware, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok
}
