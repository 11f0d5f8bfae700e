package auth

import (
	"net/http"
	"net/url"

	"github.com/stayfinder/stayfinder/internal/auth/session"
	"github.com/stayfinder/stayfinder/internal/logger"
	"github.com/stayfinder/stayfinder/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// errorRoute is where failed logins land, with error and error_description
// query parameters for the page to render.
const errorRoute = "/error"

// HandleLogin redirects the browser to the identity provider's authorize
// endpoint. The desired return path travels inside the signed state value.
func (s *Service) HandleLogin(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	st, err := s.state.Encode(q.Get("returnTo"))
	if err != nil {
		logger.Error("Failed to encode login state", zap.Error(err))
		s.redirectError(w, r, "internal_error", "Failed to start the login flow")
		return
	}

	opts := []oauth2.AuthCodeOption{}
	if hint := q.Get("login_hint"); hint != "" {
		opts = append(opts, oauth2.SetAuthURLParam("login_hint", hint))
	}
	if hint := q.Get("screen_hint"); hint != "" {
		opts = append(opts, oauth2.SetAuthURLParam("screen_hint", hint))
	}

	http.Redirect(w, r, s.provider.AuthCodeURL(st, opts...), http.StatusFound)
}

// HandleCallback runs the callback sequence: provider error check, code
// exchange, profile fetch, session issuance, redirect. Every failure is
// converted into a redirect to the error route; nothing propagates to the
// browser as an unhandled fault.
func (s *Service) HandleCallback(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("Panic during auth callback", zap.Any("panic", rec))
			s.redirectError(w, r, "internal_error", "An unexpected error occurred during authentication")
		}
	}()

	q := r.URL.Query()

	if errCode := q.Get("error"); errCode != "" {
		desc := q.Get("error_description")
		if desc == "" {
			desc = "The identity provider reported an error"
		}
		logger.Warn("Identity provider returned an error", zap.String("error", errCode))
		s.redirectError(w, r, errCode, desc)
		return
	}

	code := q.Get("code")
	if code == "" {
		s.redirectError(w, r, "invalid_request", "No authorization code received")
		return
	}

	token, err := s.provider.Exchange(r.Context(), code)
	if err != nil {
		logger.Error("Token exchange failed", zap.Error(err))
		s.redirectError(w, r, "token_exchange_failed", "Failed to exchange authorization code")
		return
	}
	if token.AccessToken == "" {
		s.redirectError(w, r, "token_exchange_failed", "Token response carried no access token")
		return
	}

	profile, err := s.provider.FetchProfile(r.Context(), token)
	if err != nil {
		logger.Error("Profile fetch failed", zap.Error(err))
		s.redirectError(w, r, "profile_fetch_failed", "Failed to fetch user profile")
		return
	}

	sess := &session.Session{
		Sub:         profile.Sub,
		Name:        profile.Name,
		Email:       profile.Email,
		Picture:     profile.Picture,
		AccessToken: token.AccessToken,
	}
	if rawIDToken, ok := token.Extra("id_token").(string); ok {
		sess.IDToken = rawIDToken
	}

	if err := s.sessions.Write(w, sess); err != nil {
		logger.Error("Failed to issue session cookie", zap.Error(err))
		s.redirectError(w, r, "internal_error", "Failed to create session")
		return
	}

	http.Redirect(w, r, s.state.Decode(q.Get("state")), http.StatusFound)
}

// HandleLogout clears the local session unconditionally, then sends the
// browser to the provider so its session is cleared too.
func (s *Service) HandleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.Clear(w)
	http.Redirect(w, r, s.provider.LogoutURL(s.cfg.BaseURL), http.StatusFound)
}

// HandleMe reports the logged-in user, or 401 with a null body when the
// request carries no usable session.
func (s *Service) HandleMe(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessions.Read(r)
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		if _, err := w.Write([]byte("null\n")); err != nil {
			logger.Error("Failed to write response", zap.Error(err))
		}
		return
	}

	utils.WriteJSON(w, map[string]string{
		"sub":     sess.Sub,
		"name":    sess.Name,
		"email":   sess.Email,
		"picture": sess.Picture,
	})
}

func (s *Service) redirectError(w http.ResponseWriter, r *http.Request, code, description string) {
	v := url.Values{}
	v.Set("error", code)
	v.Set("error_description", description)
	http.Redirect(w, r, errorRoute+"?"+v.Encode(), http.StatusFound)
}
