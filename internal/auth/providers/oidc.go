package providers

import (
	"context"
	"fmt"
	"net/url"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/stayfinder/stayfinder/internal/auth/models"
	"github.com/stayfinder/stayfinder/internal/config"
	"github.com/stayfinder/stayfinder/internal/logger"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// OIDCProvider talks to any spec-compliant identity provider through OIDC
// discovery. Profile claims come from the verified ID token when one is
// issued, falling back to the discovered userinfo endpoint otherwise.
type OIDCProvider struct {
	oauth2Config  *oauth2.Config
	provider      *oidc.Provider
	verifier      *oidc.IDTokenVerifier
	endSessionURL string
	clientID      string
}

func NewOIDCProvider(ctx context.Context, cfg *config.OAuthConfig) (*OIDCProvider, error) {
	provider, err := oidc.NewProvider(ctx, "https://"+cfg.Domain+"/")
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	var discovered struct {
		EndSessionEndpoint string `json:"end_session_endpoint"`
	}
	if err := provider.Claims(&discovered); err != nil {
		logger.Warn("Failed to read discovery claims", zap.Error(err))
	}

	return &OIDCProvider{
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL(),
			Endpoint:     provider.Endpoint(),
			Scopes:       cfg.Scopes,
		},
		provider:      provider,
		verifier:      provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
		endSessionURL: discovered.EndSessionEndpoint,
		clientID:      cfg.ClientID,
	}, nil
}

func (p *OIDCProvider) AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string {
	return p.oauth2Config.AuthCodeURL(state, opts...)
}

func (p *OIDCProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return p.oauth2Config.Exchange(ctx, code)
}

func (p *OIDCProvider) FetchProfile(ctx context.Context, token *oauth2.Token) (*models.Profile, error) {
	if rawIDToken, ok := token.Extra("id_token").(string); ok {
		idToken, err := p.verifier.Verify(ctx, rawIDToken)
		if err != nil {
			return nil, fmt.Errorf("failed to verify ID token: %w", err)
		}

		var profile models.Profile
		if err := idToken.Claims(&profile); err != nil {
			return nil, fmt.Errorf("failed to parse claims: %w", err)
		}
		return &profile, nil
	}

	info, err := p.provider.UserInfo(ctx, oauth2.StaticTokenSource(token))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch userinfo: %w", err)
	}

	var profile models.Profile
	if err := info.Claims(&profile); err != nil {
		return nil, fmt.Errorf("failed to parse userinfo claims: %w", err)
	}
	return &profile, nil
}

func (p *OIDCProvider) LogoutURL(returnTo string) string {
	// Providers without an advertised end-session endpoint only get a local
	// logout: the browser is sent straight back to the application.
	if p.endSessionURL == "" {
		return returnTo
	}
	v := url.Values{}
	v.Set("client_id", p.clientID)
	v.Set("post_logout_redirect_uri", returnTo)
	return p.endSessionURL + "?" + v.Encode()
}
