package providers

import (
	"context"

	"github.com/stayfinder/stayfinder/internal/auth/models"
	"golang.org/x/oauth2"
)

// Provider is the narrow adapter between the callback orchestrator and a
// concrete identity provider. An alternate provider can be substituted
// without touching the orchestrator.
type Provider interface {
	// AuthCodeURL returns the provider login redirect target carrying the
	// given state and any extra authorize parameters (login_hint, ...)
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string

	// Exchange posts the authorization code to the token endpoint
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)

	// FetchProfile retrieves the identity claims for the given token
	FetchProfile(ctx context.Context, token *oauth2.Token) (*models.Profile, error)

	// LogoutURL returns the provider-side logout target that sends the
	// browser back to returnTo afterwards
	LogoutURL(returnTo string) string
}
