package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/stayfinder/stayfinder/internal/auth/providers"
	"github.com/stayfinder/stayfinder/internal/auth/session"
	"github.com/stayfinder/stayfinder/internal/auth/state"
	"github.com/stayfinder/stayfinder/internal/config"
	"go.uber.org/fx"
)

// ErrInvalidProvider indicates an unsupported identity provider was configured
var ErrInvalidProvider = fmt.Errorf("unsupported identity provider")

// Service is the single authoritative identity integration: it builds the
// authorize redirect, runs the callback sequence and answers session reads.
type Service struct {
	cfg      *config.OAuthConfig
	provider providers.Provider
	state    *state.Codec
	sessions *session.Manager
}

// NewProvider constructs the identity-provider adapter selected by the
// configuration.
func NewProvider(cfg *config.Config) (providers.Provider, error) {
	switch cfg.OAuth.Provider {
	case config.ProviderAuth0:
		return providers.NewAuth0Provider(&cfg.OAuth), nil
	case config.ProviderOIDC:
		provider, err := providers.NewOIDCProvider(context.Background(), &cfg.OAuth)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize provider %s: %w", cfg.OAuth.Provider, err)
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidProvider, cfg.OAuth.Provider)
	}
}

// NewService creates a new identity service
func NewService(cfg *config.Config, provider providers.Provider, sessions *session.Manager) *Service {
	return &Service{
		cfg:      &cfg.OAuth,
		provider: provider,
		state:    state.NewCodec(cfg.OAuth.ClientSecret),
		sessions: sessions,
	}
}

// RegisterRoutes registers all identity-related routes
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/auth/login", s.HandleLogin)
	mux.HandleFunc("GET /api/auth/callback", s.HandleCallback)
	mux.HandleFunc("GET /api/auth/logout", s.HandleLogout)
	mux.HandleFunc("GET /api/auth/me", s.HandleMe)
}

// Sessions returns the cookie manager backing this service
func (s *Service) Sessions() *session.Manager {
	return s.sessions
}

// Module provides the identity integration dependencies
var Module = fx.Module("auth",
	fx.Provide(
		NewProvider,
		session.NewManager,
		NewService,
	),
)
