package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/stayfinder/stayfinder/internal/auth/models"
	"github.com/stayfinder/stayfinder/internal/config"
	"github.com/stayfinder/stayfinder/internal/logger"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Auth0Provider talks to an Auth0 tenant using its fixed path conventions:
// /authorize, /oauth/token, /userinfo and /v2/logout under the tenant domain.
type Auth0Provider struct {
	oauth2Config *oauth2.Config
	userInfoURL  string
	logoutURL    string
}

func NewAuth0Provider(cfg *config.OAuthConfig) *Auth0Provider {
	return NewAuth0ProviderForIssuer(cfg, "https://"+cfg.Domain)
}

// NewAuth0ProviderForIssuer constructs the provider against an explicit
// issuer base URL. Tests point this at a local stub server.
func NewAuth0ProviderForIssuer(cfg *config.OAuthConfig, issuer string) *Auth0Provider {
	return &Auth0Provider{
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL(),
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  issuer + "/authorize",
				TokenURL: issuer + "/oauth/token",
			},
		},
		userInfoURL: issuer + "/userinfo",
		logoutURL:   issuer + "/v2/logout",
	}
}

func (p *Auth0Provider) AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string {
	return p.oauth2Config.AuthCodeURL(state, opts...)
}

func (p *Auth0Provider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return p.oauth2Config.Exchange(ctx, code)
}

func (p *Auth0Provider) FetchProfile(ctx context.Context, token *oauth2.Token) (*models.Profile, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create userinfo request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call userinfo endpoint: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("Failed to close response body", zap.Error(err))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request failed with status %d", resp.StatusCode)
	}

	var profile models.Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo response: %w", err)
	}
	if profile.Sub == "" {
		return nil, fmt.Errorf("userinfo response carried no subject")
	}

	return &profile, nil
}

func (p *Auth0Provider) LogoutURL(returnTo string) string {
	v := url.Values{}
	v.Set("client_id", p.oauth2Config.ClientID)
	v.Set("returnTo", returnTo)
	return p.logoutURL + "?" + v.Encode()
}
