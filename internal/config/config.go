package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// GetVersionInfo returns a formatted version string
func GetVersionInfo() string {
	return fmt.Sprintf("stayfinder version %s, commit %s, built at %s", version, commit, date)
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	OAuth    OAuthConfig    `mapstructure:"oauth"`
	Bookings BookingsConfig `mapstructure:"bookings"`
}

// ProviderType selects the identity-provider adapter.
type ProviderType string

const (
	ProviderAuth0 ProviderType = "auth0"
	ProviderOIDC  ProviderType = "oidc"
)

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type LoggingConfig struct {
	Level             string `mapstructure:"level"`
	Format            string `mapstructure:"format"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

// OAuthConfig holds the identity-provider integration settings. Domain,
// client id, client secret and base URL are required: their absence is a
// startup error, never a per-request one.
type OAuthConfig struct {
	Provider     ProviderType  `mapstructure:"provider"`
	Domain       string        `mapstructure:"domain"`
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	BaseURL      string        `mapstructure:"base_url"`
	Scopes       []string      `mapstructure:"scopes"`
	CookieName   string        `mapstructure:"cookie_name"`
	CookieTTL    time.Duration `mapstructure:"cookie_ttl"`
	SecureCookie bool          `mapstructure:"secure_cookie"`
}

// RedirectURL is the registered callback the provider redirects back to.
func (c *OAuthConfig) RedirectURL() string {
	return c.BaseURL + "/api/auth/callback"
}

type BookingsConfig struct {
	PaymentDelay time.Duration `mapstructure:"payment_delay"`
}

// InitFlags initializes command line flags (without parsing)
func InitFlags() {
	pflag.String("host", "", "Server host")
	pflag.Int("port", 0, "Server port")
	// Note: no pflag.Parse() here as it's called in main.go
}

func Load() (*Config, error) {
	viper.Reset() // Ensure clean state

	viper.SetEnvPrefix("STAYFINDER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		return nil, err
	}

	setDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/stayfinder")

	if err := viper.ReadInConfig(); err != nil {
		// Env-only deployments carry no config file at all.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if host := viper.GetString("host"); host != "" {
		config.Server.Host = host
	}
	if port := viper.GetInt("port"); port != 0 {
		config.Server.Port = port
	}

	if err := config.OAuth.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
	viper.SetDefault("oauth.provider", string(ProviderAuth0))
	// Empty defaults register the required keys so AutomaticEnv can fill
	// them during Unmarshal.
	viper.SetDefault("oauth.domain", "")
	viper.SetDefault("oauth.client_id", "")
	viper.SetDefault("oauth.client_secret", "")
	viper.SetDefault("oauth.base_url", "")
	viper.SetDefault("oauth.secure_cookie", false)
	viper.SetDefault("oauth.scopes", []string{"openid", "profile", "email"})
	viper.SetDefault("oauth.cookie_name", "appSession")
	viper.SetDefault("oauth.cookie_ttl", 7*24*time.Hour)
	viper.SetDefault("bookings.payment_delay", 2*time.Second)
}

func (c *OAuthConfig) validate() error {
	switch c.Provider {
	case ProviderAuth0, ProviderOIDC:
	default:
		return fmt.Errorf("oauth.provider must be %q or %q, got %q", ProviderAuth0, ProviderOIDC, c.Provider)
	}

	missing := []string{}
	if c.Domain == "" {
		missing = append(missing, "oauth.domain")
	}
	if c.ClientID == "" {
		missing = append(missing, "oauth.client_id")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "oauth.client_secret")
	}
	if c.BaseURL == "" {
		missing = append(missing, "oauth.base_url")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s (set them in config.yaml or via STAYFINDER_* environment variables)", strings.Join(missing, ", "))
	}
	return nil
}
