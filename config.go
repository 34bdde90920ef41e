package auth

import (
	"github.com/caarlos0/env/v11"
	"github.com/goliatone/go-errors"
)

// EnvConfig is the concrete Config loaded from environment variables. The
// Google client credentials travel here too; they are handed to the provider
// at start-up and never logged.
type EnvConfig struct {
	SigningKey        string   `env:"AUTH_SIGNING_KEY,required,notEmpty"`
	SigningMethod     string   `env:"AUTH_SIGNING_METHOD" envDefault:"HS256"`
	ContextKey        string   `env:"AUTH_CONTEXT_KEY" envDefault:"app_session"`
	TokenExpiration   int      `env:"AUTH_TOKEN_EXPIRATION" envDefault:"24"`
	TokenLookup       string   `env:"AUTH_TOKEN_LOOKUP" envDefault:"cookie:app_session,header:Authorization"`
	AuthScheme        string   `env:"AUTH_SCHEME" envDefault:"Bearer"`
	Issuer            string   `env:"AUTH_ISSUER" envDefault:"auth-gateway"`
	Audience          []string `env:"AUTH_AUDIENCE" envSeparator:","`
	SignInPath        string   `env:"AUTH_SIGN_IN_PATH" envDefault:"/login"`
	DefaultLanding    string   `env:"AUTH_DEFAULT_LANDING" envDefault:"/dashboard"`
	ProtectedPrefixes []string `env:"AUTH_PROTECTED_PREFIXES" envSeparator:"," envDefault:"/dashboard"`
	RejectedRouteKey  string   `env:"AUTH_REJECTED_ROUTE_KEY" envDefault:"rejected_route"`

	GoogleClientID     string `env:"AUTH_GOOGLE_ID"`
	GoogleClientSecret string `env:"AUTH_GOOGLE_SECRET"`
	GoogleCallbackURL  string `env:"AUTH_GOOGLE_CALLBACK_URL"`

	// DSN for the user datastore. TLS is enforced in transit for non-local
	// stores; the sqlite driver is used for tests and local development.
	DatabaseDSN string `env:"AUTH_DATABASE_DSN" envDefault:"file::memory:?cache=shared"`
}

var _ Config = (*EnvConfig)(nil)

// NewConfigFromEnv parses the environment into an EnvConfig.
func NewConfigFromEnv() (*EnvConfig, error) {
	cfg := &EnvConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "failed to parse auth environment")
	}
	return cfg, nil
}

func (c *EnvConfig) GetSigningKey() string { return c.SigningKey }

func (c *EnvConfig) GetSigningMethod() string { return c.SigningMethod }

func (c *EnvConfig) GetContextKey() string { return c.ContextKey }

func (c *EnvConfig) GetTokenExpiration() int { return c.TokenExpiration }

func (c *EnvConfig) GetTokenLookup() string { return c.TokenLookup }

func (c *EnvConfig) GetAuthScheme() string { return c.AuthScheme }

func (c *EnvConfig) GetIssuer() string { return c.Issuer }

func (c *EnvConfig) GetAudience() []string { return c.Audience }

func (c *EnvConfig) GetSignInPath() string { return c.SignInPath }

func (c *EnvConfig) GetDefaultLanding() string { return c.DefaultLanding }

func (c *EnvConfig) GetProtectedPrefixes() []string { return c.ProtectedPrefixes }

func (c *EnvConfig) GetRejectedRouteKey() string { return c.RejectedRouteKey }
