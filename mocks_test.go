package auth_test

import (
	"context"

	auth "github.com/goliatone/go-auth-gateway"
	"github.com/stretchr/testify/mock"
)

// MockUserFinder implements auth.UserFinder
type MockUserFinder struct {
	mock.Mock
}

func (m *MockUserFinder) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

// MockIdentityProvider implements auth.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, identifier, password string) (auth.Identity, error) {
	args := m.Called(ctx, identifier, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(auth.Identity), args.Error(1)
}

func (m *MockIdentityProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (auth.Identity, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(auth.Identity), args.Error(1)
}

// testConfig implements auth.Config
type testConfig struct {
	signingKey        string
	tokenExpiration   int
	issuer            string
	audience          []string
	signInPath        string
	defaultLanding    string
	protectedPrefixes []string
}

func newTestConfig() *testConfig {
	return &testConfig{
		signingKey:        "test-signing-key",
		tokenExpiration:   1,
		issuer:            "test-issuer",
		audience:          []string{"test:audience"},
		signInPath:        "/login",
		defaultLanding:    "/dashboard",
		protectedPrefixes: []string{"/dashboard"},
	}
}

func (c *testConfig) GetSigningKey() string          { return c.signingKey }
func (c *testConfig) GetSigningMethod() string       { return "HS256" }
func (c *testConfig) GetContextKey() string          { return "app_session" }
func (c *testConfig) GetTokenExpiration() int        { return c.tokenExpiration }
func (c *testConfig) GetTokenLookup() string         { return "cookie:app_session" }
func (c *testConfig) GetAuthScheme() string          { return "Bearer" }
func (c *testConfig) GetIssuer() string              { return c.issuer }
func (c *testConfig) GetAudience() []string          { return c.audience }
func (c *testConfig) GetSignInPath() string          { return c.signInPath }
func (c *testConfig) GetDefaultLanding() string      { return c.defaultLanding }
func (c *testConfig) GetProtectedPrefixes() []string { return c.protectedPrefixes }
func (c *testConfig) GetRejectedRouteKey() string    { return "rejected_route" }

// staticIdentity is a bare Identity for token tests
type staticIdentity struct {
	id    string
	name  string
	email string
}

func (s staticIdentity) ID() string    { return s.id }
func (s staticIdentity) Name() string  { return s.name }
func (s staticIdentity) Email() string { return s.email }
