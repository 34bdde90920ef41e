package auth

import (
	"context"
	"reflect"
)

// Auther orchestrates the sign-in sequence: verify, authorize, issue. It is
// constructed explicitly at start-up with its collaborators injected; there
// is no ambient state to tear down beyond the caller-owned store.
type Auther struct {
	provider         IdentityProvider
	signInAuthorizer SignInAuthorizer
	signingKey       []byte
	tokenExpiration  int
	issuer           string
	audience         []string
	logger           Logger
	tokenService     TokenService
	tokenValidator   TokenValidator
}

var _ Authenticator = (*Auther)(nil)

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(provider IdentityProvider, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenExpiration(),
		opts.GetIssuer(),
		opts.GetAudience(),
		defLogger{},
	)

	return &Auther{
		provider:         provider,
		signInAuthorizer: permissiveSignInAuthorizer{},
		signingKey:       []byte(opts.GetSigningKey()),
		tokenExpiration:  opts.GetTokenExpiration(),
		audience:         opts.GetAudience(),
		issuer:           opts.GetIssuer(),
		logger:           defLogger{},
		tokenService:     tokenService,
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	// Update the TokenService logger as well
	s.tokenService = NewTokenService(
		s.signingKey,
		s.tokenExpiration,
		s.issuer,
		s.audience,
		logger,
	)
	return s
}

// WithSignInAuthorizer sets a custom sign-in policy for the Auther.
func (s *Auther) WithSignInAuthorizer(authorizer SignInAuthorizer) *Auther {
	if authorizer == nil {
		authorizer = permissiveSignInAuthorizer{}
	}
	s.signInAuthorizer = authorizer
	return s
}

// WithTokenValidator sets a custom token validator for externally issued tokens.
func (s *Auther) WithTokenValidator(validator TokenValidator) *Auther {
	s.tokenValidator = validator
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login runs the credentials trust path: verify the email/password pair,
// then authorize and issue through LoginWithIdentity. Any failure leaves no
// partial session behind; nothing is written until the token is signed.
func (s *Auther) Login(ctx context.Context, identifier, password string) (string, error) {
	identity, err := s.provider.VerifyIdentity(ctx, identifier, password)
	if err != nil {
		s.logger.Error("Login verify identity error", "error", err)
		return "", err
	}

	if identity == nil || reflect.ValueOf(identity).IsZero() {
		s.logger.Error("Login identity is nil or zero value")
		return "", ErrIdentityNotFound
	}

	return s.LoginWithIdentity(ctx, credentialsSource(identity))
}

// LoginWithIdentity establishes a session for an already verified identity.
// The OAuth path enters here directly: the assertion carries its own trust
// and no local user record is required.
func (s *Auther) LoginWithIdentity(ctx context.Context, source SignInSource) (string, error) {
	if source == nil {
		return "", ErrIdentityNotFound
	}

	identity := source.Identity()
	if identity == nil || reflect.ValueOf(identity).IsZero() || identity.ID() == "" {
		s.logger.Error("LoginWithIdentity identity is nil or zero value")
		return "", ErrIdentityNotFound
	}

	if !s.signInAuthorizer.Authorize(source) {
		s.logger.Info("Sign-in rejected by policy", "identity", identity.ID())
		return "", ErrSignInNotAllowed
	}

	token, err := s.tokenService.Generate(identity)
	if err != nil {
		s.logger.Error("LoginWithIdentity token generation failed", "error", err)
		return "", err
	}

	return token, nil
}

func (s *Auther) IdentityFromSession(ctx context.Context, session Session) (Identity, error) {
	identity, err := s.provider.FindIdentityByIdentifier(ctx, session.GetUserID())
	if err != nil {
		s.logger.Error("IdentityFromSession find identity by identifier: %s", err)
		return nil, err
	}

	return identity, nil
}

// SessionFromToken validates the raw token and rebuilds the per-request
// session from its claims.
func (s Auther) SessionFromToken(raw string) (Session, error) {
	validator := s.tokenValidator
	if validator == nil {
		validator = s.tokenService
	}

	claims, err := validator.Validate(raw)
	if err != nil {
		s.logger.Error("SessionFromToken validation failed", "error", err)
		return nil, err
	}

	session, err := sessionFromAuthClaims(claims)
	if err != nil {
		s.logger.Error("SessionFromToken failed to create session from claims", "error", err)
		return nil, err
	}

	return session, nil
}

// credentialsSource rebuilds the tagged sign-in source for an identity
// returned by the credentials provider.
func credentialsSource(identity Identity) SignInSource {
	source := CredentialsSignIn{identity: identity}
	if ui, ok := identity.(UserIdentity); ok {
		source.User = ui.user
	}
	return source
}
