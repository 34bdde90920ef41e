package auth

// SignInSource is the tagged origin of a sign-in attempt. Each variant
// carries only the fields its trust path legitimately has: credentials
// sign-ins hold the verified user record, OAuth sign-ins hold the provider
// assertion.
type SignInSource interface {
	Identity() Identity
	signInSource()
}

// CredentialsSignIn is a sign-in backed by a locally verified user record.
// The identity only exists because the verifier already matched a stored
// record, so authorization here is redundant but explicit.
type CredentialsSignIn struct {
	User *User

	// identity is set when the verifier returned something other than the
	// stored user record, e.g. a custom IdentityProvider implementation.
	identity Identity
}

func (s CredentialsSignIn) Identity() Identity {
	if s.identity != nil {
		return s.identity
	}
	return NewIdentityFromUser(s.User)
}

func (CredentialsSignIn) signInSource() {}

// OAuthSignIn is a sign-in backed by a third-party identity assertion. No
// local user record is required; the assertion lives in the token.
type OAuthSignIn struct {
	Assertion IdentityAssertion
}

func (s OAuthSignIn) Identity() Identity {
	return NewIdentityFromAssertion(s.Assertion)
}

func (OAuthSignIn) signInSource() {}

// SignInAuthorizer decides whether a verified identity may establish a
// session. It runs after identity is established and before a token is
// issued.
type SignInAuthorizer interface {
	Authorize(source SignInSource) bool
}

// SignInAuthorizerFunc adapts a function into a SignInAuthorizer.
type SignInAuthorizerFunc func(source SignInSource) bool

// Authorize satisfies the SignInAuthorizer interface.
func (f SignInAuthorizerFunc) Authorize(source SignInSource) bool {
	if f == nil {
		return false
	}
	return f(source)
}

// permissiveSignInAuthorizer approves every established identity on both
// trust paths. It is the policy extension point: swap it via
// WithSignInAuthorizer for email-verification gating, account linking
// checks, or deny-lists.
type permissiveSignInAuthorizer struct{}

func (permissiveSignInAuthorizer) Authorize(source SignInSource) bool {
	switch source.(type) {
	case CredentialsSignIn:
		return true
	case OAuthSignIn:
		return true
	}
	return true
}
