package auth

import "strings"

// DecisionKind enumerates the route authorization outcomes.
type DecisionKind int

const (
	// DecisionAllow lets the request through.
	DecisionAllow DecisionKind = iota
	// DecisionRedirectToLogin sends an unauthenticated visitor to the
	// sign-in page.
	DecisionRedirectToLogin
	// DecisionRedirectToApp sends an authenticated visitor to the
	// application landing page.
	DecisionRedirectToApp
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionAllow:
		return "allow"
	case DecisionRedirectToLogin:
		return "redirect-to-login"
	case DecisionRedirectToApp:
		return "redirect-to-app"
	}
	return "unknown"
}

// AuthDecision is the per-request outcome of the route gate. Target is set
// for the redirect variants.
type AuthDecision struct {
	Kind   DecisionKind
	Target string
}

// Gate is the route authorization policy: given the current session state
// and the requested path it decides allow, redirect to sign-in, or redirect
// to the app. Decisions are stateless and recomputed every request; session
// state can change between requests so nothing is cached.
type Gate struct {
	protectedPrefixes []string
	signInPath        string
	defaultLanding    string
}

// NewGate builds a Gate from the route classification configuration.
func NewGate(cfg Config) *Gate {
	return &Gate{
		protectedPrefixes: cfg.GetProtectedPrefixes(),
		signInPath:        cfg.GetSignInPath(),
		defaultLanding:    cfg.GetDefaultLanding(),
	}
}

// Decide evaluates session presence first, then path classification. The
// outcome table is total; Decide never fails.
func (g *Gate) Decide(session *SessionObject, path string) AuthDecision {
	loggedIn := session.HasUser()
	protected := g.IsProtected(path)

	if protected {
		if loggedIn {
			return AuthDecision{Kind: DecisionAllow}
		}
		return AuthDecision{Kind: DecisionRedirectToLogin, Target: g.signInPath}
	}

	if loggedIn {
		return AuthDecision{Kind: DecisionRedirectToApp, Target: g.defaultLanding}
	}

	return AuthDecision{Kind: DecisionAllow}
}

// IsProtected classifies a path by prefix match against the configured set.
func (g *Gate) IsProtected(path string) bool {
	for _, prefix := range g.protectedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
