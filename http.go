package auth

import (
	"net/http"
	"time"

	"github.com/goliatone/go-auth-gateway/middleware/jwtware"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// LoginPayload is the credentials form submitted on a sign-in request.
type LoginPayload interface {
	GetIdentifier() string
	GetPassword() string
}

// HTTPAuthenticator is the transport-facing surface: cookie token store,
// protected-route middleware, and gate-driven redirects.
type HTTPAuthenticator interface {
	ProtectedRoute(cfg Config, errorHandler func(router.Context, error) error) router.MiddlewareFunc
	GateMiddleware() router.MiddlewareFunc
	Login(c router.Context, payload LoginPayload) error
	Logout(c router.Context)
	SetRedirect(c router.Context)
	GetRedirect(c router.Context, def ...string) string
	MakeClientRouteAuthErrorHandler(optionalAuth bool) func(c router.Context, err error) error
}

type RouteAuthenticator struct {
	auth             Authenticator
	cfg              Config
	gate             *Gate
	cookieDuration   time.Duration
	Logger           Logger
	AuthErrorHandler func(c router.Context, err error) error
	ErrorHandler     func(c router.Context, err error) error
}

var _ HTTPAuthenticator = (*RouteAuthenticator)(nil)

func NewHTTPAuthenticator(auther Authenticator, cfg Config) (*RouteAuthenticator, error) {
	cookieDuration := 24 * time.Hour
	if cfg.GetTokenExpiration() > 0 {
		cookieDuration = time.Duration(cfg.GetTokenExpiration()) * time.Hour
	}

	a := &RouteAuthenticator{
		cfg:            cfg,
		auth:           auther,
		gate:           NewGate(cfg),
		Logger:         defLogger{},
		cookieDuration: cookieDuration,
	}

	a.ErrorHandler = a.defaultErrHandler
	a.AuthErrorHandler = a.defaultAuthErrHandler

	return a, nil
}

func (a RouteAuthenticator) GetCookieDuration() time.Duration {
	return a.cookieDuration
}

// Gate exposes the route authorization policy backing the middleware.
func (a *RouteAuthenticator) Gate() *Gate {
	return a.gate
}

// ProtectedRoute enforces a valid session token on the wrapped handler.
func (a *RouteAuthenticator) ProtectedRoute(cfg Config, errorHandler func(router.Context, error) error) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return jwtware.New(jwtware.Config{
			ErrorHandler: errorHandler,
			SigningKey: jwtware.SigningKey{
				Key:    []byte(cfg.GetSigningKey()),
				JWTAlg: cfg.GetSigningMethod(),
			},
			AuthScheme:     cfg.GetAuthScheme(),
			ContextKey:     cfg.GetContextKey(),
			TokenLookup:    cfg.GetTokenLookup(),
			TokenValidator: tokenValidatorAdapter{tokenValidatorFor(a.auth)},
		})
	}
}

// GateMiddleware evaluates the route gate on every request: it rebuilds the
// session from the token cookie (an absent or invalid token simply means no
// session) and acts on the decision. Both session presence and path
// classification are evaluated per request; nothing is cached across them.
func (a *RouteAuthenticator) GateMiddleware() router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			session := a.sessionFromRequest(c)

			decision := a.gate.Decide(session, c.Path())
			switch decision.Kind {
			case DecisionRedirectToLogin:
				a.SetRedirect(c)
				return c.Redirect(decision.Target, http.StatusFound)
			case DecisionRedirectToApp:
				return c.Redirect(decision.Target, http.StatusFound)
			}

			if session.HasUser() {
				c.SetContext(WithSessionContext(c.Context(), session))
			}

			return c.Next()
		}
	}
}

// sessionFromRequest rebuilds the session from the cookie token. Failures
// collapse to "no session"; the gate handles the rest.
func (a *RouteAuthenticator) sessionFromRequest(c router.Context) *SessionObject {
	raw := c.Cookies(a.cfg.GetContextKey())
	if raw == "" {
		return &SessionObject{}
	}

	session, err := a.auth.SessionFromToken(raw)
	if err != nil {
		a.Logger.Debug("GateMiddleware token rejected", "error", err)
		return &SessionObject{}
	}

	if so, ok := session.(*SessionObject); ok {
		return so
	}

	return &SessionObject{
		User: &SessionUser{ID: session.GetUserID()},
	}
}

// Login verifies the payload and, on success, writes the session cookie.
// On failure no cookie is written; the caller stays on the login page.
func (a *RouteAuthenticator) Login(ctx router.Context, payload LoginPayload) error {
	token, err := a.auth.Login(ctx.Context(), payload.GetIdentifier(), payload.GetPassword())
	if err != nil {
		a.Logger.Error("Login error: %s", err)
		return err
	}

	a.setCookieToken(ctx, token, a.cookieDuration)
	return nil
}

// LoginWithIdentity establishes a session for an identity verified out of
// band, e.g. an OAuth assertion, and writes the session cookie.
func (a *RouteAuthenticator) LoginWithIdentity(ctx router.Context, source SignInSource) error {
	token, err := a.auth.LoginWithIdentity(ctx.Context(), source)
	if err != nil {
		a.Logger.Error("LoginWithIdentity error: %s", err)
		return err
	}

	a.setCookieToken(ctx, token, a.cookieDuration)
	return nil
}

func (a *RouteAuthenticator) Logout(ctx router.Context) {
	a.cookieDel(ctx, a.cfg.GetContextKey())
}

func (a *RouteAuthenticator) MakeClientRouteAuthErrorHandler(optional bool) func(router.Context, error) error {
	return func(ctx router.Context, err error) error {
		var richErr *errors.Error

		if IsTokenExpiredError(err) {
			richErr = ErrTokenExpired
		} else if IsMalformedError(err) {
			richErr = ErrTokenMalformed
		} else {
			richErr = errors.Wrap(err, errors.CategoryAuth, "Invalid authentication token").
				WithCode(errors.CodeUnauthorized)
		}

		if optional {
			a.Logger.Info("Optional auth failed, proceeding", "error", richErr.Message)
			return ctx.Next()
		}

		return a.ErrorHandler(ctx, richErr)
	}
}

func (a *RouteAuthenticator) GetRedirect(ctx router.Context, def ...string) string {
	rejectedRoute := a.cfg.GetRejectedRouteKey()
	r := ctx.Cookies(rejectedRoute)
	if r == "" && len(def) > 0 {
		return def[0]
	}
	if r == "" {
		r = a.cfg.GetDefaultLanding()
	}
	a.cookieDel(ctx, rejectedRoute)
	return r
}

func (a *RouteAuthenticator) SetRedirect(ctx router.Context) {
	rejectedRoute := a.cfg.GetRejectedRouteKey()

	a.Logger.Info("Setting redirect cookie", "key", rejectedRoute, "path", ctx.OriginalURL())

	ctx.Cookie(&router.Cookie{
		Name:     rejectedRoute,
		Value:    ctx.OriginalURL(),
		Expires:  time.Now().Add(time.Minute * 5),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func (a *RouteAuthenticator) setCookieToken(c router.Context, val string, duration time.Duration) {
	c.Cookie(&router.Cookie{
		Name:     a.cfg.GetContextKey(),
		Value:    val,
		Expires:  time.Now().Add(duration),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func (a *RouteAuthenticator) cookieDel(c router.Context, name string) {
	c.Cookie(&router.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func (a *RouteAuthenticator) defaultAuthErrHandler(c router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryAuth, "An unexpected authentication error").
			WithCode(errors.CodeUnauthorized)
	}

	a.Logger.Info(
		"Authentication error, redirecting to login",
		"error", richErr.Message,
		"text_code", richErr.TextCode,
		"path", c.OriginalURL(),
	)

	a.SetRedirect(c)

	statusCode := http.StatusSeeOther
	if c.Method() == string(router.GET) {
		statusCode = http.StatusFound
	}
	return c.Redirect(a.cfg.GetSignInPath(), statusCode)
}

func (a *RouteAuthenticator) defaultErrHandler(c router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	switch richErr.Category {
	case errors.CategoryAuth, errors.CategoryAuthz:
		return a.AuthErrorHandler(c, richErr)
	default:
		return c.Status(richErr.Code).SendString(richErr.Message)
	}
}

// tokenValidatorAdapter bridges the package's TokenValidator to the
// middleware's claims interface without an import cycle.
type tokenValidatorAdapter struct {
	validator TokenValidator
}

func (t tokenValidatorAdapter) Validate(tokenString string) (jwtware.AuthClaims, error) {
	claims, err := t.validator.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// tokenValidatorFor prefers the authenticator's own token service; any
// Authenticator can still be bridged through SessionFromToken.
func tokenValidatorFor(auther Authenticator) TokenValidator {
	if ts, ok := auther.(interface{ TokenService() TokenService }); ok {
		return ts.TokenService()
	}

	return TokenValidatorFunc(func(raw string) (AuthClaims, error) {
		session, err := auther.SessionFromToken(raw)
		if err != nil {
			return nil, err
		}
		return &JWTClaims{UID: session.GetUserID()}, nil
	})
}
