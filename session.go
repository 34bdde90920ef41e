package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

var _ Session = &SessionObject{}

// SessionUser is the user-facing slice of a session. Only the id is sourced
// from token claims; anything else is whatever the application put on the
// shell before hydration.
type SessionUser struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// SessionObject is the per-request session reconstruction. It is derived
// from the signed token on every request and never persisted on its own.
type SessionObject struct {
	User           *SessionUser   `json:"user,omitempty"`
	Audience       []string       `json:"audience,omitempty"`
	Issuer         string         `json:"issuer,omitempty"`
	IssuedAt       *time.Time     `json:"issued_at,omitempty"`
	ExpirationDate *time.Time     `json:"expiration_date,omitempty"`
	Data           map[string]any `json:"data,omitempty"`
}

func (s *SessionObject) GetUserID() string {
	if s.User == nil {
		return ""
	}
	return s.User.ID
}

func (s *SessionObject) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(s.GetUserID())
}

func (s *SessionObject) GetAudience() []string {
	return s.Audience
}

func (s *SessionObject) GetIssuer() string {
	return s.Issuer
}

func (s *SessionObject) GetIssuedAt() *time.Time {
	return s.IssuedAt
}

func (s *SessionObject) GetData() map[string]any {
	return s.Data
}

// HasUser reports whether the session carries an established user.
func (s *SessionObject) HasUser() bool {
	return s != nil && s.User != nil && s.User.ID != ""
}

// TODO: enable only in development!
func (s SessionObject) String() string {
	issuedAt := "<nil>"
	if s.IssuedAt != nil {
		issuedAt = s.IssuedAt.Format(time.RFC1123)
	}
	return fmt.Sprintf(
		"user=%s aud=%v iss=%s iat=%s data=%v",
		s.GetUserID(),
		s.Audience,
		s.Issuer,
		issuedAt,
		s.Data,
	)
}

// HydrateSession copies the token's uid claim onto the shell's user object.
// The merge is additive only: it never fabricates a user object where none
// exists and never drops fields already present on the shell. Hydrating the
// same claims twice yields the same session.
func HydrateSession(claims AuthClaims, shell *SessionObject) *SessionObject {
	if shell == nil {
		return nil
	}
	if claims == nil || shell.User == nil {
		return shell
	}

	shell.User.ID = claims.UserID()
	return shell
}

// sessionFromAuthClaims creates a SessionObject from validated claims
func sessionFromAuthClaims(claims AuthClaims) (*SessionObject, error) {
	if claims == nil {
		return nil, ErrUnableToParseData
	}

	var audience []string
	issuer := ""
	if jwtClaims, ok := claims.(*JWTClaims); ok {
		for _, aud := range jwtClaims.RegisteredClaims.Audience {
			audience = append(audience, aud)
		}
		issuer = jwtClaims.RegisteredClaims.Issuer
	}
	if issuer == "" {
		issuer = claims.Subject()
	}

	issuedAt := claims.IssuedAt()
	expiresAt := claims.Expires()

	return &SessionObject{
		User:           &SessionUser{ID: claims.UserID()},
		Audience:       audience,
		Issuer:         issuer,
		IssuedAt:       &issuedAt,
		ExpirationDate: &expiresAt,
	}, nil
}
