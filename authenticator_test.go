package auth_test

import (
	"context"
	"testing"

	auth "github.com/goliatone/go-auth-gateway"
	"github.com/stretchr/testify/assert"
)

func TestAutherLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful login issues a token", func(t *testing.T) {
		provider := new(MockIdentityProvider)
		auther := auth.NewAuthenticator(provider, newTestConfig())

		identity := staticIdentity{id: "user-123", name: "Test User", email: "test@example.com"}
		provider.On("VerifyIdentity", ctx, "test@example.com", "password123").
			Return(identity, nil).Once()

		token, err := auther.Login(ctx, "test@example.com", "password123")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		session, err := auther.SessionFromToken(token)
		assert.NoError(t, err)
		assert.Equal(t, "user-123", session.GetUserID())

		provider.AssertExpectations(t)
	})

	t.Run("Verification failure issues nothing", func(t *testing.T) {
		provider := new(MockIdentityProvider)
		auther := auth.NewAuthenticator(provider, newTestConfig())

		provider.On("VerifyIdentity", ctx, "test@example.com", "wrong").
			Return(nil, auth.ErrMismatchedHashAndPassword).Once()

		token, err := auther.Login(ctx, "test@example.com", "wrong")

		assert.ErrorIs(t, err, auth.ErrMismatchedHashAndPassword)
		assert.Empty(t, token)

		provider.AssertExpectations(t)
	})

	t.Run("Nil identity from the provider", func(t *testing.T) {
		provider := new(MockIdentityProvider)
		auther := auth.NewAuthenticator(provider, newTestConfig())

		provider.On("VerifyIdentity", ctx, "test@example.com", "password123").
			Return(nil, nil).Once()

		token, err := auther.Login(ctx, "test@example.com", "password123")

		assert.ErrorIs(t, err, auth.ErrIdentityNotFound)
		assert.Empty(t, token)
	})
}

func TestAutherLoginWithIdentity(t *testing.T) {
	ctx := context.Background()

	t.Run("OAuth assertion needs no local record", func(t *testing.T) {
		provider := new(MockIdentityProvider)
		auther := auth.NewAuthenticator(provider, newTestConfig())

		source := auth.OAuthSignIn{Assertion: auth.IdentityAssertion{
			Subject: "provider-subject-1",
			Name:    "OAuth User",
			Email:   "oauth@example.com",
		}}

		token, err := auther.LoginWithIdentity(ctx, source)

		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		session, err := auther.SessionFromToken(token)
		assert.NoError(t, err)
		assert.Equal(t, "provider-subject-1", session.GetUserID())

		provider.AssertNotCalled(t, "VerifyIdentity")
	})

	t.Run("Policy rejection issues nothing", func(t *testing.T) {
		provider := new(MockIdentityProvider)
		auther := auth.NewAuthenticator(provider, newTestConfig()).
			WithSignInAuthorizer(auth.SignInAuthorizerFunc(func(auth.SignInSource) bool {
				return false
			}))

		token, err := auther.LoginWithIdentity(ctx, auth.OAuthSignIn{Assertion: auth.IdentityAssertion{
			Subject: "provider-subject-1",
		}})

		assert.ErrorIs(t, err, auth.ErrSignInNotAllowed)
		assert.Empty(t, token)
	})

	t.Run("Nil source", func(t *testing.T) {
		auther := auth.NewAuthenticator(new(MockIdentityProvider), newTestConfig())

		token, err := auther.LoginWithIdentity(ctx, nil)

		assert.ErrorIs(t, err, auth.ErrIdentityNotFound)
		assert.Empty(t, token)
	})

	t.Run("Assertion without a subject", func(t *testing.T) {
		auther := auth.NewAuthenticator(new(MockIdentityProvider), newTestConfig())

		token, err := auther.LoginWithIdentity(ctx, auth.OAuthSignIn{})

		assert.ErrorIs(t, err, auth.ErrIdentityNotFound)
		assert.Empty(t, token)
	})
}

func TestAutherSessionFromToken(t *testing.T) {
	provider := new(MockIdentityProvider)
	auther := auth.NewAuthenticator(provider, newTestConfig())

	t.Run("Valid token round trip", func(t *testing.T) {
		token, err := auther.LoginWithIdentity(context.Background(), auth.OAuthSignIn{
			Assertion: auth.IdentityAssertion{Subject: "user-123"},
		})
		assert.NoError(t, err)

		session, err := auther.SessionFromToken(token)
		assert.NoError(t, err)
		assert.True(t, session.(*auth.SessionObject).HasUser())
		assert.Equal(t, "user-123", session.GetUserID())
	})

	t.Run("Invalid token yields no session", func(t *testing.T) {
		session, err := auther.SessionFromToken("garbage")
		assert.Error(t, err)
		assert.Nil(t, session)
	})

	t.Run("Custom validator takes precedence", func(t *testing.T) {
		called := false
		auther := auth.NewAuthenticator(provider, newTestConfig()).
			WithTokenValidator(auth.TokenValidatorFunc(func(raw string) (auth.AuthClaims, error) {
				called = true
				return nil, auth.ErrUnableToDecodeSession
			}))

		_, err := auther.SessionFromToken("anything")
		assert.Error(t, err)
		assert.True(t, called)
	})
}

func TestAutherIdentityFromSession(t *testing.T) {
	ctx := context.Background()

	provider := new(MockIdentityProvider)
	auther := auth.NewAuthenticator(provider, newTestConfig())

	identity := staticIdentity{id: "user-123", email: "test@example.com"}
	provider.On("FindIdentityByIdentifier", ctx, "user-123").Return(identity, nil).Once()

	session := &auth.SessionObject{User: &auth.SessionUser{ID: "user-123"}}

	got, err := auther.IdentityFromSession(ctx, session)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", got.ID())

	provider.AssertExpectations(t)
}
