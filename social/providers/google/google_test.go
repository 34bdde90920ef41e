package google_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/goliatone/go-auth-gateway/social"
	"github.com/goliatone/go-auth-gateway/social/providers/google"
	"github.com/stretchr/testify/assert"
)

func newTestProvider(tokenURL, userInfoURL string) *google.Provider {
	return google.New(google.Config{
		ClientID:     "test-client-id",
		ClientSecret: "test-client-secret",
		CallbackURL:  "https://app.example.com/auth/google/callback",
		TokenURL:     tokenURL,
		UserInfoURL:  userInfoURL,
	})
}

func TestAuthCodeURL(t *testing.T) {
	provider := google.New(google.Config{
		ClientID:    "test-client-id",
		CallbackURL: "https://app.example.com/auth/google/callback",
	})

	rawURL := provider.AuthCodeURL("state-token",
		social.WithPKCE("challenge-abc", "S256"),
		social.WithPrompt("select_account"),
	)

	parsed, err := url.Parse(rawURL)
	assert.NoError(t, err)

	query := parsed.Query()
	assert.Equal(t, "test-client-id", query.Get("client_id"))
	assert.Equal(t, "code", query.Get("response_type"))
	assert.Equal(t, "state-token", query.Get("state"))
	assert.Equal(t, "challenge-abc", query.Get("code_challenge"))
	assert.Equal(t, "S256", query.Get("code_challenge_method"))
	assert.Equal(t, "select_account", query.Get("prompt"))
	assert.Contains(t, query.Get("scope"), "email")
}

func TestExchange(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful exchange", func(t *testing.T) {
		var gotForm url.Values
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, r.ParseForm())
			gotForm = r.PostForm

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"access_token": "access-token-1",
				"token_type": "Bearer",
				"expires_in": 3600,
				"scope": "openid email profile",
				"id_token": "id-token-1"
			}`))
		}))
		defer server.Close()

		provider := newTestProvider(server.URL, "")

		token, err := provider.Exchange(ctx, "auth-code", social.WithCodeVerifier("verifier-abc"))

		assert.NoError(t, err)
		assert.Equal(t, "access-token-1", token.AccessToken)
		assert.Equal(t, "Bearer", token.TokenType)
		assert.False(t, token.ExpiresAt.IsZero())
		assert.Equal(t, []string{"openid", "email", "profile"}, token.Scopes)
		assert.Equal(t, "id-token-1", token.Raw["id_token"])

		assert.Equal(t, "auth-code", gotForm.Get("code"))
		assert.Equal(t, "authorization_code", gotForm.Get("grant_type"))
		assert.Equal(t, "verifier-abc", gotForm.Get("code_verifier"))
		assert.Equal(t, "test-client-id", gotForm.Get("client_id"))
	})

	t.Run("Provider error response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": "invalid_grant", "error_description": "Code was already redeemed."}`))
		}))
		defer server.Close()

		provider := newTestProvider(server.URL, "")

		token, err := provider.Exchange(ctx, "used-code")

		assert.Nil(t, token)
		var perr *social.ProviderError
		assert.ErrorAs(t, err, &perr)
		assert.Equal(t, "google", perr.Provider)
		assert.Equal(t, "exchange", perr.Operation)
		assert.Equal(t, "invalid_grant", perr.Code)
	})

	t.Run("Missing access token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"token_type": "Bearer"}`))
		}))
		defer server.Close()

		provider := newTestProvider(server.URL, "")

		token, err := provider.Exchange(ctx, "auth-code")

		assert.Nil(t, token)
		var perr *social.ProviderError
		assert.ErrorAs(t, err, &perr)
		assert.Equal(t, "missing_access_token", perr.Code)
	})
}

func TestUserInfo(t *testing.T) {
	ctx := context.Background()

	t.Run("Profile mapping", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer access-token-1", r.Header.Get("Authorization"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"sub": "google-subject-1",
				"email": "user@example.com",
				"email_verified": true,
				"name": "OAuth User",
				"picture": "https://example.com/photo.jpg"
			}`))
		}))
		defer server.Close()

		provider := newTestProvider("", server.URL)

		profile, err := provider.UserInfo(ctx, &social.Token{AccessToken: "access-token-1"})

		assert.NoError(t, err)
		assert.Equal(t, "google-subject-1", profile.ProviderUserID)
		assert.Equal(t, "google", profile.Provider)
		assert.Equal(t, "user@example.com", profile.Email)
		assert.True(t, profile.EmailVerified)
		assert.Equal(t, "OAuth User", profile.Name)
	})

	t.Run("Unauthorized token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "invalid_token", "error_description": "Invalid Credentials"}`))
		}))
		defer server.Close()

		provider := newTestProvider("", server.URL)

		profile, err := provider.UserInfo(ctx, &social.Token{AccessToken: "expired"})

		assert.Nil(t, profile)
		var perr *social.ProviderError
		assert.ErrorAs(t, err, &perr)
		assert.Equal(t, "user_info", perr.Operation)
		assert.Equal(t, http.StatusUnauthorized, perr.Status)
	})
}
