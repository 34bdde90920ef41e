package auth_test

import (
	"testing"

	auth "github.com/goliatone/go-auth-gateway"
	"github.com/stretchr/testify/assert"
)

func TestHydrateSession(t *testing.T) {
	service := newTestTokenService(1)

	makeClaims := func(id string) auth.AuthClaims {
		token, err := service.Generate(staticIdentity{id: id})
		assert.NoError(t, err)
		claims, err := service.Validate(token)
		assert.NoError(t, err)
		return claims
	}

	t.Run("Copies the uid onto the shell user", func(t *testing.T) {
		shell := &auth.SessionObject{User: &auth.SessionUser{Name: "Existing Name"}}

		hydrated := auth.HydrateSession(makeClaims("user-123"), shell)

		assert.Equal(t, "user-123", hydrated.GetUserID())
		assert.Equal(t, "Existing Name", hydrated.User.Name)
	})

	t.Run("Hydration is idempotent", func(t *testing.T) {
		claims := makeClaims("user-123")
		shell := &auth.SessionObject{User: &auth.SessionUser{}}

		once := auth.HydrateSession(claims, shell)
		twice := auth.HydrateSession(claims, once)

		assert.Equal(t, once, twice)
		assert.Equal(t, "user-123", twice.GetUserID())
	})

	t.Run("Never fabricates a user object", func(t *testing.T) {
		shell := &auth.SessionObject{}

		hydrated := auth.HydrateSession(makeClaims("user-123"), shell)

		assert.Nil(t, hydrated.User)
		assert.False(t, hydrated.HasUser())
	})

	t.Run("Nil claims leave the shell untouched", func(t *testing.T) {
		shell := &auth.SessionObject{User: &auth.SessionUser{ID: "existing"}}

		hydrated := auth.HydrateSession(nil, shell)

		assert.Equal(t, "existing", hydrated.GetUserID())
	})

	t.Run("Nil shell", func(t *testing.T) {
		assert.Nil(t, auth.HydrateSession(makeClaims("user-123"), nil))
	})
}

func TestSessionObject(t *testing.T) {
	t.Run("HasUser", func(t *testing.T) {
		var nilSession *auth.SessionObject
		assert.False(t, nilSession.HasUser())
		assert.False(t, (&auth.SessionObject{}).HasUser())
		assert.False(t, (&auth.SessionObject{User: &auth.SessionUser{}}).HasUser())
		assert.True(t, (&auth.SessionObject{User: &auth.SessionUser{ID: "user-1"}}).HasUser())
	})

	t.Run("GetUserUUID", func(t *testing.T) {
		session := &auth.SessionObject{User: &auth.SessionUser{ID: "c6b11e9c-8864-4a57-8d0e-8e5f9e1a2b3c"}}
		id, err := session.GetUserUUID()
		assert.NoError(t, err)
		assert.Equal(t, "c6b11e9c-8864-4a57-8d0e-8e5f9e1a2b3c", id.String())

		_, err = (&auth.SessionObject{}).GetUserUUID()
		assert.Error(t, err)
	})
}
