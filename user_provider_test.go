package auth_test

import (
	"context"
	"errors"
	"testing"

	auth "github.com/goliatone/go-auth-gateway"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUserProviderVerifyIdentity(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful verification", func(t *testing.T) {
		store := new(MockUserFinder)
		provider := auth.NewUserProvider(store)

		userID := uuid.New()
		passwordHash, _ := auth.HashPassword("password123")
		user := &auth.User{
			ID:           userID,
			Name:         "Test User",
			Email:        "test@example.com",
			PasswordHash: passwordHash,
		}

		store.On("GetByEmail", ctx, "test@example.com").Return(user, nil).Once()

		identity, err := provider.VerifyIdentity(ctx, "test@example.com", "password123")

		assert.NoError(t, err)
		assert.NotNil(t, identity)
		assert.Equal(t, userID.String(), identity.ID())
		assert.Equal(t, "Test User", identity.Name())
		assert.Equal(t, "test@example.com", identity.Email())

		store.AssertExpectations(t)
	})

	t.Run("Invalid password", func(t *testing.T) {
		store := new(MockUserFinder)
		provider := auth.NewUserProvider(store)

		passwordHash, _ := auth.HashPassword("correct_password")
		user := &auth.User{
			ID:           uuid.New(),
			Email:        "test@example.com",
			PasswordHash: passwordHash,
		}

		store.On("GetByEmail", ctx, "test@example.com").Return(user, nil).Once()

		identity, err := provider.VerifyIdentity(ctx, "test@example.com", "wrong_password")

		assert.ErrorIs(t, err, auth.ErrMismatchedHashAndPassword)
		assert.Nil(t, identity)

		store.AssertExpectations(t)
	})

	t.Run("User not found is indistinguishable from wrong password", func(t *testing.T) {
		store := new(MockUserFinder)
		provider := auth.NewUserProvider(store)

		store.On("GetByEmail", ctx, "nonexistent@example.com").
			Return(nil, repository.NewRecordNotFound()).Once()

		identity, err := provider.VerifyIdentity(ctx, "nonexistent@example.com", "password123")

		assert.ErrorIs(t, err, auth.ErrMismatchedHashAndPassword)
		assert.Nil(t, identity)

		store.AssertExpectations(t)
	})

	t.Run("Datastore failure propagates", func(t *testing.T) {
		store := new(MockUserFinder)
		provider := auth.NewUserProvider(store)

		store.On("GetByEmail", ctx, "test@example.com").
			Return(nil, errors.New("connection refused")).Once()

		identity, err := provider.VerifyIdentity(ctx, "test@example.com", "password123")

		assert.Error(t, err)
		assert.NotErrorIs(t, err, auth.ErrMismatchedHashAndPassword)
		assert.Nil(t, identity)
		assert.Contains(t, err.Error(), "failed to retrieve user")

		store.AssertExpectations(t)
	})

	t.Run("Malformed email skips the lookup", func(t *testing.T) {
		store := new(MockUserFinder)
		provider := auth.NewUserProvider(store)

		identity, err := provider.VerifyIdentity(ctx, "not-an-email", "password123")

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		assert.Nil(t, identity)

		store.AssertNotCalled(t, "GetByEmail")
	})

	t.Run("Short password skips the lookup", func(t *testing.T) {
		store := new(MockUserFinder)
		provider := auth.NewUserProvider(store)

		identity, err := provider.VerifyIdentity(ctx, "test@example.com", "12345")

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		assert.Nil(t, identity)

		store.AssertNotCalled(t, "GetByEmail")
	})

	t.Run("Empty credentials skip the lookup", func(t *testing.T) {
		store := new(MockUserFinder)
		provider := auth.NewUserProvider(store)

		identity, err := provider.VerifyIdentity(ctx, "", "")

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		assert.Nil(t, identity)

		store.AssertNotCalled(t, "GetByEmail")
	})
}

func TestUserProviderFindIdentityByIdentifier(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		store := new(MockUserFinder)
		provider := auth.NewUserProvider(store)

		user := &auth.User{
			ID:    uuid.New(),
			Email: "test@example.com",
		}

		store.On("GetByEmail", ctx, "test@example.com").Return(user, nil).Once()

		identity, err := provider.FindIdentityByIdentifier(ctx, "test@example.com")

		assert.NoError(t, err)
		assert.Equal(t, user.ID.String(), identity.ID())

		store.AssertExpectations(t)
	})

	t.Run("Not found", func(t *testing.T) {
		store := new(MockUserFinder)
		provider := auth.NewUserProvider(store)

		store.On("GetByEmail", ctx, "missing@example.com").
			Return(nil, repository.NewRecordNotFound()).Once()

		identity, err := provider.FindIdentityByIdentifier(ctx, "missing@example.com")

		assert.ErrorIs(t, err, auth.ErrIdentityNotFound)
		assert.Nil(t, identity)

		store.AssertExpectations(t)
	})
}
